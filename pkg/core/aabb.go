package core

import "math"

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners
func NewAABBFromPoints(a, b Point) AABB {
	return NewAABB(
		NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	)
}

// NewAABBFromBoxes creates the smallest AABB enclosing both boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: NewIntervalEnclosing(a.X, b.X),
		Y: NewIntervalEnclosing(a.Y, b.Y),
		Z: NewIntervalEnclosing(a.Z, b.Z),
	}
}

// AxisInterval returns the interval for axis n (0=X, 1=Y, 2=Z)
func (aabb AABB) AxisInterval(n int) Interval {
	switch n {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method.
// A zero direction component yields ±Inf slab distances, which the comparisons handle.
// Slabs of an empty box have Min > Max and never overlap, whatever the direction.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.AxisInterval(axis)
		adInv := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * adInv
		t1 := (ax.Max - origin) * adInv
		if adInv < 0 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Point {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)*0.5,
		(aabb.Y.Min+aabb.Y.Max)*0.5,
		(aabb.Z.Min+aabb.Z.Max)*0.5,
	)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y && x > z {
		return 0
	}
	if y > z {
		return 1
	}
	return 2
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.X.Min <= aabb.X.Max &&
		aabb.Y.Min <= aabb.Y.Max &&
		aabb.Z.Min <= aabb.Z.Max
}
