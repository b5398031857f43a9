package geometry

import (
	"math"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
)

// Sphere represents a sphere whose center may move linearly between time 0 and time 1
type Sphere struct {
	Center   core.Ray // Center.At(time) is the center at that time
	Radius   float64
	Material material.Handle
	bbox     core.AABB
}

// NewSphere creates a stationary sphere
func NewSphere(center core.Point, radius float64, mat material.Handle) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)

	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere at center1 at time 0 and center2 at time 1
func NewMovingSphere(center1, center2 core.Point, radius float64, mat material.Handle) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))

	return &Sphere{
		Center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromBoxes(box1, box2),
	}
}

// IsMoving reports whether the center changes over time
func (s *Sphere) IsMoving() bool {
	return !s.Center.Direction.Equals(core.Vec3{})
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	currentCenter := s.Center.At(ray.Time)
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic with h = dot(D, C-O) in place of b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return material.HitRecord{}, false
		}
	}

	hit := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hit.Point.Subtract(currentCenter).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}
