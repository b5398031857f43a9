package core

// Ray represents a ray with an origin, a direction and the instant it was cast
type Ray struct {
	Origin    Point
	Direction Vec3
	Time      float64 // used to place moving geometry
}

// NewRay creates a new ray at time 0
func NewRay(origin Point, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray cast at the given time
func NewRayAtTime(origin Point, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}
