package geometry

import (
	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives and collections of them
type Hittable interface {
	// Hit returns the nearest intersection whose t lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool)
	// BoundingBox encloses the object over its whole motion
	BoundingBox() core.AABB
}
