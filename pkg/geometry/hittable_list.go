package geometry

import (
	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
)

// HittableList is a flat collection searched linearly
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends object and grows the list's bounding box
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
	l.bbox = core.NewAABBFromBoxes(l.bbox, object.BoundingBox())
}

// Hit tests every object, narrowing the interval to the closest hit so far
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the box enclosing all objects
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}
