package geometry

import (
	"sort"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/material"
)

// BVHNode is a node in a Bounding Volume Hierarchy. Children are either other
// nodes or the primitives themselves; a node with a single object holds it on both sides.
type BVHNode struct {
	Left, Right Hittable
	bbox        core.AABB
}

// NewBVH constructs a BVH over objects. The input slice is not modified.
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{bbox: core.EmptyAABB}
	}

	// Work on a copy so callers can keep using their slice
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// buildBVH splits objects at the median centroid along the longest axis of their bounds
func buildBVH(objects []Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = core.NewAABBFromBoxes(bbox, object.BoundingBox())
	}

	switch len(objects) {
	case 1:
		return &BVHNode{Left: objects[0], Right: objects[0], bbox: bbox}
	case 2:
		return &BVHNode{Left: objects[0], Right: objects[1], bbox: bbox}
	}

	axis := bbox.LongestAxis()
	sortByAxis(objects, axis)

	mid := len(objects) / 2
	return &BVHNode{
		Left:  buildBVH(objects[:mid]),
		Right: buildBVH(objects[mid:]),
		bbox:  bbox,
	}
}

// sortByAxis orders objects by bounding box centroid; stable so equal keys keep input order
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Centroid().Axis(axis) <
			objects[j].BoundingBox().Centroid().Axis(axis)
	})
}

// Hit tests the left subtree, then the right subtree limited to the left hit's distance
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	if n.Left == nil || !n.bbox.Hit(ray, rayT) {
		return material.HitRecord{}, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	rightHit, hitRight := n.Right.Hit(ray, rightT)

	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box enclosing both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafObjects int
	maxDepth    int
}

// getStats walks the tree counting nodes and depth
func (n *BVHNode) getStats() bvhStats {
	var stats bvhStats
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}
	if n.Left == nil {
		return
	}

	children := []Hittable{n.Left}
	if n.Right != n.Left {
		children = append(children, n.Right)
	}
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.leafObjects++
		}
	}
}
