package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Bounded // Shapes for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over bounded shapes. It returns the
// same nearest hit as a HittableList of the same shapes.
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Bounded) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Partitioning reorders the slice, so work on a copy
	shapesCopy := make([]Bounded, len(shapes))
	copy(shapesCopy, shapes)
	return &BVH{Root: buildBVH(shapesCopy)}
}

// NewBVHFromList builds a BVH over every shape of a list. Every shape must be Bounded.
func NewBVHFromList(list *HittableList) (*BVH, bool) {
	shapes := make([]Bounded, 0, list.Len())
	for _, shape := range list.Shapes {
		bounded, ok := shape.(Bounded)
		if !ok {
			return nil, false
		}
		shapes = append(shapes, bounded)
	}
	return NewBVH(shapes), true
}

// buildBVH splits at the midpoint of the longest axis until leaves are small
func buildBVH(shapes []Bounded) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	leaf := &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	if len(shapes) <= leafThreshold {
		return leaf
	}

	axis := boundingBox.LongestAxis()
	lo, hi := boundingBox.Min.Index(axis), boundingBox.Max.Index(axis)
	if hi <= lo {
		return leaf
	}

	leftShapes, rightShapes := partitionShapes(shapes, axis, (lo+hi)*0.5)
	// A split that puts everything on one side would recurse forever
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return leaf
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// partitionShapes splits shapes by bounding box center along the axis
func partitionShapes(shapes []Bounded, axis int, splitPos float64) ([]Bounded, []Bounded) {
	var leftShapes, rightShapes []Bounded
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Index(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

// Hit returns the closest hit in the hierarchy
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	hit := bvh.hitNode(bvh.Root, ray, rayT)
	return hit, hit != nil
}

// hitNode searches a subtree, tightening the interval as closer hits are found
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, rayT core.Interval) *material.HitRecord {
	if !node.BoundingBox.Hit(ray, rayT) {
		return nil
	}

	var closestHit *material.HitRecord
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, rayT); isHit {
				rayT = rayT.WithMax(hit.T)
				closestHit = hit
			}
		}
		return closestHit
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if hit := bvh.hitNode(child, ray, rayT); hit != nil {
			rayT = rayT.WithMax(hit.T)
			closestHit = hit
		}
	}
	return closestHit
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() AABB {
	if bvh.Root == nil {
		return AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats walks the tree and returns its shape
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
