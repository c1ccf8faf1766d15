package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// HittableList is a flat collection of shapes that is itself a Shape
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates a list from the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes
func (l *HittableList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest hit across all shapes. Each shape is only tested
// against distances closer than the best hit found so far.
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, closestSoFar); isHit {
			closestSoFar = closestSoFar.WithMax(hit.T)
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
