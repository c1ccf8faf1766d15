package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection whose t lies strictly inside the interval
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}

// Bounded is a shape with a finite axis-aligned bounding box
type Bounded interface {
	Shape
	BoundingBox() AABB
}
