package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// Implementations carry no depth awareness; the path evaluator bounds recursion.
type Material interface {
	// Scatter returns the attenuation and continuation ray, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point // Point of intersection
	Normal    core.Vec3  // Unit normal, always facing against the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // Whether the ray arrived from outside the surface
	Material  Handle     // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// A ray travelling along or with the outward normal is inside the surface.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
