package scene

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Spheres in the scene
	Materials      *material.Arena        // Owns every material the spheres refer to
	SamplingConfig renderer.SamplingConfig
	BVH            *geometry.BVH // Acceleration structure, built by Preprocess
}

// New creates an empty scene viewed through the given camera
func New(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) (*Scene, error) {
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return &Scene{
		Name:           name,
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		Materials:      material.NewArena(),
		SamplingConfig: samplingConfig,
	}, nil
}

// AddMaterial stores a material in the scene's arena
func (s *Scene) AddMaterial(m material.Material) material.Handle {
	return s.Materials.Add(m)
}

// AddSphere adds a sphere using a material already stored in the scene
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Handle) error {
	if !s.Materials.Contains(mat) {
		return fmt.Errorf("%w: material handle %d not in scene %q", geometry.ErrInvalidSphere, mat, s.Name)
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	s.BVH = nil
	return nil
}

// Preprocess builds the BVH used for intersection. Adding a sphere afterwards
// drops it, falling back to the flat list until Preprocess runs again.
func (s *Scene) Preprocess() error {
	bvh, ok := geometry.NewBVHFromList(s.World)
	if !ok {
		return fmt.Errorf("scene %q contains an unbounded shape", s.Name)
	}
	s.BVH = bvh
	return nil
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

func (s *Scene) GetCamera() *renderer.Camera                { return s.Camera }
func (s *Scene) GetMaterials() *material.Arena              { return s.Materials }
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// GetWorld returns the BVH once built, otherwise the flat sphere list
func (s *Scene) GetWorld() geometry.Shape {
	if s.BVH != nil {
		return s.BVH
	}
	return s.World
}

// applyOverrides merges the first override, if any, into the default camera
func applyOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
