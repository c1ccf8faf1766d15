package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewSimpleScene creates a single diffuse sphere lit only by the sky
func NewSimpleScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
	cameraConfig := applyOverrides(defaultCameraConfig, cameraOverrides)

	s, err := New("simple", cameraConfig, renderer.SamplingConfig{SamplesPerPixel: 50, MaxDepth: 10})
	if err != nil {
		return nil, err
	}

	red := s.AddMaterial(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5, red); err != nil {
		return nil, err
	}
	return s, nil
}

// NewThreeSpheresScene creates diffuse, hollow glass and brushed metal
// spheres resting on a large ground sphere
func NewThreeSpheresScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:       core.NewVec3(-2, 2, 1),
		LookAt:       core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		Width:        400,
		AspectRatio:  16.0 / 9.0,
		VFov:         20.0,
		DefocusAngle: 10.0,
		// Focus on the center sphere
		FocusDistance: 3.4,
	}
	cameraConfig := applyOverrides(defaultCameraConfig, cameraOverrides)

	s, err := New("three-spheres", cameraConfig, renderer.DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.AddMaterial(material.NewDielectric(core.NewVec3(1, 1, 1), 1.5))
	// Air bubble inside the glass sphere, index relative to the surrounding glass
	bubble := s.AddMaterial(material.NewDielectric(core.NewVec3(1, 1, 1), 1.0/1.5))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))

	spheres := []struct {
		center core.Point
		radius float64
		mat    material.Handle
	}{
		{core.NewVec3(0, -100.5, -1), 100, ground},
		{core.NewVec3(0, 0, -1.2), 0.5, center},
		{core.NewVec3(-1, 0, -1), 0.5, glass},
		{core.NewVec3(-1, 0, -1), 0.4, bubble},
		{core.NewVec3(1, 0, -1), 0.5, gold},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}
	return s, nil
}
