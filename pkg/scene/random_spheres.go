package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Grid of small spheres scattered around the feature spheres
const (
	gridMin           = -11
	gridMax           = 11
	smallRadius       = 0.2
	diffuseThreshold  = 0.8
	metalThreshold    = 0.95
	clearanceDistance = 0.9
)

// NewRandomSpheresScene creates the classic cover scene: a large ground sphere,
// a grid of small randomly chosen spheres and three large feature spheres.
// The layout is fully determined by seed.
func NewRandomSpheresScene(seed uint64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         1200,
		AspectRatio:   16.0 / 9.0,
		VFov:          22.5,
		DefocusAngle:  0.6,
		FocusDistance: 10.0,
	}
	cameraConfig := applyOverrides(defaultCameraConfig, cameraOverrides)

	s, err := New("random-spheres", cameraConfig, renderer.DefaultSamplingConfig())
	if err != nil {
		return nil, err
	}

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground); err != nil {
		return nil, err
	}

	random := core.NewSeededSampler(seed, 0)
	keepClear := core.NewVec3(4, smallRadius, 0)
	for a := gridMin; a < gridMax; a++ {
		for b := gridMin; b < gridMax; b++ {
			chooseMat := random.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*random.Get1D(),
				smallRadius,
				float64(b)+0.9*random.Get1D(),
			)
			if center.Subtract(keepClear).Length() <= clearanceDistance {
				continue
			}

			var m material.Material
			switch {
			case chooseMat < diffuseThreshold:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				m = material.NewLambertian(albedo)
			case chooseMat < metalThreshold:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := core.RandomInRange(random, 0, 0.5)
				m = material.NewMetal(albedo, fuzz)
			default:
				m = material.NewDielectric(core.NewVec3(1, 1, 1), 1.5)
			}
			if err := s.AddSphere(center, smallRadius, s.AddMaterial(m)); err != nil {
				return nil, err
			}
		}
	}

	glass := s.AddMaterial(material.NewDielectric(core.NewVec3(1, 1, 1), 1.5))
	diffuse := s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	for _, feature := range []struct {
		center core.Point
		mat    material.Handle
	}{
		{core.NewVec3(0, 1, 0), glass},
		{core.NewVec3(-4, 1, 0), diffuse},
		{core.NewVec3(4, 1, 0), mirror},
	} {
		if err := s.AddSphere(feature.center, 1.0, feature.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
