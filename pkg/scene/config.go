package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// ErrUnknownMaterial reports a material kind or reference the loader cannot resolve
var ErrUnknownMaterial = errors.New("unknown material")

// Defaults for fields a scene file leaves out
const (
	DefaultWidth       = 400
	DefaultAspectRatio = 16.0 / 9.0
	DefaultVFov        = 90.0
)

// Vec3Cfg is a JSON triple [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type CameraCfg struct {
	LookFrom      Vec3Cfg  `json:"lookFrom"`
	LookAt        Vec3Cfg  `json:"lookAt"`
	Up            *Vec3Cfg `json:"up,omitempty"`
	Width         int      `json:"width,omitempty"`
	AspectRatio   float64  `json:"aspectRatio,omitempty"`
	VFovDeg       float64  `json:"vfovDeg,omitempty"`
	DefocusDeg    float64  `json:"defocusDeg,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"`
}

type SamplingCfg struct {
	SamplesPerPixel int  `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int `json:"maxDepth,omitempty"` // 0 renders the background only
}

type MaterialCfg struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          Vec3Cfg `json:"albedo"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the JSON scene description
type Config struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Group       string        `json:"group,omitempty"`
	Camera      CameraCfg     `json:"camera"`
	Sampling    SamplingCfg   `json:"sampling"`
	Materials   []MaterialCfg `json:"materials"`
	Spheres     []SphereCfg   `json:"spheres"`
}

// LoadConfig reads a scene file and fills in defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a scene description and fills in defaults
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scene config: %w", err)
	}

	// Defaults / validation
	if cfg.Name == "" {
		cfg.Name = "config"
	}
	if cfg.Camera.Up == nil {
		cfg.Camera.Up = &Vec3Cfg{0, 1, 0}
	}
	if cfg.Camera.Width <= 0 {
		cfg.Camera.Width = DefaultWidth
	}
	if cfg.Camera.AspectRatio <= 0 {
		cfg.Camera.AspectRatio = DefaultAspectRatio
	}
	if cfg.Camera.VFovDeg <= 0 {
		cfg.Camera.VFovDeg = DefaultVFov
	}
	defaults := renderer.DefaultSamplingConfig()
	if cfg.Sampling.SamplesPerPixel <= 0 {
		cfg.Sampling.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if cfg.Sampling.MaxDepth == nil {
		cfg.Sampling.MaxDepth = &defaults.MaxDepth
	} else if *cfg.Sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("scene config %q: max depth must not be negative, got %d", cfg.Name, *cfg.Sampling.MaxDepth)
	}
	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("scene config %q has no spheres", cfg.Name)
	}
	return &cfg, nil
}

// CameraConfig converts the camera block to a renderer configuration
func (c *Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        c.Camera.LookFrom.Vec3(),
		LookAt:        c.Camera.LookAt.Vec3(),
		Up:            c.Camera.Up.Vec3(),
		Width:         c.Camera.Width,
		AspectRatio:   c.Camera.AspectRatio,
		VFov:          c.Camera.VFovDeg,
		DefocusAngle:  c.Camera.DefocusDeg,
		FocusDistance: c.Camera.FocusDistance,
	}
}

// Build creates the scene the configuration describes
func (c *Config) Build(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := applyOverrides(c.CameraConfig(), cameraOverrides)
	s, err := New(c.Name, cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: c.Sampling.SamplesPerPixel,
		MaxDepth:        *c.Sampling.MaxDepth,
	})
	if err != nil {
		return nil, err
	}

	handles := make(map[string]material.Handle, len(c.Materials))
	for _, mc := range c.Materials {
		if _, dup := handles[mc.Name]; dup {
			return nil, fmt.Errorf("material %q defined twice", mc.Name)
		}
		m, err := mc.build()
		if err != nil {
			return nil, err
		}
		handles[mc.Name] = s.AddMaterial(m)
	}

	for i, sc := range c.Spheres {
		h, ok := handles[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sc.Material)
		}
		if err := s.AddSphere(sc.Center.Vec3(), sc.Radius, h); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	return s, nil
}

func (mc MaterialCfg) build() (material.Material, error) {
	switch mc.Type {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.Vec3()), nil
	case "metal":
		return material.NewMetal(mc.Albedo.Vec3(), mc.Fuzz), nil
	case "dielectric":
		if mc.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("material %q: refractive index must be positive, got %v", mc.Name, mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.Albedo.Vec3(), mc.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("material %q: %w type %q", mc.Name, ErrUnknownMaterial, mc.Type)
	}
}

// LoadScene reads a scene file and builds it
func LoadScene(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.Build(cameraOverrides...)
}
