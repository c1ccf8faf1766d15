package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

const validConfig = `{
  "name": "Glass Pair",
  "description": "Glass and metal",
  "camera": {
    "lookFrom": [0, 1, 3],
    "lookAt": [0, 0, -1],
    "vfovDeg": 40,
    "defocusDeg": 1.5,
    "width": 120
  },
  "sampling": {"samplesPerPixel": 16},
  "materials": [
    {"name": "ground", "type": "lambertian", "albedo": [0.5, 0.5, 0.5]},
    {"name": "glass", "type": "dielectric", "albedo": [1, 1, 1], "refractiveIndex": 1.5},
    {"name": "steel", "type": "metal", "albedo": [0.8, 0.8, 0.8], "fuzz": 0.1}
  ],
  "spheres": [
    {"center": [0, -100.5, -1], "radius": 100, "material": "ground"},
    {"center": [-0.6, 0, -1], "radius": 0.5, "material": "glass"},
    {"center": [0.6, 0, -1], "radius": 0.5, "material": "steel"}
  ]
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(validConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.AspectRatio != DefaultAspectRatio {
		t.Errorf("Expected default aspect ratio, got %v", cfg.Camera.AspectRatio)
	}
	if *cfg.Camera.Up != (Vec3Cfg{0, 1, 0}) {
		t.Errorf("Expected default up vector, got %v", *cfg.Camera.Up)
	}
	if cfg.Sampling.SamplesPerPixel != 16 {
		t.Errorf("Explicit samples should be kept, got %d", cfg.Sampling.SamplesPerPixel)
	}
	if *cfg.Sampling.MaxDepth != renderer.DefaultSamplingConfig().MaxDepth {
		t.Errorf("Expected default depth, got %d", *cfg.Sampling.MaxDepth)
	}
}

func TestParseConfig_ZeroDepthIsKept(t *testing.T) {
	content := strings.Replace(validConfig, `"samplesPerPixel": 16`, `"samplesPerPixel": 16, "maxDepth": 0`, 1)
	cfg, err := ParseConfig([]byte(content))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Sampling.MaxDepth != 0 {
		t.Fatalf("Depth 0 should be kept, got %d", *cfg.Sampling.MaxDepth)
	}
	s, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.SamplingConfig.MaxDepth != 0 {
		t.Errorf("Scene should render background only, got depth %d", s.SamplingConfig.MaxDepth)
	}

	negative := strings.Replace(validConfig, `"samplesPerPixel": 16`, `"samplesPerPixel": 16, "maxDepth": -2`, 1)
	if _, err := ParseConfig([]byte(negative)); err == nil {
		t.Error("Expected error for a negative depth")
	}
}

func TestConfig_Build(t *testing.T) {
	cfg, err := ParseConfig([]byte(validConfig))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}

	if s.Name != "Glass Pair" || s.GetPrimitiveCount() != 3 || s.Materials.Len() != 3 {
		t.Errorf("Unexpected scene %q with %d spheres and %d materials", s.Name, s.GetPrimitiveCount(), s.Materials.Len())
	}
	if s.Camera.Width() != 120 || s.CameraConfig.DefocusAngle != 1.5 {
		t.Errorf("Camera block not applied: %+v", s.CameraConfig)
	}

	all := spheres(t, s)
	if _, ok := s.Materials.Get(all[1].Material).(*material.Dielectric); !ok {
		t.Errorf("Second sphere should be glass, got %T", s.Materials.Get(all[1].Material))
	}
	if _, ok := s.Materials.Get(all[2].Material).(*material.Metal); !ok {
		t.Errorf("Third sphere should be metal, got %T", s.Materials.Get(all[2].Material))
	}
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(string) string
		unknown bool
	}{
		{"Unknown material type", func(s string) string { return strings.Replace(s, `"metal"`, `"velvet"`, 1) }, true},
		{"Dangling reference", func(s string) string { return strings.Replace(s, `"material": "steel"`, `"material": "chrome"`, 1) }, true},
		{"Duplicate material", func(s string) string { return strings.Replace(s, `"name": "steel"`, `"name": "glass"`, 1) }, false},
		{"Zero refractive index", func(s string) string { return strings.Replace(s, `"refractiveIndex": 1.5`, `"refractiveIndex": 0`, 1) }, false},
		{"Degenerate camera", func(s string) string { return strings.Replace(s, `"lookAt": [0, 0, -1]`, `"lookAt": [0, 1, 3]`, 1) }, false},
		{"Negative radius", func(s string) string { return strings.Replace(s, `"radius": 0.5, "material": "glass"`, `"radius": -0.5, "material": "glass"`, 1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.modify(validConfig)))
			if err == nil {
				_, err = cfg.Build()
			}
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.unknown != errors.Is(err, ErrUnknownMaterial) {
				t.Errorf("errors.Is(err, ErrUnknownMaterial) = %v for %v", !tt.unknown, err)
			}
		})
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	for _, content := range []string{`{`, `{"name": "empty"}`} {
		if _, err := ParseConfig([]byte(content)); err == nil {
			t.Errorf("Expected error for %q", content)
		}
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "pair.json", validConfig)

	s, err := LoadScene(path, renderer.CameraConfig{Width: 30})
	if err != nil {
		t.Fatal(err)
	}
	if s.Camera.Width() != 30 {
		t.Errorf("Override not applied, width %d", s.Camera.Width())
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
