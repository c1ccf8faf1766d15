package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// MaxColor is the largest integer channel value written to the canvas
const MaxColor = 255

// Background gradient endpoints, blended on the ray direction's vertical component
var (
	BackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	BackgroundTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetMaterials() *material.Arena
	GetSamplingConfig() SamplingConfig
}

// Raytracer evaluates path colors for camera rays. It holds no mutable
// state and is safe for concurrent use; randomness comes from the sampler.
type Raytracer struct {
	camera    *Camera
	world     geometry.Shape
	materials *material.Arena
	config    SamplingConfig
}

// NewRaytracer creates a new raytracer for the scene
func NewRaytracer(scene Scene) *Raytracer {
	return &Raytracer{
		camera:    scene.GetCamera(),
		world:     scene.GetWorld(),
		materials: scene.GetMaterials(),
		config:    scene.GetSamplingConfig(),
	}
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// BackgroundColor returns the sky gradient seen along the ray
func BackgroundColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return BackgroundBottom.Lerp(BackgroundTop, t)
}

// RayColor returns the color carried back along r. Once the bounce budget
// is spent the path sees only the background.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return BackgroundColor(r)
	}

	hit, isHit := rt.world.Hit(r, core.Forward())
	if !isHit {
		return BackgroundColor(r)
	}

	scatter, didScatter := rt.materials.Get(hit.Material).Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// SampleSum traces n camera rays through pixel (row, col) and returns the summed color
func (rt *Raytracer) SampleSum(row, col, n int, sampler core.Sampler) core.Color {
	sum := core.Color{}
	for _, ray := range rt.camera.GetRays(row, col, n, sampler) {
		sum = sum.Add(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	return sum
}

// PixelColor returns the linear average color of pixel (row, col) over the configured samples
func (rt *Raytracer) PixelColor(row, col int, sampler core.Sampler) core.Color {
	n := rt.config.SamplesPerPixel
	return rt.SampleSum(row, col, n, sampler).Divide(float64(n))
}

// ToRGB gamma-corrects a linear color and truncates it to the integer channel range
func ToRGB(c core.Color) RGB {
	c = c.Clamp(0.0, 1.0).Sqrt()
	return RGB{
		R: uint8(MaxColor * c.X),
		G: uint8(MaxColor * c.Y),
		B: uint8(MaxColor * c.Z),
	}
}

// RenderPass renders the whole image on the calling goroutine, scanning
// rows top to bottom with a single sampler
func (rt *Raytracer) RenderPass(sampler core.Sampler, logger core.Logger) *Canvas {
	width, height := rt.camera.Width(), rt.camera.Height()
	canvas := NewCanvas(width, height)

	for row := 0; row < height; row++ {
		logger.Printf("Scanning line %d/%d...\n", row, height-1)
		for col := 0; col < width; col++ {
			// Single writer: every cell is fresh, so Set cannot fail here
			_ = canvas.Set(row, col, ToRGB(rt.PixelColor(row, col, sampler)))
		}
	}
	logger.Printf("Scanning done!\n")

	return canvas
}
