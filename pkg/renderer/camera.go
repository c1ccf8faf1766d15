package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ErrDegenerateCamera reports camera parameters that cannot produce a valid view
var ErrDegenerateCamera = errors.New("degenerate camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Point // Camera position (lookfrom)
	LookAt        core.Point // Point the camera is looking at
	Up            core.Vec3  // Up direction (usually (0,1,0))
	Width         int        // Image width in pixels
	AspectRatio   float64    // Width / height ratio
	VFov          float64    // Vertical field of view in degrees
	DefocusAngle  float64    // Aperture cone angle in degrees (0 = pinhole)
	FocusDistance float64    // Distance to the in-focus plane (0 = distance to LookAt)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering. All fields are derived once in
// NewCamera and are read-only while rendering.
type Camera struct {
	config      CameraConfig
	imageHeight int
	center      core.Point
	pixel00     core.Point // Center of the upper-left pixel
	pixelDeltaU core.Vec3  // Offset to the pixel to the right
	pixelDeltaV core.Vec3  // Offset to the pixel below
	u, v, w     core.Vec3  // Camera frame: right, up, backwards
	defocusU    core.Vec3  // Defocus disk horizontal radius
	defocusV    core.Vec3  // Defocus disk vertical radius
	focusDist   float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 {
		return nil, fmt.Errorf("%w: image width %d", ErrDegenerateCamera, config.Width)
	}
	if !(config.AspectRatio > 0) {
		return nil, fmt.Errorf("%w: aspect ratio %v", ErrDegenerateCamera, config.AspectRatio)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("%w: vertical field of view %v", ErrDegenerateCamera, config.VFov)
	}
	if !(config.DefocusAngle >= 0 && config.DefocusAngle < 180) {
		return nil, fmt.Errorf("%w: defocus angle %v", ErrDegenerateCamera, config.DefocusAngle)
	}
	if config.FocusDistance < 0 || math.IsNaN(config.FocusDistance) || math.IsInf(config.FocusDistance, 0) {
		return nil, fmt.Errorf("%w: focus distance %v", ErrDegenerateCamera, config.FocusDistance)
	}

	for _, p := range []struct {
		name string
		v    core.Vec3
	}{{"lookfrom", config.Center}, {"lookat", config.LookAt}, {"up", config.Up}} {
		if !p.v.IsFinite() {
			return nil, fmt.Errorf("%w: non-finite %s %v", ErrDegenerateCamera, p.name, p.v)
		}
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, fmt.Errorf("%w: lookfrom %v equals lookat", ErrDegenerateCamera, config.Center)
	}
	w := view.Normalize()
	right := config.Up.Cross(w)
	if right.NearZero() {
		return nil, fmt.Errorf("%w: up %v is parallel to the view direction", ErrDegenerateCamera, config.Up)
	}
	u := right.Normalize()
	v := w.Cross(u)

	focusDist := config.FocusDistance
	if focusDist == 0 {
		focusDist = view.Length()
	}

	imageHeight := max(1, int(float64(config.Width)/config.AspectRatio))

	// Viewport sits on the focus plane so defocus blur converges there
	theta := degreesToRadians(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * focusDist
	viewportWidth := viewportHeight * float64(config.Width) / float64(imageHeight)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)
	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	upperLeft := config.Center.
		Subtract(w.Multiply(focusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDist * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:      config,
		imageHeight: imageHeight,
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		u:           u,
		v:           v,
		w:           w,
		defocusU:    u.Multiply(defocusRadius),
		defocusV:    v.Multiply(defocusRadius),
		focusDist:   focusDist,
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the camera frame: right, up and backwards (away from LookAt)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// FocusDistance returns the distance to the in-focus plane
func (c *Camera) FocusDistance() float64 {
	return c.focusDist
}

// DefocusRadius returns the radius of the aperture disk
func (c *Camera) DefocusRadius() float64 {
	return c.defocusU.Length()
}

// PixelCenter returns the world-space center of pixel (row, col) on the focus plane
func (c *Camera) PixelCenter(row, col int) core.Point {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(col))).
		Add(c.pixelDeltaV.Multiply(float64(row)))
}

// GetRay generates a jittered ray through pixel (row, col).
// The origin is the eye point for a pinhole camera, otherwise a point on the defocus disk.
func (c *Camera) GetRay(row, col int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	target := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(col) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(row) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, target.Subtract(origin))
}

// GetRays generates n jittered rays through pixel (row, col)
func (c *Camera) GetRays(row, col, n int, sampler core.Sampler) []core.Ray {
	rays := make([]core.Ray, n)
	for i := range rays {
		rays[i] = c.GetRay(row, col, sampler)
	}
	return rays
}

// defocusDiskSample returns a random point on the camera's aperture disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
