package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

func spheres(t *testing.T, s *Scene) []*geometry.Sphere {
	t.Helper()
	result := make([]*geometry.Sphere, 0, s.World.Len())
	for _, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Unexpected shape %T in scene", shape)
		}
		result = append(result, sphere)
	}
	return result
}

func TestScene_AddSphereRejectsForeignHandle(t *testing.T) {
	s, err := NewSimpleScene()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddSphere(core.NewVec3(0, 0, 0), 1, material.Handle(99)); !errors.Is(err, geometry.ErrInvalidSphere) {
		t.Errorf("Expected ErrInvalidSphere for a dangling handle, got %v", err)
	}
	h := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err := s.AddSphere(core.NewVec3(0, 0, 0), 0, h); !errors.Is(err, geometry.ErrInvalidSphere) {
		t.Errorf("Expected ErrInvalidSphere for zero radius, got %v", err)
	}
	if s.GetPrimitiveCount() != 1 {
		t.Errorf("Rejected spheres must not be added, got %d spheres", s.GetPrimitiveCount())
	}
}

func TestScene_CameraOverrides(t *testing.T) {
	s, err := NewThreeSpheresScene(renderer.CameraConfig{Width: 64})
	if err != nil {
		t.Fatal(err)
	}
	if s.Camera.Width() != 64 || s.Camera.Height() != 36 {
		t.Errorf("Expected 64x36 camera, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}
	if s.CameraConfig.VFov != 20 {
		t.Errorf("Override should keep the scene's field of view, got %v", s.CameraConfig.VFov)
	}

}

func TestScene_RendersThroughParallelRenderer(t *testing.T) {
	s, err := NewThreeSpheresScene(renderer.CameraConfig{Width: 16})
	if err != nil {
		t.Fatal(err)
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 2, MaxDepth: 4}

	pr, err := renderer.NewParallelRenderer(s, renderer.ParallelConfig{NumWorkers: 3, SamplingWorkers: 2, Seed: 1}, core.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	canvas, _, err := pr.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !canvas.Complete() {
		t.Error("Expected every cell written")
	}
}

func TestRandomSpheresScene_Layout(t *testing.T) {
	s, err := NewRandomSpheresScene(7)
	if err != nil {
		t.Fatal(err)
	}
	all := spheres(t, s)

	// Ground + at most 22x22 small spheres + 3 feature spheres
	if len(all) < 4 || len(all) > 1+22*22+3 {
		t.Fatalf("Unexpected sphere count %d", len(all))
	}
	if s.Materials.Len() != len(all) {
		t.Errorf("Expected one material per sphere, got %d materials for %d spheres", s.Materials.Len(), len(all))
	}

	ground := all[0]
	if ground.Radius != 1000 || !ground.Center.Equals(core.NewVec3(0, -1000, 0)) {
		t.Errorf("Unexpected ground sphere %+v", ground)
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for _, sp := range all[1 : len(all)-3] {
		if sp.Radius != 0.2 || sp.Center.Y != 0.2 {
			t.Errorf("Small sphere %+v should rest on the ground with radius 0.2", sp)
		}
		if sp.Center.Subtract(keepClear).Length() <= 0.9 {
			t.Errorf("Small sphere at %v intrudes on the metal feature sphere", sp.Center)
		}
		if sp.Center.X < -11 || sp.Center.X >= 11 || sp.Center.Z < -11 || sp.Center.Z >= 11 {
			t.Errorf("Small sphere at %v outside the grid", sp.Center)
		}
	}

	features := all[len(all)-3:]
	for i, center := range []core.Vec3{core.NewVec3(0, 1, 0), core.NewVec3(-4, 1, 0), core.NewVec3(4, 1, 0)} {
		if !features[i].Center.Equals(center) || features[i].Radius != 1 {
			t.Errorf("Feature sphere %d: expected radius 1 at %v, got %+v", i, center, features[i])
		}
	}

	config := s.Camera.Config()
	if config.VFov != 22.5 || config.DefocusAngle != 0.6 || config.FocusDistance != 10 {
		t.Errorf("Unexpected camera %+v", config)
	}
	if s.Camera.Width() != 1200 || s.Camera.Height() != 675 {
		t.Errorf("Expected 1200x675, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}
}

func TestRandomSpheresScene_SeedDeterminesLayout(t *testing.T) {
	a, err := NewRandomSpheresScene(3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRandomSpheresScene(3)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewRandomSpheresScene(4)
	if err != nil {
		t.Fatal(err)
	}

	sa, sb, sc := spheres(t, a), spheres(t, b), spheres(t, c)
	if len(sa) != len(sb) {
		t.Fatalf("Same seed gave %d and %d spheres", len(sa), len(sb))
	}
	for i := range sa {
		if !sa[i].Center.Equals(sb[i].Center) {
			t.Fatalf("Same seed placed sphere %d at %v and %v", i, sa[i].Center, sb[i].Center)
		}
	}

	same := len(sa) == len(sc)
	for i := 1; same && i < len(sa); i++ {
		same = sa[i].Center.Equals(sc[i].Center)
	}
	if same {
		t.Error("Different seeds should produce different layouts")
	}
}

func TestScene_PreprocessMatchesFlatList(t *testing.T) {
	s, err := NewRandomSpheresScene(5, renderer.CameraConfig{Width: 24})
	if err != nil {
		t.Fatal(err)
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 2, MaxDepth: 6}
	config := renderer.ParallelConfig{NumWorkers: 2, SamplingWorkers: 2, Seed: 11}

	render := func() *renderer.Canvas {
		pr, err := renderer.NewParallelRenderer(s, config, core.NopLogger{})
		if err != nil {
			t.Fatal(err)
		}
		canvas, _, err := pr.Render()
		if err != nil {
			t.Fatal(err)
		}
		return canvas
	}

	flat := render()
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetWorld().(*geometry.BVH); !ok {
		t.Fatalf("Expected BVH world after Preprocess, got %T", s.GetWorld())
	}
	accelerated := render()

	for row := 0; row < flat.Height(); row++ {
		for col := 0; col < flat.Width(); col++ {
			if flat.At(row, col) != accelerated.At(row, col) {
				t.Fatalf("Cell (%d, %d): flat %+v, BVH %+v", row, col, flat.At(row, col), accelerated.At(row, col))
			}
		}
	}

	h := s.AddMaterial(material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err := s.AddSphere(core.NewVec3(0, 5, 0), 1, h); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetWorld().(*geometry.HittableList); !ok {
		t.Error("Adding a sphere should drop the stale BVH")
	}
}
