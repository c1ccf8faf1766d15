package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// recordingShape remembers the intervals it was queried with
type recordingShape struct {
	inner     Shape
	intervals []core.Interval
}

func (r *recordingShape) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	r.intervals = append(r.intervals, rayT)
	return r.inner.Hit(ray, rayT)
}

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.Forward()); isHit {
		t.Error("Empty list should never report a hit")
	}
}

func TestHittableList_ReturnsClosestRegardlessOfOrder(t *testing.T) {
	near, _ := NewSphere(core.NewVec3(0, 0, -2), 0.5, 0)
	mid, _ := NewSphere(core.NewVec3(0, 0, -5), 0.5, 1)
	far, _ := NewSphere(core.NewVec3(0, 0, -9), 0.5, 2)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := [][]Shape{
		{near, mid, far},
		{far, mid, near},
		{mid, far, near},
	}
	for _, order := range orders {
		hit, isHit := NewHittableList(order...).Hit(ray, core.Forward())
		if !isHit {
			t.Fatal("Expected hit")
		}
		if hit.Material != 0 || math.Abs(hit.T-1.5) > 1e-9 {
			t.Errorf("Expected nearest sphere at t=1.5, got t=%v material %d", hit.T, hit.Material)
		}
	}
}

func TestHittableList_MatchesBruteForceMinimum(t *testing.T) {
	sampler := core.NewSeededSampler(7, 7)

	// Non-overlapping spheres along a grid
	var shapes []Shape
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			s, err := NewSphere(core.NewVec3(float64(x)*3, 0, float64(z)*3-10), 0.4+0.2*sampler.Get1D(), material.Handle(len(shapes)))
			if err != nil {
				t.Fatal(err)
			}
			shapes = append(shapes, s)
		}
	}
	list := NewHittableList(shapes...)

	intervals := []core.Interval{core.Forward(), core.NewInterval(0.001, 12), core.NewInterval(9, 14)}
	for i := 0; i < 300; i++ {
		origin := core.RandomVec3(sampler, -1, 1).Add(core.NewVec3(0, 0, 5))
		target := core.NewVec3(core.RandomInRange(sampler, -7, 7), core.RandomInRange(sampler, -0.6, 0.6), core.RandomInRange(sampler, -17, -3))
		ray := core.NewRay(origin, target.Subtract(origin))

		for _, interval := range intervals {
			var best *material.HitRecord
			for _, s := range shapes {
				if hit, ok := s.Hit(ray, interval); ok && (best == nil || hit.T < best.T) {
					best = hit
				}
			}

			got, ok := list.Hit(ray, interval)
			if (best != nil) != ok {
				t.Fatalf("Ray %d interval %+v: brute force hit=%v, list hit=%v", i, interval, best != nil, ok)
			}
			if ok && (got.T != best.T || got.Material != best.Material) {
				t.Fatalf("Ray %d interval %+v: brute force t=%v (m%d), list t=%v (m%d)", i, interval, best.T, best.Material, got.T, got.Material)
			}
		}
	}
}

func TestHittableList_ShrinksIntervalAfterHit(t *testing.T) {
	near, _ := NewSphere(core.NewVec3(0, 0, -2), 0.5, 0)
	far, _ := NewSphere(core.NewVec3(0, 0, -9), 0.5, 1)
	first := &recordingShape{inner: near}
	second := &recordingShape{inner: far}

	list := NewHittableList(first, second)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, core.Forward()); !isHit {
		t.Fatal("Expected hit")
	}

	if !math.IsInf(first.intervals[0].Max, 1) {
		t.Errorf("First shape should see the full interval, got %+v", first.intervals[0])
	}
	if math.Abs(second.intervals[0].Max-1.5) > 1e-9 {
		t.Errorf("Second shape should only search up to t=1.5, got %+v", second.intervals[0])
	}
}
