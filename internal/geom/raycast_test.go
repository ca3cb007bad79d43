package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestRaycastAABBHit(t *testing.T) {
	box := AABBFromCenter(Vec3{X: 0, Y: 0, Z: 5}, Dimensions{Width: 2, Height: 2, Depth: 2})
	ray := Ray{Origin: Vec3{}, Direction: Vec3{Z: 1}}

	tHit, ok := RaycastAABB(ray, box, 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math32.Abs(tHit-4) > 1e-5 {
		t.Errorf("expected t=4, got %f", tHit)
	}
}

func TestRaycastAABBMiss(t *testing.T) {
	box := AABBFromCenter(Vec3{X: 0, Y: 0, Z: 5}, Dimensions{Width: 2, Height: 2, Depth: 2})

	// pointing away
	if _, ok := RaycastAABB(Ray{Origin: Vec3{}, Direction: Vec3{Z: -1}}, box, 100); ok {
		t.Error("ray pointing away should miss")
	}
	// beyond max distance
	if _, ok := RaycastAABB(Ray{Origin: Vec3{}, Direction: Vec3{Z: 1}}, box, 3); ok {
		t.Error("hit beyond max distance should miss")
	}
	// parallel offset ray
	if _, ok := RaycastAABB(Ray{Origin: Vec3{X: 5}, Direction: Vec3{Z: 1}}, box, 100); ok {
		t.Error("offset parallel ray should miss")
	}
}

func TestRaycastAABBFromInside(t *testing.T) {
	box := AABBFromCenter(Vec3{}, Dimensions{Width: 4, Height: 4, Depth: 4})
	tHit, ok := RaycastAABB(Ray{Origin: Vec3{}, Direction: Vec3{X: 1}}, box, 100)
	if !ok {
		t.Fatal("ray starting inside should hit")
	}
	if math32.Abs(tHit-2) > 1e-5 {
		t.Errorf("expected exit at t=2, got %f", tHit)
	}
}

func TestRayPlane(t *testing.T) {
	ray := Ray{Origin: Vec3{Y: 2}, Direction: Vec3{Y: -1}}
	pt, ok := RayPlane(ray, Vec3{}, Vec3{Y: 1})
	if !ok {
		t.Fatal("expected intersection")
	}
	if pt.Y != 0 {
		t.Errorf("expected hit on plane, got %+v", pt)
	}

	if _, ok := RayPlane(Ray{Origin: Vec3{Y: 2}, Direction: Vec3{X: 1}}, Vec3{}, Vec3{Y: 1}); ok {
		t.Error("parallel ray should not intersect")
	}
}

func TestClosestBetweenRays(t *testing.T) {
	// x axis and a z-direction ray passing 1 above it at x=3
	t1, t2, dist := ClosestBetweenRays(Vec3{}, Vec3{X: 1}, Vec3{X: 3, Y: 1, Z: -2}, Vec3{Z: 1})
	if math32.Abs(t1-3) > 1e-5 {
		t.Errorf("t1 = %f, want 3", t1)
	}
	if math32.Abs(t2-2) > 1e-5 {
		t.Errorf("t2 = %f, want 2", t2)
	}
	if math32.Abs(dist-1) > 1e-5 {
		t.Errorf("dist = %f, want 1", dist)
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0, 0},
		{math32.Pi, math32.Pi},
		{2 * math32.Pi, 0},
		{-math32.Pi / 2, 3 * math32.Pi / 2},
		{5 * math32.Pi, math32.Pi},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math32.Abs(got-c.want) > 1e-5 {
			t.Errorf("WrapAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
