package render

import (
	"math"
	"testing"

	"github.com/taigrr/emy/pkg/math3d"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(80, 40)

	if c.FOV != DefaultFOV || c.Near != DefaultNear || c.Far != DefaultFar {
		t.Errorf("projection params = %v %v %v", c.FOV, c.Near, c.Far)
	}
	if c.AspectRatio != 2 {
		t.Errorf("AspectRatio = %v, want 2", c.AspectRatio)
	}
	if c.Position != math3d.V3(0, 0, 1) || c.Target != math3d.Zero3() {
		t.Errorf("eye %v target %v", c.Position, c.Target)
	}
	if f := c.Forward(); f.Distance(math3d.V3(0, 0, -1)) > 1e-12 {
		t.Errorf("Forward = %v", f)
	}
}

func TestWorldToScreen(t *testing.T) {
	c := NewCamera(40, 20)

	center, ok := c.WorldToScreen(math3d.Zero3())
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(center.X-20) > 1e-9 || math.Abs(center.Y-10) > 1e-9 {
		t.Errorf("origin at %v, want canvas center (20, 10)", center)
	}

	up, _ := c.WorldToScreen(math3d.V3(0, 0.2, 0))
	if up.Y >= center.Y {
		t.Errorf("+Y world at row %v, want above center row %v", up.Y, center.Y)
	}

	closer, ok := c.WorldToScreen(math3d.V3(0, 0, 0.5))
	if !ok {
		t.Fatal("point in front of the eye should be visible")
	}
	if closer.Z <= center.Z {
		t.Errorf("closer depth %v should exceed %v", closer.Z, center.Z)
	}

	for _, p := range []math3d.Vec3{
		math3d.V3(0, 0, 2), // behind
		math3d.V3(3, 1, 1), // on the eye plane
	} {
		if _, ok := c.WorldToScreen(p); ok {
			t.Errorf("WorldToScreen(%v) reported visible", p)
		}
	}
}

func TestCameraOrbit(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		target math3d.Vec3
		want   math3d.Vec3
	}{
		{"front", 0, math3d.Zero3(), math3d.V3(0, 1, 3)},
		{"quarter turn", math.Pi / 2, math3d.Zero3(), math3d.V3(3, 1, 0)},
		{"offset target", math.Pi, math3d.V3(1, 0, 0), math3d.V3(1, 1, -3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(10, 10)
			c.Orbit(tc.angle, 3, 1, tc.target)
			if c.Position.Distance(tc.want) > 1e-9 {
				t.Errorf("Position = %v, want %v", c.Position, tc.want)
			}
			if c.Target != tc.target {
				t.Errorf("Target = %v", c.Target)
			}
			// The target always lands in the middle of the frame.
			s, ok := c.WorldToScreen(tc.target)
			if !ok || math.Abs(s.X-5) > 1e-9 || math.Abs(s.Y-5) > 1e-9 {
				t.Errorf("target projects to %v (visible %v)", s, ok)
			}
		})
	}
}

func TestCameraResizeAndProjection(t *testing.T) {
	c := NewCamera(10, 10)
	c.Resize(30, 10)
	if c.AspectRatio != 3 {
		t.Errorf("AspectRatio = %v, want 3", c.AspectRatio)
	}
	if s, _ := c.WorldToScreen(math3d.Zero3()); math.Abs(s.X-15) > 1e-9 || math.Abs(s.Y-5) > 1e-9 {
		t.Errorf("origin at %v after resize", s)
	}

	wide := c.Projection
	c.SetFOV(math.Pi / 6)
	if c.Projection == wide {
		t.Error("SetFOV did not rebuild the projection")
	}

	c.SetClipPlanes(0.5, 10)
	if c.Near != 0.5 || c.Far != 10 {
		t.Errorf("clip planes = %v, %v", c.Near, c.Far)
	}
	want := math3d.PerspectiveLH(math.Pi/6, 3, 0.5, 10)
	if c.Projection != want {
		t.Error("projection does not match the current parameters")
	}
}
