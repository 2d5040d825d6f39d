package render

import (
	"image/color"
	"testing"

	"github.com/taigrr/emy/pkg/math3d"
)

func newOverlayScene() (*Canvas, *Overlay) {
	canvas := NewCanvas(48, 48)
	canvas.ClearFrame()
	cam := NewCamera(48, 48)
	cam.Orbit(0.6, 4, 2, math3d.Zero3())
	return canvas, NewOverlay(cam, canvas)
}

// countColor returns how many pixels hold exactly col.
func countColor(c *Canvas, col color.RGBA) int {
	n := 0
	for y := range c.Height {
		for x := range c.Width {
			if c.Pixel(x, y) == col {
				n++
			}
		}
	}
	return n
}

func countDrawn(c *Canvas) int {
	return c.Width*c.Height - countColor(c, color.RGBA{clearByte, clearByte, clearByte, clearByte})
}

func TestOverlayDrawAxes(t *testing.T) {
	canvas, o := newOverlayScene()
	o.DrawAxes(1)

	for _, col := range []Color{ColorRed, ColorGreen, ColorBlue} {
		if countColor(canvas, col) == 0 {
			t.Errorf("no pixels drawn in %v", col)
		}
	}
}

func TestOverlayDrawBox(t *testing.T) {
	canvas, o := newOverlayScene()
	o.DrawBox(math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, 0.5), math3d.Identity(), ColorYellow)
	box := countColor(canvas, ColorYellow)
	if box == 0 {
		t.Fatal("box drew nothing")
	}

	// A bigger box covers more pixels.
	canvas.ClearFrame()
	o.DrawBox(math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, 0.5), math3d.ScaleUniform(2), ColorYellow)
	if scaled := countColor(canvas, ColorYellow); scaled <= box {
		t.Errorf("scaled box drew %d pixels, unscaled %d", scaled, box)
	}
}

func TestOverlayDrawBounds(t *testing.T) {
	canvas, o := newOverlayScene()
	mesh := quadMesh(0.5)
	mesh.CalculateBounds()
	o.DrawBounds(mesh, math3d.Identity(), ColorWhite)
	if countColor(canvas, ColorWhite) == 0 {
		t.Error("bounds drew nothing")
	}
}

func TestOverlaySkipsHiddenSegments(t *testing.T) {
	canvas := NewCanvas(16, 16)
	canvas.ClearFrame()
	o := NewOverlay(NewCamera(16, 16), canvas)

	// Both endpoints behind the eye.
	o.DrawLine3D(math3d.V3(0, 0, 2), math3d.V3(1, 0, 2), ColorWhite)
	// One endpoint behind the eye.
	o.DrawLine3D(math3d.Zero3(), math3d.V3(0, 0, 5), ColorWhite)
	// Invalid grid step.
	o.DrawGrid(0, 2, 0, ColorWhite)

	if n := countDrawn(canvas); n != 0 {
		t.Errorf("%d pixels drawn, want 0", n)
	}
}

func TestOverlayGridAndLights(t *testing.T) {
	canvas, o := newOverlayScene()
	o.DrawGrid(-0.5, 2, 0.5, ColorDimGray)
	if countColor(canvas, ColorDimGray) == 0 {
		t.Error("grid drew nothing")
	}

	lights := []Light{{Position: math3d.V3(0, 0.5, 0), Color: math3d.V3(0, 1, 0), Intensity: 1}}
	o.DrawLights(lights, 0.4)
	if countColor(canvas, color.RGBA{0, 255, 0, 255}) == 0 {
		t.Error("light marker drew nothing")
	}
}
