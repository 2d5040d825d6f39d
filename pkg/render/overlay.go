package render

import (
	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/models"
)

// Overlay draws world-space guide lines (axes, grid, bounds, light markers)
// on top of a rendered frame. Lines ignore the depth buffer.
type Overlay struct {
	camera *Camera
	canvas *Canvas
}

// NewOverlay creates an overlay drawing through camera onto canvas.
func NewOverlay(camera *Camera, canvas *Canvas) *Overlay {
	return &Overlay{
		camera: camera,
		canvas: canvas,
	}
}

// DrawLine3D draws a line in 3D space.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	s1, vis1 := o.camera.WorldToScreen(p1)
	s2, vis2 := o.camera.WorldToScreen(p2)

	// No line clipping: a segment crossing the eye plane is dropped.
	if !vis1 || !vis2 {
		return
	}
	if !finite2(s1) || !finite2(s2) {
		return
	}

	o.canvas.DrawLine(int(s1.X), int(s1.Y), int(s2.X), int(s2.Y), ColorVec(color))
}

// DrawBox draws the edges of an axis-aligned box.
func (o *Overlay) DrawBox(lo, hi math3d.Vec3, transform math3d.Mat4, color Color) {
	// 8 corners, bit i of the index selects hi for axis i
	var corners [8]math3d.Vec3
	for i := range corners {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		corners[i] = transform.MulVec3(p)
	}

	// 12 edges: corners differing in exactly one bit
	for i := range corners {
		for bit := 1; bit < 8; bit <<= 1 {
			if j := i | bit; j != i {
				o.DrawLine3D(corners[i], corners[j], color)
			}
		}
	}
}

// DrawBounds draws a mesh's bounding box under transform.
func (o *Overlay) DrawBounds(mesh *models.Mesh, transform math3d.Mat4, color Color) {
	o.DrawBox(mesh.BoundsMin, mesh.BoundsMax, transform, color)
}

// DrawAxes draws the coordinate axes at the origin.
func (o *Overlay) DrawAxes(length float64) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	o.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	o.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XZ plane at y.
func (o *Overlay) DrawGrid(y, size, step float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		o.DrawLine3D(math3d.V3(x, y, -half), math3d.V3(x, y, half), color)
	}
	for z := -half; z <= half; z += step {
		o.DrawLine3D(math3d.V3(-half, y, z), math3d.V3(half, y, z), color)
	}
}

// DrawPoint draws a point as a small cross.
func (o *Overlay) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	halfSize := size / 2
	o.DrawLine3D(
		math3d.V3(pos.X-halfSize, pos.Y, pos.Z),
		math3d.V3(pos.X+halfSize, pos.Y, pos.Z),
		color,
	)
	o.DrawLine3D(
		math3d.V3(pos.X, pos.Y-halfSize, pos.Z),
		math3d.V3(pos.X, pos.Y+halfSize, pos.Z),
		color,
	)
	o.DrawLine3D(
		math3d.V3(pos.X, pos.Y, pos.Z-halfSize),
		math3d.V3(pos.X, pos.Y, pos.Z+halfSize),
		color,
	)
}

// DrawLights marks each light with a cross in its own color.
func (o *Overlay) DrawLights(lights []Light, size float64) {
	for _, l := range lights {
		o.DrawPoint(l.Position, size, VecColor(math3d.V4FromV3(l.Color, 1)))
	}
}
