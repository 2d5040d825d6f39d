package render

import (
	"math"

	"github.com/taigrr/emy/pkg/math3d"
)

// Camera defaults.
const (
	DefaultFOV  = math.Pi / 3 // 60 degrees
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Camera holds the view, projection, and viewport matrices for one canvas.
// The view is right-handed and the projection left-handed, so projected
// depth grows toward the eye.
type Camera struct {
	// Position in world space, used for view-dependent lighting.
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near plane
	Far         float64 // Far plane

	View       math3d.Mat4 // world -> eye
	Projection math3d.Mat4 // eye -> clip
	Viewport   math3d.Mat4 // NDC -> pixel x, y and depth in [0, 1]
}

// NewCamera creates a camera at (0, 0, 1) looking at the origin, with a
// 60 degree perspective and a viewport covering width x height pixels.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:  DefaultFOV,
		Near: DefaultNear,
		Far:  DefaultFar,
	}
	c.Resize(width, height)
	c.LookAt(math3d.V3(0, 0, 1), math3d.Zero3(), math3d.Up())
	return c
}

// LookAt points the camera from eye toward target. Degenerate input (eye
// equal to target, or up parallel to the view direction) is not checked.
func (c *Camera) LookAt(eye, target, up math3d.Vec3) {
	c.Position = eye
	c.Target = target
	c.Up = up
	c.View = math3d.LookAt(eye, target, up)
}

// Orbit places the eye on a horizontal circle around target and looks at it.
// Angle 0 puts the eye on the +Z side of target.
func (c *Camera) Orbit(angle, radius, height float64, target math3d.Vec3) {
	eye := target.Add(math3d.V3(
		math.Sin(angle)*radius,
		height,
		math.Cos(angle)*radius,
	))
	c.LookAt(eye, target, math3d.Up())
}

// Resize rebuilds the projection and viewport for a new canvas size.
func (c *Camera) Resize(width, height int) {
	c.AspectRatio = float64(width) / float64(height)
	c.Viewport = math3d.Viewport(0, 0, float64(width), float64(height), 1)
	c.updateProjection()
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.updateProjection()
}

// SetClipPlanes sets the near and far planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.updateProjection()
}

func (c *Camera) updateProjection() {
	c.Projection = math3d.PerspectiveLH(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// Forward returns the unit direction from the eye to the target.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewProjection returns Viewport * Projection * View.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.Viewport.Mul(c.Projection).Mul(c.View)
}

// WorldToScreen projects a world point to pixel coordinates and depth.
// visible is false for points at or behind the eye plane.
func (c *Camera) WorldToScreen(p math3d.Vec3) (screen math3d.Vec3, visible bool) {
	clip := c.ViewProjection().MulVec4(math3d.V4FromV3(p, 1))
	// In-front points have negative w under this projection.
	if clip.W >= 0 {
		return math3d.Vec3{}, false
	}
	return clip.PerspectiveDivide(), true
}
