package render

import (
	"math"

	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/models"
)

// defaultMaterial is used for meshes without one.
var defaultMaterial = models.NewMaterial("default")

// Weighted is any attribute that supports a weighted sum.
type Weighted[T any] interface {
	Scale(s float64) T
	Add(b T) T
}

// InterpolateBC returns a*bc.X + b*bc.Y + c*bc.Z.
func InterpolateBC[T Weighted[T]](a, b, c T, bc math3d.Vec3) T {
	return a.Scale(bc.X).Add(b.Scale(bc.Y)).Add(c.Scale(bc.Z))
}

// invalidBC is returned for degenerate triangles; it fails the coverage test.
var invalidBC = math3d.V3(-1, 1, 1)

// Barycentric returns the weights of p against triangle abc using only the
// X and Y components. When the doubled signed area is within eps of zero the
// result is (-1, 1, 1).
func Barycentric(a, b, c, p math3d.Vec3, eps float64) math3d.Vec3 {
	s1 := math3d.V3(c.X-a.X, b.X-a.X, a.X-p.X)
	s2 := math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y)
	u := s1.Cross(s2)
	if math.Abs(u.Z) <= eps {
		return invalidBC
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

// perspectiveWeights divides screen-space weights by each corner's clip w
// and renormalizes.
func perspectiveWeights(bc math3d.Vec3, w0, w1, w2 float64) math3d.Vec3 {
	if w0 == 0 || w1 == 0 || w2 == 0 {
		return bc
	}
	p := math3d.V3(bc.X/w0, bc.Y/w1, bc.Z/w2)
	sum := p.X + p.Y + p.Z
	if sum == 0 {
		return bc
	}
	return p.Div(sum)
}

// DrawTriangle shades three vertices and rasterizes the triangle they form.
// In wireframe mode only the edges are drawn, without depth testing.
// It returns the number of pixels written by the fill path.
func (c *Canvas) DrawTriangle(v0, v1, v2 models.Vertex, shader Shader, mat *models.Material, in *VertInput, g *Globals, wireframe bool) int {
	t0 := shader.Vertex(v0, in, g)
	t1 := shader.Vertex(v1, in, g)
	t2 := shader.Vertex(v2, in, g)

	if wireframe {
		c.drawWireTriangle(t0.Screen, t1.Screen, t2.Screen)
		return 0
	}

	a, b, d := t0.Screen, t1.Screen, t2.Screen

	// Only integer sample points inside the box can be covered.
	minX := math.Max(math.Ceil(min3(a.X, b.X, d.X)), 0)
	minY := math.Max(math.Ceil(min3(a.Y, b.Y, d.Y)), 0)
	maxX := math.Min(math.Floor(max3(a.X, b.X, d.X)), float64(c.Width-1))
	maxY := math.Min(math.Floor(max3(a.Y, b.Y, d.Y)), float64(c.Height-1))
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsNaN(maxX) || math.IsNaN(maxY) {
		return 0
	}
	// Entirely off-canvas; also keeps the int conversions below in range.
	if minX > maxX || minY > maxY {
		return 0
	}

	written := 0
	for y := int(minY); y <= int(maxY); y++ {
		for x := int(minX); x <= int(maxX); x++ {
			bc := Barycentric(a, b, d, math3d.V3(float64(x), float64(y), 0), c.DegenerateEpsilon)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*d.Z
			if !(z > c.PixelDepth(x, y)) {
				continue
			}

			weights := bc
			if c.PerspectiveCorrect {
				weights = perspectiveWeights(bc, t0.W, t1.W, t2.W)
			}
			frag := InterpolateBC(t0, t1, t2, weights)
			frag.Screen = math3d.V3(float64(x), float64(y), z)

			c.SetPixel(x, y, shader.Fragment(frag, mat, g))
			c.SetPixelDepth(x, y, z)
			written++
		}
	}
	return written
}

// drawWireTriangle draws the three edges of a screen-space triangle.
func (c *Canvas) drawWireTriangle(a, b, d math3d.Vec3) {
	c.drawLineVec(a, b)
	c.drawLineVec(b, d)
	c.drawLineVec(d, a)
}

func (c *Canvas) drawLineVec(a, b math3d.Vec3) {
	if !finite2(a) || !finite2(b) {
		return
	}
	c.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c.WireColor)
}

// finite2 reports whether X and Y can be converted to int safely.
func finite2(v math3d.Vec3) bool {
	const limit = 1 << 30
	return math.Abs(v.X) < limit && math.Abs(v.Y) < limit
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// DrawStats reports the work done by one DrawModel call.
type DrawStats struct {
	Triangles int // faces submitted
	Fragments int // pixels written
}

// Add accumulates stats across draw calls.
func (s DrawStats) Add(o DrawStats) DrawStats {
	return DrawStats{
		Triangles: s.Triangles + o.Triangles,
		Fragments: s.Fragments + o.Fragments,
	}
}

// DrawModel draws every face of mesh with its material, transformed by model
// and viewed through g.Camera. A nil camera gets a default one sized to the
// canvas.
func (c *Canvas) DrawModel(mesh *models.Mesh, shader Shader, g *Globals, model math3d.Mat4, wireframe bool) DrawStats {
	if g == nil {
		g = &Globals{}
	}
	cam := g.Camera
	if cam == nil {
		cam = NewCamera(c.Width, c.Height)
	}
	mat := mesh.Material
	if mat == nil {
		mat = defaultMaterial
	}
	in := NewVertInput(model, cam.View, cam.Projection, cam.Viewport)

	var stats DrawStats
	for _, f := range mesh.Faces {
		stats.Fragments += c.DrawTriangle(
			mesh.Vertices[f.V[0]],
			mesh.Vertices[f.V[1]],
			mesh.Vertices[f.V[2]],
			shader, mat, in, g, wireframe,
		)
		stats.Triangles++
	}
	return stats
}
