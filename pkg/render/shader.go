package render

import (
	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/models"
)

// Light is a point light. Its contribution falls off with squared distance.
type Light struct {
	Position  math3d.Vec3
	Color     math3d.Vec3
	Intensity float64
}

// Globals is the per-frame state shared by every draw call. The caller owns
// it and updates it between frames; the canvas never retains it.
type Globals struct {
	Camera  *Camera
	Lights  []Light
	Ambient math3d.Vec3
	Time    float64 // seconds since start
}

// VertInput bundles the matrices for one draw call.
type VertInput struct {
	Model        math3d.Mat4
	View         math3d.Mat4
	Projection   math3d.Mat4
	Viewport     math3d.Mat4
	MVP          math3d.Mat4 // Viewport * Projection * View * Model
	NormalMatrix math3d.Mat4 // inverse-transpose of Model
}

// NewVertInput composes the per-draw matrices.
func NewVertInput(model, view, projection, viewport math3d.Mat4) *VertInput {
	return &VertInput{
		Model:        model,
		View:         view,
		Projection:   projection,
		Viewport:     viewport,
		MVP:          viewport.Mul(projection).Mul(view).Mul(model),
		NormalMatrix: model.InverseTranspose(),
	}
}

// VertOutput is the result of the vertex stage. Every field is linear, so a
// fragment's attributes are a weighted sum of the three corners.
type VertOutput struct {
	Screen    math3d.Vec3 // pixel x, y and depth after the perspective divide
	W         float64     // clip-space w before the divide
	World     math3d.Vec3
	UV        math3d.Vec2
	Normal    math3d.Vec3
	Tangent   math3d.Vec3
	Bitangent math3d.Vec3
}

// Scale multiplies every attribute by s.
func (o VertOutput) Scale(s float64) VertOutput {
	return VertOutput{
		Screen:    o.Screen.Scale(s),
		W:         o.W * s,
		World:     o.World.Scale(s),
		UV:        o.UV.Scale(s),
		Normal:    o.Normal.Scale(s),
		Tangent:   o.Tangent.Scale(s),
		Bitangent: o.Bitangent.Scale(s),
	}
}

// Add sums two outputs attribute by attribute.
func (o VertOutput) Add(b VertOutput) VertOutput {
	return VertOutput{
		Screen:    o.Screen.Add(b.Screen),
		W:         o.W + b.W,
		World:     o.World.Add(b.World),
		UV:        o.UV.Add(b.UV),
		Normal:    o.Normal.Add(b.Normal),
		Tangent:   o.Tangent.Add(b.Tangent),
		Bitangent: o.Bitangent.Add(b.Bitangent),
	}
}

// Shader turns mesh vertices into screen-space outputs and interpolated
// fragments into RGBA colors in [0, 1].
type Shader interface {
	Vertex(v models.Vertex, in *VertInput, g *Globals) VertOutput
	Fragment(f VertOutput, m *models.Material, g *Globals) math3d.Vec4
}

// GenericVertex is the vertex stage shared by the built-in shaders: position
// through MVP with a perspective divide, directions through the normal
// matrix, UV unchanged.
func GenericVertex(v models.Vertex, in *VertInput) VertOutput {
	clip := in.MVP.MulVec4(math3d.V4FromV3(v.Position, 1))
	return VertOutput{
		Screen:    clip.PerspectiveDivide(),
		W:         clip.W,
		World:     in.Model.MulVec3(v.Position),
		UV:        v.UV,
		Normal:    in.NormalMatrix.MulVec3Dir(v.Normal),
		Tangent:   in.NormalMatrix.MulVec3Dir(v.Tangent),
		Bitangent: in.NormalMatrix.MulVec3Dir(v.Bitangent),
	}
}
