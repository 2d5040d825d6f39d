// Package models provides mesh, material, and loader types for emy.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/emy/pkg/math3d"
)

var (
	// ErrIndexOutOfRange is returned when a face references a vertex that
	// does not exist.
	ErrIndexOutOfRange = errors.New("models: index out of range")

	// ErrNoGeometry is returned when a file contains no triangles.
	ErrNoGeometry = errors.New("models: no geometry")
)

// Mesh represents a triangle mesh with shared-vertex topology and a single material.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face
	Material *Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds all vertex attributes.
type Vertex struct {
	Position  math3d.Vec3
	Normal    math3d.Vec3
	UV        math3d.Vec2
	Tangent   math3d.Vec3
	Bitangent math3d.Vec3
}

// Face represents a triangle with its precomputed surface frame.
type Face struct {
	V         [3]int // Indices into Mesh.Vertices
	Normal    math3d.Vec3
	Tangent   math3d.Vec3
	Bitangent math3d.Vec3
}

// NewMesh creates an empty mesh with the default material.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]Vertex, 0),
		Faces:     make([]Face, 0),
		Material:  NewMaterial(name),
		BoundsMin: math3d.V3(0, 0, 0),
		BoundsMax: math3d.V3(0, 0, 0),
	}
}

// AddTriangle appends a face over three existing vertices.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
}

// Validate checks that every face index refers to a vertex.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return fmt.Errorf("mesh %q: %w", m.Name, ErrNoGeometry)
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("mesh %q face %d index %d (of %d vertices): %w",
					m.Name, i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// ComputeTangentSpace derives each face's normal, tangent, and bitangent from
// its positions and UVs and writes the tangent and bitangent onto the face's
// three vertices. Vertices shared between faces keep the values of the last
// face that touches them; nothing is averaged or renormalized.
func (m *Mesh) ComputeTangentSpace() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := &m.Vertices[f.V[0]]
		v1 := &m.Vertices[f.V[1]]
		v2 := &m.Vertices[f.V[2]]

		edge1 := v1.Position.Sub(v0.Position)
		edge2 := v2.Position.Sub(v0.Position)
		duv1 := v1.UV.Sub(v0.UV)
		duv2 := v2.UV.Sub(v0.UV)

		f.Normal = edge2.Cross(edge1).Normalize()

		// Zero UV area has no defined frame.
		r := duv1.Cross(duv2)
		if r != 0 {
			f.Tangent = edge1.Scale(duv2.Y).Sub(edge2.Scale(duv1.Y)).Div(r)
			f.Bitangent = edge2.Scale(duv1.X).Sub(edge1.Scale(duv2.X)).Div(r)
		} else {
			f.Tangent = math3d.Zero3()
			f.Bitangent = math3d.Zero3()
		}

		for _, idx := range f.V {
			m.Vertices[idx].Tangent = f.Tangent
			m.Vertices[idx].Bitangent = f.Bitangent
		}
	}
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes area-weighted vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		// Outward for counter-clockwise winding. Not normalized so larger
		// faces weigh more.
		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform bakes a matrix into the mesh. Positions use the full matrix;
// normals, tangents, and bitangents use its inverse-transpose.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.InverseTranspose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = nm.MulVec3Dir(v.Normal).Normalize()
		v.Tangent = nm.MulVec3Dir(v.Tangent)
		v.Bitangent = nm.MulVec3Dir(v.Bitangent)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. The material is shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Vertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Material:  m.Material,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) Vertex {
	return m.Vertices[i]
}

// Face returns the vertex indices for face i.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i].V
}
