package math3d

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row, col) lives at
// index row+4*col, and the translation of an affine transform sits in
// indices 12-14. Vectors are columns, so a.Mul(b) applies b first.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// LookAt creates a right-handed view matrix looking from eye towards center.
// Degenerate input (eye == center, or up parallel to the view direction)
// yields a singular matrix; callers are expected to avoid it.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize() // Forward
	s := f.Cross(up).Normalize()     // Right
	u := s.Cross(f)                  // Up (recomputed)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// PerspectiveLH creates a left-handed perspective projection with depth
// mapped to [0, 1]. W of the result is the eye-space Z, so paired with the
// right-handed LookAt the visible depth grows toward the camera.
func PerspectiveLH(fovy, aspect, near, far float64) Mat4 {
	h := math.Cos(fovy/2) / math.Sin(fovy/2)
	w := h / aspect
	r := far / (far - near)

	return Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, r, 1,
		0, 0, -r * near, 0,
	}
}

// Viewport creates the affine transform from normalized device coordinates
// [-1,1] to pixels [x, x+width] x [y, y+height] and depth [0, depth].
func Viewport(x, y, width, height, depth float64) Mat4 {
	return Mat4{
		width / 2, 0, 0, 0,
		0, height / 2, 0, 0,
		0, 0, depth / 2, 0,
		x + width/2, y + height/2, depth / 2, 1,
	}
}

// Mul returns the product a*b.
//
//nolint:st1016 // a and b read as the two factors
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		// Column c of the product is a applied to column c of b.
		col := a.MulVec4(Vec4{b[4*c], b[4*c+1], b[4*c+2], b[4*c+3]})
		out[4*c], out[4*c+1], out[4*c+2], out[4*c+3] = col.X, col.Y, col.Z, col.W
	}
	return out
}

// MulVec3 transforms v as a point (w = 1) and divides by the resulting w
// unless it is zero.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction: translation is ignored.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// minors returns the twelve 2x2 determinants the inverse is built from:
// six from the first two columns and six from the last two.
func (m Mat4) minors() (lo, hi [6]float64) {
	lo = [6]float64{
		m[0]*m[5] - m[1]*m[4],
		m[0]*m[6] - m[2]*m[4],
		m[0]*m[7] - m[3]*m[4],
		m[1]*m[6] - m[2]*m[5],
		m[1]*m[7] - m[3]*m[5],
		m[2]*m[7] - m[3]*m[6],
	}
	hi = [6]float64{
		m[8]*m[13] - m[9]*m[12],
		m[8]*m[14] - m[10]*m[12],
		m[8]*m[15] - m[11]*m[12],
		m[9]*m[14] - m[10]*m[13],
		m[9]*m[15] - m[11]*m[13],
		m[10]*m[15] - m[11]*m[14],
	}
	return lo, hi
}

func determinant(lo, hi [6]float64) float64 {
	return lo[0]*hi[5] - lo[1]*hi[4] + lo[2]*hi[3] + lo[3]*hi[2] - lo[4]*hi[1] + lo[5]*hi[0]
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	return determinant(m.minors())
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	lo, hi := m.minors()
	det := determinant(lo, hi)
	if det == 0 {
		return Identity()
	}
	d := 1 / det

	return Mat4{
		(m[5]*hi[5] - m[6]*hi[4] + m[7]*hi[3]) * d,
		(m[2]*hi[4] - m[1]*hi[5] - m[3]*hi[3]) * d,
		(m[13]*lo[5] - m[14]*lo[4] + m[15]*lo[3]) * d,
		(m[10]*lo[4] - m[9]*lo[5] - m[11]*lo[3]) * d,

		(m[6]*hi[2] - m[4]*hi[5] - m[7]*hi[1]) * d,
		(m[0]*hi[5] - m[2]*hi[2] + m[3]*hi[1]) * d,
		(m[14]*lo[2] - m[12]*lo[5] - m[15]*lo[1]) * d,
		(m[8]*lo[5] - m[10]*lo[2] + m[11]*lo[1]) * d,

		(m[4]*hi[4] - m[5]*hi[2] + m[7]*hi[0]) * d,
		(m[1]*hi[2] - m[0]*hi[4] - m[3]*hi[0]) * d,
		(m[12]*lo[4] - m[13]*lo[2] + m[15]*lo[0]) * d,
		(m[9]*lo[2] - m[8]*lo[4] - m[11]*lo[0]) * d,

		(m[5]*hi[1] - m[4]*hi[3] - m[6]*hi[0]) * d,
		(m[0]*hi[3] - m[1]*hi[1] + m[2]*hi[0]) * d,
		(m[13]*lo[1] - m[12]*lo[3] - m[14]*lo[0]) * d,
		(m[8]*lo[3] - m[9]*lo[1] + m[10]*lo[0]) * d,
	}
}

// InverseTranspose returns the transposed inverse, the matrix that carries
// normals and tangents through a model transform.
func (m Mat4) InverseTranspose() Mat4 {
	return m.Inverse().Transpose()
}
