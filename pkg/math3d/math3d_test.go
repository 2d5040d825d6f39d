package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec3(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		normal   Vec3
		dir      Vec3
		expected Vec3
	}{
		{"straight on", V3(0, 1, 0), V3(0, -1, 0), V3(0, 1, 0)},
		{"grazing", V3(0, 1, 0), V3(1, 0, 0), V3(1, 0, 0)},
		{"45 degrees", V3(0, 1, 0), V3(1, -1, 0), V3(1, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reflect(tc.normal, tc.dir)
			if !nearVec3(got, tc.expected) {
				t.Errorf("Reflect(%v, %v) = %v, want %v", tc.normal, tc.dir, got, tc.expected)
			}
		})
	}
}

func TestFract(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.25, 0.75},
		{3, 0},
	}
	for _, tc := range tests {
		if got := Fract(tc.in); !near(got, tc.want) {
			t.Errorf("Fract(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestViewportMapsNDCCorners(t *testing.T) {
	m := Viewport(0, 0, 800, 600, 1)

	tests := []struct {
		name     string
		ndc      Vec3
		expected Vec3
	}{
		{"min corner", V3(-1, -1, -1), V3(0, 0, 0)},
		{"max corner", V3(1, 1, 1), V3(800, 600, 1)},
		{"center", V3(0, 0, 0), V3(400, 300, 0.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.MulVec3(tc.ndc)
			if !nearVec3(got, tc.expected) {
				t.Errorf("Viewport * %v = %v, want %v", tc.ndc, got, tc.expected)
			}
		})
	}
}

func TestViewportOffset(t *testing.T) {
	m := Viewport(10, 20, 100, 50, 2)
	got := m.MulVec3(V3(-1, -1, -1))
	if !nearVec3(got, V3(10, 20, 0)) {
		t.Errorf("offset origin = %v, want (10, 20, 0)", got)
	}
}

func TestLookAtDefaultCamera(t *testing.T) {
	view := LookAt(V3(0, 0, 1), Zero3(), Up())

	// The origin sits one unit in front of the eye, down -Z in view space.
	got := view.MulVec3(Zero3())
	if !nearVec3(got, V3(0, 0, -1)) {
		t.Errorf("view * origin = %v, want (0, 0, -1)", got)
	}

	// The eye itself maps to the view-space origin.
	got = view.MulVec3(V3(0, 0, 1))
	if !nearVec3(got, Zero3()) {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

func TestPerspectiveLHDepthOrdering(t *testing.T) {
	proj := PerspectiveLH(math.Pi/3, 1, 0.1, 100)
	view := LookAt(V3(0, 0, 1), Zero3(), Up())
	m := proj.Mul(view)

	nearPoint := m.MulVec4(V4(0, 0, 0, 1)).PerspectiveDivide()
	farPoint := m.MulVec4(V4(0, 0, -5, 1)).PerspectiveDivide()

	if nearPoint.Z <= farPoint.Z {
		t.Errorf("nearer point depth %v should exceed farther point depth %v", nearPoint.Z, farPoint.Z)
	}
}

func TestPerspectiveLHFocalLength(t *testing.T) {
	proj := PerspectiveLH(math.Pi/2, 2, 0.1, 100)

	// tan(45°) = 1, so h = 1 and w = h / aspect.
	if !near(proj[5], 1) {
		t.Errorf("h = %v, want 1", proj[5])
	}
	if !near(proj[0], 0.5) {
		t.Errorf("w = %v, want 0.5", proj[0])
	}
	if proj[11] != 1 {
		t.Errorf("clip w should copy eye z, got coefficient %v", proj[11])
	}
}

func TestInverseTranspose(t *testing.T) {
	// Non-uniform scale: normals must scale by the reciprocal.
	m := Scale(V3(2, 1, 1))
	n := m.InverseTranspose().MulVec3Dir(V3(1, 1, 0))
	if !nearVec3(n, V3(0.5, 1, 0)) {
		t.Errorf("normal = %v, want (0.5, 1, 0)", n)
	}

	// Translation must not leak into directions.
	m = Translate(V3(5, 6, 7))
	n = m.InverseTranspose().MulVec3Dir(V3(0, 1, 0))
	if !nearVec3(n, V3(0, 1, 0)) {
		t.Errorf("translated normal = %v, want (0, 1, 0)", n)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"model", Translate(V3(1, -2, 3)).Mul(RotateY(0.7)).Mul(Scale(V3(2, 0.5, 3)))},
		{"view", LookAt(V3(0, 1, 3), Zero3(), Up())},
		{"projection", PerspectiveLH(math.Pi/3, 16.0/9.0, 0.1, 100)},
		{"viewport", Viewport(4, 2, 160, 90, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, got := range []Mat4{tt.m.Mul(tt.m.Inverse()), tt.m.Inverse().Mul(tt.m)} {
				id := Identity()
				for i := range got {
					if math.Abs(got[i]-id[i]) > 1e-9 {
						t.Fatalf("m * inverse = %v, want identity", got)
					}
				}
			}
		})
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float64
	}{
		{"identity", Identity(), 1},
		{"scale", Scale(V3(2, 3, 4)), 24},
		{"rotation", RotateY(1.1), 1},
		{"translation", Translate(V3(9, 8, 7)), 1},
		{"rigid scaled", Translate(V3(1, 2, 3)).Mul(RotateY(0.4)).Mul(ScaleUniform(2)), 8},
		{"zero", Mat4{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant(); !near(got, tt.want) {
				t.Errorf("Determinant = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulAppliesRightFactorFirst(t *testing.T) {
	m := Translate(V3(1, 0, 0)).Mul(ScaleUniform(2))
	if got := m.MulVec3(V3(1, 1, 0)); !nearVec3(got, V3(3, 2, 0)) {
		t.Errorf("translate*scale applied to (1,1,0) = %v, want (3, 2, 0)", got)
	}
}

func TestInverseSingularReturnsIdentity(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("inverse of singular matrix should be identity")
	}
}

func TestMulVec4Identity(t *testing.T) {
	v := V4(1, 2, 3, 4)
	if got := Identity().MulVec4(v); got != v {
		t.Errorf("identity * %v = %v", v, got)
	}
}

func TestVec2WeightedSum(t *testing.T) {
	a := V2(1, 2)
	got := a.Scale(0.2).Add(a.Scale(0.3)).Add(a.Scale(0.5))
	if !near(got.X, 1) || !near(got.Y, 2) {
		t.Errorf("weighted sum = %v, want %v", got, a)
	}
}
