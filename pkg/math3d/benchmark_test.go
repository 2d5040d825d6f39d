package math3d

import (
	"math"
	"testing"
)

// drawMatrices mirrors the per-draw setup of a 160x90 frame.
func drawMatrices() (mvp, normal Mat4) {
	model := Translate(V3(0.5, 0, -1)).Mul(RotateY(0.7)).Mul(ScaleUniform(1.5))
	view := LookAt(V3(0, 1, 3), Zero3(), Up())
	proj := PerspectiveLH(math.Pi/3, 160.0/90.0, 0.1, 100)
	vp := Viewport(0, 0, 160, 90, 1)
	return vp.Mul(proj).Mul(view).Mul(model), model.InverseTranspose()
}

func BenchmarkComposeDrawMatrices(b *testing.B) {
	for b.Loop() {
		_, _ = drawMatrices()
	}
}

func BenchmarkProjectVertex(b *testing.B) {
	mvp, _ := drawMatrices()
	p := V4FromV3(V3(0.25, -0.5, 0.75), 1)

	for b.Loop() {
		_ = mvp.MulVec4(p).PerspectiveDivide()
	}
}

func BenchmarkTransformNormal(b *testing.B) {
	_, normal := drawMatrices()
	n := V3(0, 0.6, 0.8)

	for b.Loop() {
		_ = normal.MulVec3Dir(n).Normalize()
	}
}

func BenchmarkSpecularReflect(b *testing.B) {
	n := V3(0, 0, 1)
	l := V3(1, 2, 3).Normalize()
	v := V3(-1, 0.5, 2).Normalize()

	for b.Loop() {
		_ = math.Max(Reflect(n, l.Negate()).Dot(v), 0)
	}
}

func BenchmarkTangentFrame(b *testing.B) {
	t := V3(1, 0.1, 0)
	bt := V3(0, 1, 0.2)
	n := V3(0.1, 0, 1)

	for b.Loop() {
		nn := n.Normalize()
		tt := t.Sub(nn.Scale(nn.Dot(t))).Normalize()
		_ = nn.Cross(tt).Scale(math.Copysign(1, nn.Cross(tt).Dot(bt)))
	}
}

func BenchmarkWrapUV(b *testing.B) {
	uv := V2(-3.25, 7.6)

	for b.Loop() {
		_ = uv.Fract()
	}
}
