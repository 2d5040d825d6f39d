package models

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/texture"
)

const quadOBJ = `# unit quad
mtllib quad.mtl
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o quad
usemtl painted
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOBJWithMaterial(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "albedo.png"), color.RGBA{255, 0, 0, 255})
	writeFile(t, dir, "quad.mtl", "newmtl painted\nKd 1 1 1\nmap_Kd albedo.png\n")
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.Name != "quad" {
		t.Errorf("name = %q", m.Name)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Errorf("got %d vertices / %d faces, want 4 / 2", m.VertexCount(), m.TriangleCount())
	}
	// Fan triangulation.
	if m.Faces[0].V != [3]int{0, 1, 2} || m.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("faces = %v, %v", m.Faces[0].V, m.Faces[1].V)
	}

	if m.Material.Name != "painted" {
		t.Errorf("material = %q", m.Material.Name)
	}
	if c := m.Material.Albedo.Color(0, 0); c.X != 1 || c.Y != 0 {
		t.Errorf("albedo = %v, want red", c)
	}
	if m.Material.Normal != texture.FlatNormal() || m.Material.Specular != texture.Black() {
		t.Error("absent map references should use defaults")
	}
	if m.Vertices[0].Tangent.X <= 0 {
		t.Errorf("tangent = %v, want +X", m.Vertices[0].Tangent)
	}
}

func TestLoadOBJMissingTexture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.mtl", "newmtl painted\nmap_Kd nowhere.png\n")
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	if _, err := LoadOBJ(path); err == nil {
		t.Error("expected error for missing texture file")
	}
}

func TestParseOBJ(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		check   func(t *testing.T, meshes []*Mesh)
	}{
		{
			name: "negative indices",
			src:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n",
			check: func(t *testing.T, meshes []*Mesh) {
				if meshes[0].Vertices[2].Position != math3d.V3(0, 1, 0) {
					t.Errorf("vertex 2 = %v", meshes[0].Vertices[2].Position)
				}
			},
		},
		{
			name: "groups split meshes",
			src:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\ng a\nf 1 2 3\ng b\nf 2 4 3\n",
			check: func(t *testing.T, meshes []*Mesh) {
				if len(meshes) != 2 || meshes[0].Name != "a" || meshes[1].Name != "b" {
					t.Fatalf("meshes = %d", len(meshes))
				}
				if meshes[1].VertexCount() != 3 {
					t.Errorf("mesh b has %d vertices, want 3", meshes[1].VertexCount())
				}
			},
		},
		{
			name: "generated normals",
			src:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
			check: func(t *testing.T, meshes []*Mesh) {
				if n := meshes[0].Vertices[0].Normal; n.Z < 0.99 {
					t.Errorf("normal = %v, want +Z", n)
				}
				if meshes[0].Name != "inline.obj" {
					t.Errorf("unnamed group should take the file name, got %q", meshes[0].Name)
				}
			},
		},
		{
			name:    "index out of range",
			src:     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
			wantErr: ErrIndexOutOfRange,
		},
		{
			name:    "zero index",
			src:     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
			wantErr: ErrIndexOutOfRange,
		},
		{
			name:    "no faces",
			src:     "v 0 0 0\n",
			wantErr: ErrNoGeometry,
		},
		{
			name: "bad number",
			src:  "v 0 zero 0\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meshes, err := ParseOBJ("inline.obj", strings.NewReader(tc.src))
			if tc.check == nil {
				if err == nil {
					t.Fatal("expected error")
				}
				if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, meshes)
		})
	}
}

func TestLoadMTLKeys(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "n.png"), color.RGBA{128, 128, 255, 255})
	writePNG(t, filepath.Join(dir, "s.png"), color.RGBA{10, 10, 10, 255})
	path := writeFile(t, dir, "lib.mtl", `newmtl a
map_Bump -bm 1.0 n.png
map_Ns s.png
newmtl b
norm n.png
newmtl c
`)

	mats, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	if len(mats) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(mats))
	}
	if mats["a"].Normal.Name != "n.png" || mats["a"].Specular.Name != "s.png" {
		t.Errorf("material a: normal %q specular %q", mats["a"].Normal.Name, mats["a"].Specular.Name)
	}
	if mats["a"].Albedo != texture.White() {
		t.Error("material a albedo should default to white")
	}
	if mats["b"].Normal.Name != "n.png" {
		t.Error("norm key not recognized")
	}
	if mats["c"].Normal != texture.FlatNormal() {
		t.Error("material c should use defaults")
	}
}
