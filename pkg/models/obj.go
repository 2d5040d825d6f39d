package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/emy/pkg/math3d"
	"go.uber.org/zap"
)

// objRef is one face corner: 0-based position, UV, and normal indices
// (-1 when absent).
type objRef struct {
	v, vt, vn int
}

// objGroup collects the triangles of one "o"/"g" block.
type objGroup struct {
	name     string
	material string
	tris     [][3]objRef
}

// objData is the parsed content of an OBJ file before meshes are built.
type objData struct {
	positions []math3d.Vec3
	normals   []math3d.Vec3
	uvs       []math3d.Vec2
	groups    []*objGroup
	mtllibs   []string
}

// LoadOBJ parses a Wavefront OBJ file and returns one mesh per object or
// group. Materials named by "mtllib" are loaded from the file's directory.
// Every mesh has its tangent space computed and is validated.
func LoadOBJ(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	data, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	materials := make(map[string]*Material)
	for _, lib := range data.mtllibs {
		loaded, err := LoadMTL(filepath.Join(dir, lib))
		if err != nil {
			return nil, fmt.Errorf("load obj %q: %w", path, err)
		}
		for name, mat := range loaded {
			materials[name] = mat
		}
	}

	meshes, err := data.build(filepath.Base(path), materials)
	if err != nil {
		return nil, fmt.Errorf("load obj %q: %w", path, err)
	}

	zap.L().Debug("loaded obj",
		zap.String("path", path),
		zap.Int("meshes", len(meshes)),
		zap.Int("materials", len(materials)))
	return meshes, nil
}

// ParseOBJ reads OBJ geometry from r. Material libraries are ignored and
// every mesh gets the default material.
func ParseOBJ(name string, r io.Reader) ([]*Mesh, error) {
	data, err := parseOBJ(r)
	if err != nil {
		return nil, fmt.Errorf("parse obj %q: %w", name, err)
	}
	return data.build(name, nil)
}

func parseOBJ(r io.Reader) (*objData, error) {
	data := &objData{}
	cur := &objGroup{name: "default"}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			data.positions = append(data.positions, v)

		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			data.normals = append(data.normals, v)

		case "vt":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: vt needs at least one coordinate", lineNo)
			}
			var uv [2]float64
			for i := 0; i < 2 && i+1 < len(fields); i++ {
				x, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				uv[i] = x
			}
			data.uvs = append(data.uvs, math3d.V2(uv[0], uv[1]))

		case "o", "g":
			if len(cur.tris) > 0 {
				data.groups = append(data.groups, cur)
			}
			name := cur.name
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			cur = &objGroup{name: name, material: cur.material}

		case "usemtl":
			if len(fields) > 1 {
				// A material switch inside a group starts a new mesh.
				if len(cur.tris) > 0 {
					data.groups = append(data.groups, cur)
					cur = &objGroup{name: cur.name}
				}
				cur.material = fields[1]
			}

		case "mtllib":
			data.mtllibs = append(data.mtllibs, fields[1:]...)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := data.parseRef(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				refs = append(refs, ref)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(refs); i++ {
				cur.tris = append(cur.tris, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(cur.tris) > 0 {
		data.groups = append(data.groups, cur)
	}
	if len(data.groups) == 0 {
		return nil, ErrNoGeometry
	}
	return data, nil
}

// parseRef parses "v", "v/vt", "v//vn", or "v/vt/vn". Negative indices count
// back from the most recent element.
func (d *objData) parseRef(tok string) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	dst := []*int{&ref.v, &ref.vt, &ref.vn}
	counts := []int{len(d.positions), len(d.uvs), len(d.normals)}

	for i, p := range parts {
		if i >= len(dst) {
			break
		}
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return ref, fmt.Errorf("face index %q: %w", tok, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return ref, fmt.Errorf("face index %q: %w", tok, ErrIndexOutOfRange)
		}
		if n < 0 || n >= counts[i] {
			return ref, fmt.Errorf("face index %q: %w", tok, ErrIndexOutOfRange)
		}
		*dst[i] = n
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face index %q: missing position", tok)
	}
	return ref, nil
}

// build converts parsed groups into meshes, deduplicating corners that share
// all three indices.
func (d *objData) build(name string, materials map[string]*Material) ([]*Mesh, error) {
	meshes := make([]*Mesh, 0, len(d.groups))
	for _, g := range d.groups {
		meshName := g.name
		if meshName == "default" {
			meshName = name
		}
		mesh := NewMesh(meshName)
		if mat, ok := materials[g.material]; ok {
			mesh.Material = mat
		} else if g.material != "" {
			zap.L().Warn("obj material not found, using defaults",
				zap.String("mesh", meshName),
				zap.String("material", g.material))
		}

		index := make(map[objRef]int)
		for _, tri := range g.tris {
			var face [3]int
			for c, ref := range tri {
				idx, ok := index[ref]
				if !ok {
					v := Vertex{Position: d.positions[ref.v]}
					if ref.vt >= 0 {
						v.UV = d.uvs[ref.vt]
					}
					if ref.vn >= 0 {
						v.Normal = d.normals[ref.vn]
					}
					idx = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, v)
					index[ref] = idx
				}
				face[c] = idx
			}
			mesh.AddTriangle(face[0], face[1], face[2])
		}

		if err := finishMesh(mesh, true); err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// finishMesh validates the mesh, optionally fills in missing normals, and
// computes the tangent space and bounds.
func finishMesh(mesh *Mesh, genNormals bool) error {
	if err := mesh.Validate(); err != nil {
		return err
	}
	if genNormals && !mesh.HasNormals() {
		zap.L().Warn("mesh has no normals, generating smooth normals",
			zap.String("mesh", mesh.Name))
		mesh.CalculateSmoothNormals()
	}
	mesh.Material.Resolve()
	mesh.ComputeTangentSpace()
	mesh.CalculateBounds()
	return nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = x
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}
