package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/texture"
	"go.uber.org/zap"
)

// GLTFLoader loads GLTF/GLB files into meshes.
type GLTFLoader struct {
	// Options
	CalculateNormals bool // generate smooth normals when a primitive has none
	LoadTextures     bool // decode material textures; otherwise use defaults
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		LoadTextures:     true,
	}
}

// LoadGLTF loads a binary (.glb) or JSON (.gltf) file with the default loader.
func LoadGLTF(path string) ([]*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load returns one mesh per triangle primitive in the document. Base color,
// normal, and metallic-roughness textures become the albedo, normal, and
// specular slots of each primitive's material.
func (l *GLTFLoader) Load(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	materials, err := l.loadMaterials(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load gltf %q: %w", path, err)
	}

	var meshes []*Mesh
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}
			name := primitiveName(filepath.Base(path), m.Name, mi, pi, len(m.Primitives))
			mesh, err := l.loadPrimitive(doc, name, prim)
			if err != nil {
				return nil, fmt.Errorf("load gltf %q mesh %d primitive %d: %w", path, mi, pi, err)
			}
			if mesh == nil {
				continue
			}
			if prim.Material != nil {
				if err := checkIndex("material", *prim.Material, len(materials)); err != nil {
					return nil, fmt.Errorf("load gltf %q mesh %d primitive %d: %w", path, mi, pi, err)
				}
				mesh.Material = materials[*prim.Material]
			}
			if err := finishMesh(mesh, l.CalculateNormals); err != nil {
				return nil, fmt.Errorf("load gltf %q: %w", path, err)
			}
			meshes = append(meshes, mesh)
		}
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("load gltf %q: %w", path, ErrNoGeometry)
	}

	zap.L().Debug("loaded gltf",
		zap.String("path", path),
		zap.Int("meshes", len(meshes)),
		zap.Int("materials", len(materials)))
	return meshes, nil
}

func primitiveName(file, mesh string, mi, pi, count int) string {
	if mesh == "" {
		mesh = fmt.Sprintf("%s#%d", file, mi)
	}
	if count > 1 {
		return fmt.Sprintf("%s/%d", mesh, pi)
	}
	return mesh
}

// loadPrimitive reads geometry from one primitive. It returns nil when the
// primitive has no positions.
func (l *GLTFLoader) loadPrimitive(doc *gltf.Document, name string, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		zap.L().Warn("gltf primitive without positions skipped", zap.String("mesh", name))
		return nil, nil
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		normals, err = modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
		uvs, err = modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
	}

	mesh := NewMesh(name)
	mesh.Vertices = make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{
			Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])),
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
			v.UV = math3d.V2(float64(uvs[i][0]), 1.0-float64(uvs[i][1]))
		}
		mesh.Vertices[i] = v
	}

	if prim.Indices != nil {
		acr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err := modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.AddTriangle(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
	} else {
		// No indices, assume sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.AddTriangle(i, i+1, i+2)
		}
	}

	return mesh, nil
}

// loadMaterials converts every document material. Texture slots that are
// absent keep the shared defaults.
func (l *GLTFLoader) loadMaterials(doc *gltf.Document, dir string) ([]*Material, error) {
	textures := make([]*texture.Texture, len(doc.Textures))
	for i, t := range doc.Textures {
		if t.Source == nil {
			continue
		}
		if err := checkIndex("image", *t.Source, len(doc.Images)); err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		if l.LoadTextures {
			tex, err := loadImage(doc, *t.Source, dir)
			if err != nil {
				return nil, fmt.Errorf("texture %d: %w", i, err)
			}
			textures[i] = tex
		}
	}
	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		mat := &Material{Name: name}
		slots := []struct {
			index *int
			dst   **texture.Texture
		}{
			{nil, &mat.Albedo},
			{nil, &mat.Specular},
			{nil, &mat.Normal},
		}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorTexture != nil {
				slots[0].index = &pbr.BaseColorTexture.Index
			}
			if pbr.MetallicRoughnessTexture != nil {
				slots[1].index = &pbr.MetallicRoughnessTexture.Index
			}
		}
		if gm.NormalTexture != nil {
			slots[2].index = gm.NormalTexture.Index
		}
		for _, s := range slots {
			if s.index == nil {
				continue
			}
			if err := checkIndex("texture", *s.index, len(textures)); err != nil {
				return nil, fmt.Errorf("material %q: %w", name, err)
			}
			*s.dst = textures[*s.index]
		}
		mat.Resolve()
		materials[i] = mat
	}
	return materials, nil
}

// loadImage decodes image i from a buffer view, a data URI, or a file next to
// the document.
func loadImage(doc *gltf.Document, i int, dir string) (*texture.Texture, error) {
	img := doc.Images[i]
	name := img.Name
	if name == "" {
		name = fmt.Sprintf("image_%d", i)
	}

	switch {
	case img.BufferView != nil:
		view, err := bufferView(doc, *img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		raw, err := modeler.ReadBufferView(doc, view)
		if err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}
		return texture.DecodeBytes(name, raw)
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}
		return texture.DecodeBytes(name, raw)
	case img.URI != "":
		return texture.Load(filepath.Join(dir, img.URI))
	default:
		return nil, fmt.Errorf("image %d has no data", i)
	}
}

// checkIndex reports a wrapped ErrIndexOutOfRange when i is not in [0, n).
func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s %d of %d: %w", what, i, n, ErrIndexOutOfRange)
	}
	return nil
}

// accessor returns accessor i after checking it and the buffer view it reads.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if err := checkIndex("accessor", i, len(doc.Accessors)); err != nil {
		return nil, err
	}
	acr := doc.Accessors[i]
	if acr.BufferView != nil {
		if _, err := bufferView(doc, *acr.BufferView); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", i, err)
		}
	}
	return acr, nil
}

// bufferView returns buffer view i after checking it and its buffer.
func bufferView(doc *gltf.Document, i int) (*gltf.BufferView, error) {
	if err := checkIndex("buffer view", i, len(doc.BufferViews)); err != nil {
		return nil, err
	}
	view := doc.BufferViews[i]
	if err := checkIndex("buffer", view.Buffer, len(doc.Buffers)); err != nil {
		return nil, fmt.Errorf("buffer view %d: %w", i, err)
	}
	return view, nil
}
