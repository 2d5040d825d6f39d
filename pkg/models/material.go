package models

import (
	"fmt"
	"path/filepath"

	"github.com/taigrr/emy/pkg/texture"
)

// Material references the three textures a fragment may sample. Slots left
// nil are resolved to the shared defaults.
type Material struct {
	Name     string
	Albedo   *texture.Texture // base color
	Normal   *texture.Texture // tangent-space normal map
	Specular *texture.Texture // specular strength; magnitude drives the exponent
}

// NewMaterial creates a material using white albedo, a flat normal map, and
// black specular.
func NewMaterial(name string) *Material {
	return &Material{
		Name:     name,
		Albedo:   texture.White(),
		Normal:   texture.FlatNormal(),
		Specular: texture.Black(),
	}
}

// Resolve replaces nil texture slots with the shared defaults.
func (m *Material) Resolve() {
	if m.Albedo == nil {
		m.Albedo = texture.White()
	}
	if m.Normal == nil {
		m.Normal = texture.FlatNormal()
	}
	if m.Specular == nil {
		m.Specular = texture.Black()
	}
}

// TextureSet names image files to load into a material. Empty entries keep
// the default texture.
type TextureSet struct {
	Albedo   string
	Normal   string
	Specular string
}

// Empty reports whether no file is named.
func (s TextureSet) Empty() bool {
	return s.Albedo == "" && s.Normal == "" && s.Specular == ""
}

// LoadMaterial builds a material from image files. Relative paths are
// resolved against dir. A file that cannot be read is an error.
func LoadMaterial(name, dir string, files TextureSet) (*Material, error) {
	mat := NewMaterial(name)
	slots := []struct {
		file string
		dst  **texture.Texture
	}{
		{files.Albedo, &mat.Albedo},
		{files.Normal, &mat.Normal},
		{files.Specular, &mat.Specular},
	}
	for _, s := range slots {
		if s.file == "" {
			continue
		}
		path := s.file
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		tex, err := texture.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load material %q: %w", name, err)
		}
		*s.dst = tex
	}
	return mat, nil
}
