package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadMTL parses a Wavefront material library. Texture references are
// resolved relative to the library and loaded eagerly; a referenced file
// that is missing or undecodable is an error.
func LoadMTL(path string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	sets := make(map[string]*TextureSet)
	var order []string
	var cur *TextureSet

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		key := strings.ToLower(fields[0])
		if key == "newmtl" {
			name := fields[1]
			cur = &TextureSet{}
			sets[name] = cur
			order = append(order, name)
			continue
		}
		if cur == nil {
			continue
		}

		// Options such as "-bm 1.0" precede the file name, which is last.
		file := fields[len(fields)-1]
		switch key {
		case "map_kd":
			cur.Albedo = file
		case "map_bump", "bump", "norm":
			cur.Normal = file
		case "map_ks", "map_ns":
			if cur.Specular == "" || key == "map_ks" {
				cur.Specular = file
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl %q: %w", path, err)
	}

	mats := make(map[string]*Material, len(sets))
	for _, name := range order {
		mat, err := LoadMaterial(name, dir, *sets[name])
		if err != nil {
			return nil, fmt.Errorf("mtl %q: %w", path, err)
		}
		mats[name] = mat
	}
	return mats, nil
}
