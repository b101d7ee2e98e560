// Package loader turns files on disk into scene geometries.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/scene"
)

var ErrUnsupportedMesh = errors.New("Unsupported mesh file")

// LoadMesh reads a mesh file the viewer parses itself (obj, dae, stl...).
// The format is the lowercased file extension.
func LoadMesh(path string) (scene.MeshFile, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return scene.MeshFile{}, errors.Wrapf(ErrUnsupportedMesh, "%q has no extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scene.MeshFile{}, errors.Wrapf(err, "Unable to load file %q", path)
	}

	// mesh formats are unknown to the matcher, anything it recognizes is
	// something else renamed
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return scene.MeshFile{}, errors.Wrapf(ErrUnsupportedMesh, "%q contains %s data", path, kind.MIME.Value)
	}

	return scene.MeshFile{Format: format, Data: string(data)}, nil
}

// LoadGeometries loads any supported file: glTF scenes become buffer
// geometries, everything else a single mesh file geometry placed at origin.
func LoadGeometries(path string, origin mgl64.Mat4) ([]scene.Geometry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		geometries, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		for i := range geometries {
			geometries[i].Origin = origin.Mul4(geometries[i].Origin)
		}
		return geometries, nil
	}

	mesh, err := LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return []scene.Geometry{scene.NewGeometryWithOrigin(mesh, origin)}, nil
}
