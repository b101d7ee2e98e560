package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/meshcat_client/scene"
)

const cubeObj = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadMesh(t *testing.T) {
	mesh, err := LoadMesh(writeFile(t, "piece.OBJ", []byte(cubeObj)))
	require.NoError(t, err)
	assert.Equal(t, "obj", mesh.Format)
	assert.Equal(t, cubeObj, mesh.Data)
	assert.Equal(t, "_meshfile_geometry", mesh.Type())
}

func TestLoadMeshErrors(t *testing.T) {
	_, err := LoadMesh(writeFile(t, "noext", []byte(cubeObj)))
	assert.ErrorIs(t, err, ErrUnsupportedMesh)

	_, err = LoadMesh(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)

	// a png renamed to .stl
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	_, err = LoadMesh(writeFile(t, "fake.stl", png))
	assert.ErrorIs(t, err, ErrUnsupportedMesh)
}

func triangleDocument(t *testing.T, translation [3]float32) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint32{0, 1, 2, 2, 1, 3})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]uint32{gltf.POSITION: positions},
		}},
	})
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{
			Name:        "parent",
			Translation: translation,
			Rotation:    [4]float32{0, 0, 0, 1},
			Scale:       [3]float32{1, 1, 1},
			Children:    []uint32{1},
		},
		&gltf.Node{
			Name:        "child",
			Mesh:        gltf.Index(0),
			Translation: [3]float32{0, 0, 1},
			Rotation:    [4]float32{0, 0, 0, 1},
			Scale:       [3]float32{1, 1, 1},
		})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func TestGeometriesFromGLTF(t *testing.T) {
	geometries, err := GeometriesFromGLTF(triangleDocument(t, [3]float32{1, 2, 3}))
	require.NoError(t, err)
	require.Len(t, geometries, 1)

	buffer, ok := geometries[0].Shape.(scene.Buffer)
	require.True(t, ok)
	assert.Equal(t, 6, buffer.Position.Len())
	assert.Equal(t, 6, buffer.Color.Len())
	assert.Nil(t, buffer.Normal)
	// third vertex of the second triangle is index 3
	assert.Equal(t, []float64{1, 1, 0}, buffer.Position.Array[15:18])
	for _, c := range buffer.Color.Array {
		assert.Equal(t, 1.0, c)
	}

	offset := scene.TranslationOf(geometries[0].Origin)
	assert.InDeltaSlice(t, []float64{1, 2, 4}, offset[:], 1e-9)
}

func TestLoadGLTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, gltf.SaveBinary(triangleDocument(t, [3]float32{0, 0, 0}), path))

	geometries, err := LoadGLTF(path)
	require.NoError(t, err)
	require.Len(t, geometries, 1)

	loaded, err := LoadGeometries(path, scene.Translation(5, 0, 0))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	offset := scene.TranslationOf(loaded[0].Origin)
	assert.InDeltaSlice(t, []float64{5, 0, 1}, offset[:], 1e-9)
}

func TestLoadGeometriesMeshFile(t *testing.T) {
	origin := scene.Translation(0, 1, 0)
	geometries, err := LoadGeometries(writeFile(t, "piece.dae", []byte("<COLLADA/>")), origin)
	require.NoError(t, err)
	require.Len(t, geometries, 1)
	assert.Equal(t, origin, geometries[0].Origin)
	assert.Equal(t, "dae", geometries[0].Shape.(scene.MeshFile).Format)
}

func TestGLTFErrors(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.Error(t, err)

	doc := triangleDocument(t, [3]float32{})
	doc.Nodes[0].Children = []uint32{7}
	_, err = GeometriesFromGLTF(doc)
	assert.Error(t, err)
}
