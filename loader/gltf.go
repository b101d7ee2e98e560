package loader

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/scene"
	"github.com/mogaika/meshcat_client/utils"
)

// LoadGLTF reads a .gltf or .glb file and returns one buffer geometry per
// triangle primitive of the default scene. Indexed primitives are expanded
// to plain triangle lists. Vertices without color are white. Each geometry
// origin is the world transform of its node.
func LoadGLTF(path string) ([]scene.Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open gltf %q", path)
	}
	return GeometriesFromGLTF(doc)
}

func GeometriesFromGLTF(doc *gltf.Document) ([]scene.Geometry, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("Document has no scenes")
	}
	var sceneIndex uint32
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if int(sceneIndex) >= len(doc.Scenes) {
		return nil, errors.Errorf("Scene %d out of range", sceneIndex)
	}

	var geometries []scene.Geometry
	var walk func(id uint32, parent mgl64.Mat4, depth int) error
	walk = func(id uint32, parent mgl64.Mat4, depth int) error {
		if int(id) >= len(doc.Nodes) {
			return errors.Errorf("Node %d out of range", id)
		}
		if depth > len(doc.Nodes) {
			return errors.Errorf("Node %d is part of a cycle", id)
		}
		node := doc.Nodes[id]
		world := parent.Mul4(nodeTransform(node))

		if node.Mesh != nil {
			if int(*node.Mesh) >= len(doc.Meshes) {
				return errors.Errorf("Node %q mesh %d out of range", node.Name, *node.Mesh)
			}
			mesh := doc.Meshes[*node.Mesh]
			for iPrimitive, primitive := range mesh.Primitives {
				if primitive.Mode != gltf.PrimitiveTriangles {
					logger.Component("loader").Debugf("Skipping mesh %q primitive %d: mode %v", mesh.Name, iPrimitive, primitive.Mode)
					continue
				}
				buffer, err := readPrimitive(doc, primitive)
				if err != nil {
					return errors.Wrapf(err, "Mesh %q primitive %d", mesh.Name, iPrimitive)
				}
				geometries = append(geometries, scene.NewGeometryWithOrigin(buffer, world))
			}
		}

		for _, child := range node.Children {
			if err := walk(child, world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range doc.Scenes[sceneIndex].Nodes {
		if err := walk(id, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	return geometries, nil
}

func readPrimitive(doc *gltf.Document, primitive *gltf.Primitive) (scene.Buffer, error) {
	positionIndex, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return scene.Buffer{}, errors.New("No POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], nil)
	if err != nil {
		return scene.Buffer{}, errors.Wrapf(err, "Failed to read mesh vertices")
	}

	var normals [][3]float32
	if normalIndex, ok := primitive.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIndex], nil); err != nil {
			return scene.Buffer{}, errors.Wrapf(err, "Failed to read mesh normals")
		}
	}

	order := make([]uint32, 0, len(positions))
	if primitive.Indices != nil {
		if order, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil); err != nil {
			return scene.Buffer{}, errors.Wrapf(err, "Failed to read mesh indices")
		}
	} else {
		for i := range positions {
			order = append(order, uint32(i))
		}
	}

	position := make([]float64, 0, len(order)*3)
	color := make([]float64, 0, len(order)*3)
	var normal []float64
	for _, index := range order {
		if int(index) >= len(positions) {
			return scene.Buffer{}, errors.Errorf("Index %d out of %d vertices", index, len(positions))
		}
		p := positions[index]
		position = append(position, float64(p[0]), float64(p[1]), float64(p[2]))
		color = append(color, 1, 1, 1)
		if len(normals) > int(index) {
			n := normals[index]
			normal = append(normal, float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	buffer := scene.Buffer{
		Position: scene.NewAttribute(3, position),
		Color:    scene.NewAttribute(3, color),
	}
	if len(normal) == len(position) {
		n := scene.NewAttribute(3, normal)
		buffer.Normal = &n
	}
	return buffer, nil
}

// nodeTransform prefers the node matrix and falls back to TRS. Zero rotation
// and scale are treated as their identity values.
func nodeTransform(node *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(utils.FloatArray32to64(node.Matrix[:]))
	if m != (mgl64.Mat4{}) && m != mgl64.Ident4() {
		return m
	}

	t := node.Translation
	r := node.Rotation
	s := node.Scale
	if r == [4]float32{} {
		r = [4]float32{0, 0, 0, 1}
	}
	if s == [3]float32{} {
		s = [3]float32{1, 1, 1}
	}

	rotation := mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
	return mgl64.Translate3D(float64(t[0]), float64(t[1]), float64(t[2])).
		Mul4(rotation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(float64(s[0]), float64(s[1]), float64(s[2])))
}
