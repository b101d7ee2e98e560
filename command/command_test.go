package command

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mogaika/meshcat_client/scene"
)

func decode(t *testing.T, c Command) map[string]interface{} {
	t.Helper()
	buf, err := Encode(c)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(buf, &out))
	return out
}

func asMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "expected map, got %T", v)
	return m
}

func asList(t *testing.T, v interface{}) []interface{} {
	t.Helper()
	l, ok := v.([]interface{})
	require.True(t, ok, "expected list, got %T", v)
	return l
}

func TestSetTransform(t *testing.T) {
	payload := decode(t, NewSetTransform("/robot/link0", scene.Translation(1, 0, 0)))

	assert.Equal(t, "set_transform", payload["type"])
	assert.Equal(t, "/robot/link0", payload["path"])
	matrix := asList(t, payload["matrix"])
	require.Len(t, matrix, 16)
	assert.EqualValues(t, 1.0, matrix[12])
	assert.EqualValues(t, 0.0, matrix[13])
	assert.EqualValues(t, 0.0, matrix[14])
	assert.EqualValues(t, 1.0, matrix[15])
}

func TestFrames(t *testing.T) {
	c := NewDelete("/meshcat/box")
	frames, err := Frames(c)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "delete", string(frames[0]))
	assert.Equal(t, "/meshcat/box", string(frames[1]))

	payload, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, payload, frames[2])
}

func TestEncodingIsStable(t *testing.T) {
	lo, err := scene.NewBuilder().Geometry(scene.NewGeometry(scene.NewSphere(1))).Build()
	require.NoError(t, err)
	c := NewSetObject("/a", lo)

	a, err := Encode(c)
	require.NoError(t, err)
	b, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDelete(t *testing.T) {
	payload := decode(t, NewDelete("/meshcat"))
	assert.Equal(t, map[string]interface{}{"type": "delete", "path": "/meshcat"}, payload)
}

func TestSetProperty(t *testing.T) {
	cases := []struct {
		property Property
		name     string
		value    interface{}
	}{
		{Visible(false), "visible", false},
		{Position{1, 2, 3}, "position", []float64{1, 2, 3}},
		{Quaternion{0, 0, 0, 1}, "quaternion", []float64{0, 0, 0, 1}},
		{Scale{2, 2, 2}, "scale", []float64{2, 2, 2}},
		{Color{1, 0, 0, 0.5}, "color", []float64{1, 0, 0, 0.5}},
		{Opacity(0.25), "opacity", 0.25},
		{ModulatedOpacity(0.5), "modulated_opacity", 0.5},
		{TopColor{0.1, 0.2, 0.3}, "top_color", []float64{0.1, 0.2, 0.3}},
		{BottomColor{0.4, 0.5, 0.6}, "bottom_color", []float64{0.4, 0.5, 0.6}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payload := decode(t, NewSetProperty("/Background", c.property))
			assert.Equal(t, "set_property", payload["type"])
			assert.Equal(t, "/Background", payload["path"])
			assert.Equal(t, c.name, payload["property"])

			if expected, ok := c.value.([]float64); ok {
				got := asList(t, payload["value"])
				require.Len(t, got, len(expected))
				for i := range expected {
					assert.EqualValues(t, expected[i], got[i])
				}
			} else {
				assert.EqualValues(t, c.value, payload["value"])
			}
		})
	}
}

func TestQuaternionOf(t *testing.T) {
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	payload := decode(t, NewSetProperty("/x", QuaternionOf(q)))
	assert.Equal(t, "quaternion", payload["property"])
	value := asList(t, payload["value"])
	require.Len(t, value, 4)
	assert.InDelta(t, q.W, value[3], 1e-12)
	assert.InDelta(t, q.V[2], value[2], 1e-12)
}

func TestParseProperty(t *testing.T) {
	p, err := ParseProperty("visible", true)
	require.NoError(t, err)
	assert.Equal(t, Visible(true), p)

	p, err = ParseProperty("position", []interface{}{1, 2.5, int64(3)})
	require.NoError(t, err)
	assert.Equal(t, Position{1, 2.5, 3}, p)

	p, err = ParseProperty("color", []float64{1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, Color{1, 1, 1, 1}, p)

	p, err = ParseProperty("modulated_opacity", 0.5)
	require.NoError(t, err)
	assert.Equal(t, ModulatedOpacity(0.5), p)

	_, err = ParseProperty("colour", 1.0)
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = ParseProperty("quaternion", []interface{}{0.0, 0.0, 1.0})
	assert.ErrorIs(t, err, ErrPropertyShape)

	_, err = ParseProperty("visible", "yes")
	assert.ErrorIs(t, err, ErrPropertyShape)

	_, err = ParseProperty("scale", []interface{}{1.0, "2", 3.0})
	assert.ErrorIs(t, err, ErrPropertyShape)
}

func TestSetObjectBoxAndCylinder(t *testing.T) {
	box := scene.NewGeometry(scene.Box{Width: 1, Height: 1, Depth: 1})
	cylinder := scene.NewGeometry(scene.Cylinder{
		RadiusTop:      0.2,
		RadiusBottom:   0.2,
		Height:         0.5,
		RadialSegments: 20,
		HeightSegments: 10,
		ThetaLength:    2 * math.Pi,
	})
	lo, err := scene.NewBuilder().Geometry(box, cylinder).Build()
	require.NoError(t, err)

	payload := decode(t, NewSetObject("/meshcat/robot", lo))
	assert.Equal(t, "set_object", payload["type"])
	assert.Equal(t, "/meshcat/robot", payload["path"])

	object := asMap(t, payload["object"])
	assert.NotContains(t, object, "textures")
	assert.NotContains(t, object, "images")

	metadata := asMap(t, object["metadata"])
	assert.Equal(t, "Object", metadata["type"])
	assert.EqualValues(t, 4.5, metadata["version"])

	geometries := asList(t, object["geometries"])
	require.Len(t, geometries, 2)
	boxFields := asMap(t, geometries[0])
	assert.Equal(t, box.UUID.String(), boxFields["uuid"])
	assert.Equal(t, "BoxGeometry", boxFields["type"])
	assert.EqualValues(t, 1.0, boxFields["width"])
	cylinderFields := asMap(t, geometries[1])
	assert.Equal(t, "CylinderGeometry", cylinderFields["type"])
	assert.EqualValues(t, 20, cylinderFields["radialSegments"])
	assert.EqualValues(t, 10, cylinderFields["heightSegments"])
	assert.EqualValues(t, 0.2, cylinderFields["radiusTop"])

	materials := asList(t, object["materials"])
	require.Len(t, materials, 1)
	material := asMap(t, materials[0])
	assert.Equal(t, lo.Material.UUID.String(), material["uuid"])
	assert.Equal(t, "MeshPhongMaterial", material["type"])
	assert.EqualValues(t, 2, material["side"])
	assert.NotContains(t, material, "map")
	assert.NotContains(t, material, "size")

	root := asMap(t, object["object"])
	assert.Equal(t, "Mesh", root["type"])
	assert.Equal(t, lo.Material.UUID.String(), root["material"])
	assert.NotContains(t, root, "geometry")

	children := asList(t, root["children"])
	require.Len(t, children, 2)
	first := asMap(t, children[0])
	second := asMap(t, children[1])
	assert.Equal(t, box.UUID.String(), first["geometry"])
	assert.Equal(t, cylinder.UUID.String(), second["geometry"])
	assert.NotContains(t, first, "children")

	identity := asList(t, first["matrix"])
	require.Len(t, identity, 16)
	for i, v := range identity {
		assert.EqualValues(t, scene.Identity()[i], v, "box matrix %d", i)
	}

	// cylinder is turned a quarter around x: y goes to z
	rotated := asList(t, second["matrix"])
	require.Len(t, rotated, 16)
	assert.InDelta(t, 1.0, rotated[0], 1e-12)
	assert.InDelta(t, 0.0, rotated[5], 1e-12)
	assert.InDelta(t, 1.0, rotated[6], 1e-12)
	assert.InDelta(t, -1.0, rotated[9], 1e-12)
}

func TestSetObjectWithImageTexture(t *testing.T) {
	image := scene.Image{UUID: uuid.New(), URL: "data:image/png;base64,AA=="}
	texture := scene.NewImageTexture()
	lo, err := scene.NewBuilder().
		Geometry(scene.NewGeometry(scene.Plane{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1})).
		Texture(texture).
		Image(image).
		Build()
	require.NoError(t, err)

	object := asMap(t, decode(t, NewSetObject("/img", lo))["object"])
	textures := asList(t, object["textures"])
	require.Len(t, textures, 1)
	tex := asMap(t, textures[0])
	assert.Equal(t, texture.UUID.String(), tex["uuid"])
	assert.Equal(t, image.UUID.String(), tex["image"])
	assert.Len(t, asList(t, tex["repeat"]), 2)
	wrap := asList(t, tex["wrap"])
	require.Len(t, wrap, 2)
	assert.EqualValues(t, 1001, wrap[0])

	images := asList(t, object["images"])
	require.Len(t, images, 1)
	assert.Equal(t, image.URL, asMap(t, images[0])["url"])

	material := asMap(t, asList(t, object["materials"])[0])
	assert.Equal(t, texture.UUID.String(), material["map"])
}

func TestSetObjectWithTextTexture(t *testing.T) {
	lo, err := scene.TextPlane(scene.NewTextTexture("hello", 48, "sans-serif"))
	require.NoError(t, err)

	object := asMap(t, decode(t, NewSetObject("/text", lo))["object"])
	tex := asMap(t, asList(t, object["textures"])[0])
	assert.Equal(t, "_text", tex["type"])
	assert.Equal(t, "hello", tex["text"])
	assert.EqualValues(t, 48, tex["font_size"])
	assert.Equal(t, "sans-serif", tex["font_face"])
	assert.NotContains(t, tex, "image")
}

func TestSetObjectPointCloud(t *testing.T) {
	points := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}
	colors := []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}}
	lo, err := scene.PointCloud(points, colors, 0.05, scene.Identity())
	require.NoError(t, err)

	object := asMap(t, decode(t, NewSetObject("/points", lo))["object"])
	geometry := asMap(t, asList(t, object["geometries"])[0])
	assert.Equal(t, "BufferGeometry", geometry["type"])
	attributes := asMap(t, asMap(t, geometry["data"])["attributes"])
	position := asMap(t, attributes["position"])
	assert.EqualValues(t, 3, position["itemSize"])
	assert.Equal(t, "Float32Array", position["type"])
	assert.Len(t, asList(t, position["array"]), 6)
	assert.Contains(t, attributes, "color")

	material := asMap(t, asList(t, object["materials"])[0])
	assert.Equal(t, "PointsMaterial", material["type"])
	assert.EqualValues(t, 0.05, material["size"])
	assert.Equal(t, true, material["vertexColors"])
	assert.Equal(t, "Points", asMap(t, object["object"])["type"])
}

func TestEncodeRejectsMissingParts(t *testing.T) {
	_, err := Encode(NewSetObject("/x", nil))
	assert.ErrorIs(t, err, ErrEncodingFailure)

	_, err = Encode(NewSetProperty("/x", nil))
	assert.ErrorIs(t, err, ErrEncodingFailure)

	lo, err := scene.NewBuilder().Geometry(scene.Geometry{}).Build()
	require.NoError(t, err)
	_, err = Encode(NewSetObject("/x", lo))
	assert.ErrorIs(t, err, ErrEncodingFailure)
}
