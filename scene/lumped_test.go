package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox() Geometry {
	return NewGeometry(Box{Width: 1, Height: 1, Depth: 1})
}

func TestLumpedObject(t *testing.T) {
	lo, err := NewBuilder().Geometry(unitBox()).Build()
	require.NoError(t, err)

	assert.Len(t, lo.Geometries, 1)
	assert.Nil(t, lo.Texture)
	assert.Nil(t, lo.Image)
	// root carries no geometry, its children do
	assert.Equal(t, uuid.Nil, lo.Object.Geometry())
	require.Len(t, lo.Object.Children, 1)
	assert.Equal(t, lo.Geometries[0].UUID, lo.Object.Children[0].Geometry())
	assert.Equal(t, uuid.Nil, lo.Material.Map())
	assert.Equal(t, lo.Material.UUID, lo.Object.Material())
	assert.Equal(t, DefaultMetadata(), lo.Metadata)
	assert.Equal(t, MeshPhongMaterial, lo.Material.Kind)
	require.NotNil(t, lo.Material.Side)
	assert.Equal(t, DoubleSide, *lo.Material.Side)
}

func TestEmptyScene(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.ErrorIs(t, err, ErrEmptyScene)

	_, err = Assemble(nil, DefaultMaterial(), nil, nil, DefaultObject())
	assert.ErrorIs(t, err, ErrEmptyScene)
}

func TestChildrenFollowGeometryOrder(t *testing.T) {
	for n := 1; n <= 5; n++ {
		geometries := make([]Geometry, n)
		for i := range geometries {
			geometries[i] = NewGeometry(Sphere{Radius: float64(i + 1)})
		}
		material := NewMaterial(MeshLambertMaterial)
		lo, err := Assemble(geometries, material, nil, nil, NewObject(Identity(), PointsObject))
		require.NoError(t, err)

		require.Len(t, lo.Object.Children, n)
		for i, child := range lo.Object.Children {
			assert.Equal(t, geometries[i].UUID, child.Geometry(), "child %d", i)
			assert.Equal(t, material.UUID, child.Material(), "child %d", i)
			assert.Equal(t, PointsObject, child.Kind, "child %d", i)
			assert.Empty(t, child.Children)
		}
	}
}

func TestMultipleGeometries(t *testing.T) {
	box := unitBox()
	cylinder := NewGeometry(Cylinder{
		RadiusTop:      0.2,
		RadiusBottom:   0.2,
		Height:         0.5,
		RadialSegments: 20,
		HeightSegments: 10,
		ThetaLength:    2 * math.Pi,
	})
	lo, err := NewBuilder().Geometry(box, cylinder).Build()
	require.NoError(t, err)

	require.Len(t, lo.Object.Children, 2)
	assert.Equal(t, box.UUID, lo.Object.Children[0].Geometry())
	assert.Equal(t, cylinder.UUID, lo.Object.Children[1].Geometry())
	assert.Equal(t, Identity(), lo.Object.Children[0].Matrix)
	rotX := mgl64.HomogRotate3DX(math.Pi / 2)
	assert.InDeltaSlice(t, rotX[:], lo.Object.Children[1].Matrix[:], 1e-12)
	assert.Equal(t, uuid.Nil, lo.Material.Map())
	assert.Equal(t, lo.Material.UUID, lo.Object.Children[0].Material())
	assert.Equal(t, lo.Material.UUID, lo.Object.Children[1].Material())
}

func TestChildPose(t *testing.T) {
	origin := Pose(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.3, -0.2, 0.1})
	rotX := mgl64.HomogRotate3DX(math.Pi / 2)

	testCases := []struct {
		name  string
		shape Shape
		want  mgl64.Mat4
	}{
		{"box", Box{1, 2, 3}, origin},
		{"sphere", NewSphere(1), origin},
		{"cone", Cone{Radius: 1, Height: 2}, origin},
		{"cylinder", NewCylinder(0.1, 1), origin.Mul4(rotX)},
		{"mesh", MeshFile{Format: "obj", Data: "v 0 0 0"}, origin},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lo, err := NewBuilder().Geometry(NewGeometryWithOrigin(tc.shape, origin)).Build()
			require.NoError(t, err)
			have := lo.Object.Children[0].Matrix
			assert.InDeltaSlice(t, tc.want[:], have[:], 1e-12)
		})
	}
}

func TestObjectWithTexture(t *testing.T) {
	texture := NewTextTexture("Hello, meshcat!", 12, "sans-serif")
	lo, err := NewBuilder().Geometry(unitBox()).Texture(texture).Build()
	require.NoError(t, err)

	require.NotNil(t, lo.Texture)
	assert.Nil(t, lo.Image)
	assert.Equal(t, texture.UUID, lo.Texture.UUID)
	assert.Equal(t, texture.UUID, lo.Material.Map())
}

func TestObjectWithTextureImage(t *testing.T) {
	image, err := NewImageFromBytes("head.png", pngBytes(t))
	require.NoError(t, err)
	texture := NewImageTexture()

	lo, err := NewBuilder().Geometry(unitBox()).Image(image).Texture(texture).Build()
	require.NoError(t, err)

	require.NotNil(t, lo.Texture)
	require.NotNil(t, lo.Image)
	assert.Equal(t, texture.UUID, lo.Material.Map())
	content, ok := lo.Texture.Content.(ImageTexture)
	require.True(t, ok)
	assert.Equal(t, image.UUID, content.Image())
	assert.Equal(t, [2]uint32{1, 1}, content.Repeat)
	assert.Equal(t, [2]uint32{1001, 1001}, content.Wrap)

	// inputs are left untouched
	assert.Equal(t, uuid.Nil, texture.Content.(ImageTexture).Image())
}

func TestTextTextureIgnoresImage(t *testing.T) {
	image, err := NewImageFromBytes("a.png", pngBytes(t))
	require.NoError(t, err)
	texture := NewTextTexture("label", 20, "monospace")

	lo, err := Assemble([]Geometry{unitBox()}, DefaultMaterial(), &texture, &image, DefaultObject())
	require.NoError(t, err)
	_, isText := lo.Texture.Content.(TextTexture)
	assert.True(t, isText)
	assert.Equal(t, texture.UUID, lo.Material.Map())
	require.NotNil(t, lo.Image)
	assert.Equal(t, image.UUID, lo.Image.UUID)
}

func TestAssembleDoesNotMutateInputs(t *testing.T) {
	material := DefaultMaterial()
	texture := NewImageTexture()
	root := DefaultObject()
	geometries := []Geometry{unitBox()}

	_, err := Assemble(geometries, material, &texture, nil, root)
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, material.Map())
	assert.Equal(t, uuid.Nil, root.Material())
	assert.Empty(t, root.Children)
}

func TestBuildMintsFreshChildren(t *testing.T) {
	b := NewBuilder().Geometry(unitBox(), NewGeometry(NewSphere(1)))
	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)

	require.Len(t, second.Object.Children, len(first.Object.Children))
	for i := range first.Object.Children {
		assert.NotEqual(t, first.Object.Children[i].UUID, second.Object.Children[i].UUID)
		assert.Equal(t, first.Object.Children[i].Geometry(), second.Object.Children[i].Geometry())
	}
	assert.Equal(t, first.Object.UUID, second.Object.UUID)
	assert.Equal(t, first.Material.UUID, second.Material.UUID)
	assert.Equal(t, second.Material.UUID, second.Object.Material())
}

func TestBuildKeepsExplicitParts(t *testing.T) {
	material := NewMaterial(MeshLambertMaterial)
	root := NewObject(Translation(1, 2, 3), MeshObject)
	b := NewBuilder().Geometry(unitBox()).Material(material).Object(root)

	for i := 0; i < 2; i++ {
		lo, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, material.UUID, lo.Material.UUID)
		assert.Equal(t, root.UUID, lo.Object.UUID)
	}
}

func TestTextPlane(t *testing.T) {
	lo, err := TextPlane(NewTextTexture("Hello, meshcat!", 100, "sans-serif"))
	require.NoError(t, err)
	require.Len(t, lo.Geometries, 1)
	assert.Equal(t, Plane{Width: 10, Height: 10, WidthSegments: 1, HeightSegments: 1}, lo.Geometries[0].Shape)
	require.NotNil(t, lo.Material.Transparent)
	assert.True(t, *lo.Material.Transparent)
	assert.Equal(t, lo.Texture.UUID, lo.Material.Map())
}

func TestPointCloud(t *testing.T) {
	points := []mgl64.Vec3{{0, 0, 0}, {1, 2, 3}}
	lo, err := PointCloud(points, points, 0.001, Translation(2, -2, 0))
	require.NoError(t, err)

	assert.Equal(t, PointsObject, lo.Object.Kind)
	assert.Equal(t, PointsMaterial, lo.Material.Kind)
	assert.Equal(t, 0.001, lo.Material.Size)
	buffer, ok := lo.Geometries[0].Shape.(Buffer)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 3}, buffer.Position.Array)
	assert.Equal(t, 2, buffer.Position.Len())
	assert.Equal(t, mgl64.Vec3{2, -2, 0}, TranslationOf(lo.Object.Matrix))
}
