package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type Metadata struct {
	Type    string
	Version float64
}

func DefaultMetadata() Metadata {
	return Metadata{Type: "Object", Version: 4.5}
}

// LumpedObject is what a set_object command creates or replaces: one object
// with the geometries, material and optional texture and image it owns.
// Textures, images and materials are lists in the scene format, but a single
// element is all an object ever needs here.
type LumpedObject struct {
	Metadata   Metadata
	Texture    *Texture
	Image      *Image
	Geometries []Geometry
	Material   Material
	Object     Object
}

// Assemble wires identifiers between the parts and builds one child of root
// per geometry. The arguments are not modified. Children get fresh
// identifiers every call.
//
// The image is referenced only by an image texture. A text texture given
// together with an image leaves the image listed but unreferenced.
func Assemble(geometries []Geometry, material Material, texture *Texture, image *Image, root Object) (*LumpedObject, error) {
	if len(geometries) == 0 {
		return nil, ErrEmptyScene
	}

	lo := &LumpedObject{
		Metadata:   DefaultMetadata(),
		Geometries: append([]Geometry(nil), geometries...),
		Material:   material,
		Object:     root,
	}

	if image != nil {
		img := *image
		lo.Image = &img
	}

	lo.Material.texture = uuid.Nil
	if texture != nil {
		tex := *texture
		if content, ok := tex.Content.(ImageTexture); ok && image != nil {
			content.image = image.UUID
			tex.Content = content
		}
		lo.Texture = &tex
		lo.Material.texture = tex.UUID
	}

	lo.Object.material = lo.Material.UUID
	lo.Object.Children = make([]Object, len(geometries))
	for i, geometry := range geometries {
		lo.Object.Children[i] = Object{
			UUID:     uuid.New(),
			Kind:     root.Kind,
			Matrix:   geometry.childPose(),
			material: lo.Material.UUID,
			geometry: geometry.UUID,
		}
	}

	return lo, nil
}

// Builder collects the optional parts of an object before Build assembles
// them. Omitted parts get defaults: phong material and a mesh at the origin.
type Builder struct {
	metadata   *Metadata
	geometries []Geometry
	material   *Material
	texture    *Texture
	image      *Image
	object     *Object
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Metadata(m Metadata) *Builder {
	b.metadata = &m
	return b
}

func (b *Builder) Geometry(geometries ...Geometry) *Builder {
	b.geometries = append(b.geometries, geometries...)
	return b
}

func (b *Builder) Material(m Material) *Builder {
	b.material = &m
	return b
}

func (b *Builder) Texture(t Texture) *Builder {
	b.texture = &t
	return b
}

func (b *Builder) Image(i Image) *Builder {
	b.image = &i
	return b
}

func (b *Builder) Object(o Object) *Builder {
	b.object = &o
	return b
}

// Build assembles the collected parts. Defaults are minted on the first
// call and kept, so repeated builds share the material and root identifiers
// and differ only in their children.
func (b *Builder) Build() (*LumpedObject, error) {
	if b.material == nil {
		m := DefaultMaterial()
		b.material = &m
	}
	if b.object == nil {
		o := DefaultObject()
		b.object = &o
	}

	lo, err := Assemble(b.geometries, *b.material, b.texture, b.image, *b.object)
	if err != nil {
		return nil, err
	}
	if b.metadata != nil {
		lo.Metadata = *b.metadata
	}
	return lo, nil
}

// TextPlane shows a text texture on a 10x10 plane.
func TextPlane(texture Texture) (*LumpedObject, error) {
	return NewBuilder().
		Texture(texture).
		Geometry(NewGeometry(Plane{Width: 10, Height: 10, WidthSegments: 1, HeightSegments: 1})).
		Material(NewMaterial(MeshPhongMaterial, WithTransparent(true))).
		Build()
}

// PointCloud builds a colored point cloud placed at pose. colors must have
// the same length as points.
func PointCloud(points, colors []mgl64.Vec3, size float64, pose mgl64.Mat4) (*LumpedObject, error) {
	return NewBuilder().
		Geometry(NewGeometry(Buffer{
			Position: Vec3Attribute(points),
			Color:    Vec3Attribute(colors),
		})).
		Material(NewPointsMaterial(size, WithVertexColors(true))).
		Object(NewObject(pose, PointsObject)).
		Build()
}
