package command

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/scene"
)

// Encoding of the entity model into the three.js JSON object scene format.
// The viewer looks fields up by name, so key spelling is part of the protocol.

func lumpedObjectFields(lo *scene.LumpedObject) (fields, error) {
	var f fields
	if lo == nil {
		return f, errors.New("Nil object")
	}

	var metadata fields
	metadata.set("type", lo.Metadata.Type)
	metadata.set("version", lo.Metadata.Version)
	f.set("metadata", metadata)

	if lo.Texture != nil {
		texture, err := textureFields(*lo.Texture)
		if err != nil {
			return f, err
		}
		f.set("textures", []fields{texture})
	}
	if lo.Image != nil {
		f.set("images", []fields{imageFields(*lo.Image)})
	}

	geometries := make([]fields, len(lo.Geometries))
	for i, g := range lo.Geometries {
		var err error
		if geometries[i], err = geometryFields(g); err != nil {
			return f, errors.Wrapf(err, "Geometry %d", i)
		}
	}
	f.set("geometries", geometries)
	f.set("materials", []fields{materialFields(lo.Material)})
	f.set("object", objectFields(lo.Object))

	return f, nil
}

func geometryFields(g scene.Geometry) (fields, error) {
	var f fields
	if g.Shape == nil {
		return f, errors.Errorf("Geometry %v has no shape", g.UUID)
	}
	f.set("uuid", g.UUID.String())
	f.set("type", g.Shape.Type())

	switch s := g.Shape.(type) {
	case scene.Box:
		f.set("width", s.Width)
		f.set("height", s.Height)
		f.set("depth", s.Depth)
	case scene.Circle:
		f.set("radius", s.Radius)
		f.set("segments", s.Segments)
		f.set("thetaStart", s.ThetaStart)
		f.set("thetaLength", s.ThetaLength)
	case scene.Cone:
		f.set("radius", s.Radius)
		f.set("height", s.Height)
		f.set("radialSegments", s.RadialSegments)
		f.set("heightSegments", s.HeightSegments)
		f.set("thetaStart", s.ThetaStart)
		f.set("thetaLength", s.ThetaLength)
	case scene.Cylinder:
		f.set("radiusTop", s.RadiusTop)
		f.set("radiusBottom", s.RadiusBottom)
		f.set("height", s.Height)
		f.set("radialSegments", s.RadialSegments)
		f.set("heightSegments", s.HeightSegments)
		f.set("thetaStart", s.ThetaStart)
		f.set("thetaLength", s.ThetaLength)
	case scene.Plane:
		f.set("width", s.Width)
		f.set("height", s.Height)
		f.set("widthSegments", s.WidthSegments)
		f.set("heightSegments", s.HeightSegments)
	case scene.Ring:
		f.set("innerRadius", s.InnerRadius)
		f.set("outerRadius", s.OuterRadius)
		f.set("thetaSegments", s.ThetaSegments)
		f.set("phiSegments", s.PhiSegments)
		f.set("thetaStart", s.ThetaStart)
		f.set("thetaLength", s.ThetaLength)
	case scene.Sphere:
		f.set("radius", s.Radius)
		f.set("widthSegments", s.WidthSegments)
		f.set("heightSegments", s.HeightSegments)
	case scene.Torus:
		f.set("radius", s.Radius)
		f.set("tube", s.Tube)
		f.set("radialSegments", s.RadialSegments)
		f.set("tubularSegments", s.TubularSegments)
	case scene.Tetrahedron:
		f.set("radius", s.Radius)
		f.set("detail", s.Detail)
	case scene.Octahedron:
		f.set("radius", s.Radius)
		f.set("detail", s.Detail)
	case scene.Icosahedron:
		f.set("radius", s.Radius)
		f.set("detail", s.Detail)
	case scene.Dodecahedron:
		f.set("radius", s.Radius)
		f.set("detail", s.Detail)
	case scene.Buffer:
		var attributes fields
		attributes.set("position", attributeFields(s.Position))
		attributes.set("color", attributeFields(s.Color))
		if s.Normal != nil {
			attributes.set("normal", attributeFields(*s.Normal))
		}
		if s.UV != nil {
			attributes.set("uv", attributeFields(*s.UV))
		}
		var data fields
		data.set("attributes", attributes)
		f.set("data", data)
	case scene.MeshFile:
		f.set("format", s.Format)
		f.set("data", s.Data)
	default:
		return f, errors.Errorf("Unknown shape %T", g.Shape)
	}
	return f, nil
}

// attributeFields writes the array flat, item after item.
func attributeFields(a scene.Attribute) fields {
	var f fields
	f.set("itemSize", a.ItemSize)
	f.set("type", a.Type)
	array := a.Array
	if array == nil {
		array = []float64{}
	}
	f.set("array", array)
	f.set("normalized", a.Normalized)
	return f
}

func materialFields(m scene.Material) fields {
	var f fields
	f.set("uuid", m.UUID.String())
	f.set("type", m.Kind.String())
	if m.Kind == scene.PointsMaterial {
		f.set("size", m.Size)
	}
	setOptional(&f, "color", m.Color)
	setOptional(&f, "linewidth", m.Linewidth)
	setOptional(&f, "opacity", m.Opacity)
	setOptional(&f, "reflectivity", m.Reflectivity)
	setOptional(&f, "side", m.Side)
	setOptional(&f, "transparent", m.Transparent)
	setOptional(&f, "vertexColors", m.VertexColors)
	setOptional(&f, "wireframe", m.Wireframe)
	setOptional(&f, "wireframeLineWidth", m.WireframeLineWidth)
	f.setOptionalID("map", m.Map())
	return f
}

// textureFields writes the variant without a discriminant: text textures are
// recognized by their "_text" type, image textures by image/repeat/wrap.
func textureFields(t scene.Texture) (fields, error) {
	var f fields
	f.set("uuid", t.UUID.String())
	switch c := t.Content.(type) {
	case scene.TextTexture:
		f.set("type", scene.TextTextureType)
		f.set("text", c.Text)
		f.set("font_size", c.FontSize)
		f.set("font_face", c.FontFace)
	case scene.ImageTexture:
		f.setID("image", c.Image())
		f.set("repeat", c.Repeat[:])
		f.set("wrap", c.Wrap[:])
	default:
		return f, errors.Errorf("Unknown texture content %T", t.Content)
	}
	return f, nil
}

func imageFields(i scene.Image) fields {
	var f fields
	f.set("uuid", i.UUID.String())
	f.set("url", i.URL)
	return f
}

func objectFields(o scene.Object) fields {
	var f fields
	f.set("uuid", o.UUID.String())
	f.setID("material", o.Material())
	f.setOptionalID("geometry", o.Geometry())
	if len(o.Children) != 0 {
		children := make([]fields, len(o.Children))
		for i, child := range o.Children {
			children[i] = objectFields(child)
		}
		f.set("children", children)
	}
	f.set("matrix", matrixArray(o.Matrix))
	f.set("type", o.Kind.String())
	return f
}

func matrixArray(m mgl64.Mat4) []float64 {
	return append([]float64(nil), m[:]...)
}

func setOptional[T any](f *fields, key string, v *T) {
	if v != nil {
		f.set(key, *v)
	}
}
