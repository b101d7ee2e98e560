package web

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/scene"
)

// poseRequest is a full column-major matrix, or a translation with either
// roll/pitch/yaw or an x,y,z,w quaternion.
type poseRequest struct {
	Matrix     []float64   `json:"matrix"`
	XYZ        *[3]float64 `json:"xyz"`
	RPY        *[3]float64 `json:"rpy"`
	Quaternion *[4]float64 `json:"quaternion"`
}

func (p *poseRequest) matrix() (mgl64.Mat4, error) {
	if p == nil {
		return mgl64.Ident4(), nil
	}
	if p.Matrix != nil {
		if len(p.Matrix) != 16 {
			return mgl64.Mat4{}, errors.Errorf("Matrix must have 16 numbers, got %d", len(p.Matrix))
		}
		var m mgl64.Mat4
		copy(m[:], p.Matrix)
		return m, nil
	}
	if p.RPY != nil && p.Quaternion != nil {
		return mgl64.Mat4{}, errors.New("Pose has both rpy and quaternion")
	}

	var xyz mgl64.Vec3
	if p.XYZ != nil {
		xyz = mgl64.Vec3(*p.XYZ)
	}
	if p.Quaternion != nil {
		q := p.Quaternion
		return scene.PoseQuat(xyz, mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}), nil
	}
	var rpy mgl64.Vec3
	if p.RPY != nil {
		rpy = mgl64.Vec3(*p.RPY)
	}
	return scene.Pose(xyz, rpy), nil
}

type materialRequest struct {
	Type               string
	Size               float64
	Color              *uint32
	Linewidth          *float64
	Opacity            *float64
	Reflectivity       *float64
	Side               *uint16
	Transparent        *bool
	VertexColors       *bool
	Wireframe          *bool
	WireframeLineWidth *float64
}

type bufferRequest struct {
	Position []float64
	Color    []float64
	Normal   []float64
	UV       []float64
}

func decode(input interface{}, out interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(unsignedHook),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return d.Decode(input)
}

// shapeName accepts both three.js names and short ones: "CylinderGeometry",
// "cylinder", "_meshfile_geometry", "meshfile".
func shapeName(kind string) string {
	k := strings.ToLower(kind)
	k = strings.TrimSuffix(k, "geometry")
	return strings.Trim(k, "_")
}

// decodeGeometry reads {"type": ..., "origin": {...}, shape fields...}.
// Missing shape fields keep the three.js defaults.
func decodeGeometry(fields map[string]interface{}) (scene.Geometry, error) {
	rest := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		rest[k] = v
	}
	kind, _ := rest["type"].(string)
	delete(rest, "type")

	origin := mgl64.Ident4()
	if raw, ok := rest["origin"]; ok {
		delete(rest, "origin")
		var p poseRequest
		if err := decode(raw, &p); err != nil {
			return scene.Geometry{}, errors.Wrapf(err, "Origin")
		}
		var err error
		if origin, err = p.matrix(); err != nil {
			return scene.Geometry{}, errors.Wrapf(err, "Origin")
		}
	}

	shape, err := decodeShape(kind, rest)
	if err != nil {
		return scene.Geometry{}, errors.Wrapf(err, "Geometry %q", kind)
	}
	return scene.NewGeometryWithOrigin(shape, origin), nil
}

func decodeShape(kind string, fields map[string]interface{}) (scene.Shape, error) {
	switch shapeName(kind) {
	case "box":
		return decodeInto(scene.Box{Width: 1, Height: 1, Depth: 1}, fields)
	case "circle":
		return decodeInto(scene.Circle{Radius: 1, Segments: 32, ThetaLength: 2 * math.Pi}, fields)
	case "cone":
		return decodeInto(scene.Cone{Radius: 1, Height: 1, RadialSegments: 32, HeightSegments: 1, ThetaLength: 2 * math.Pi}, fields)
	case "cylinder":
		return decodeInto(scene.NewCylinder(1, 1), fields)
	case "plane":
		return decodeInto(scene.Plane{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1}, fields)
	case "ring":
		return decodeInto(scene.Ring{InnerRadius: 0.5, OuterRadius: 1, ThetaSegments: 32, PhiSegments: 1, ThetaLength: 2 * math.Pi}, fields)
	case "sphere":
		return decodeInto(scene.NewSphere(1), fields)
	case "torus":
		return decodeInto(scene.Torus{Radius: 1, Tube: 0.4, RadialSegments: 12, TubularSegments: 48}, fields)
	case "tetrahedron":
		return decodeInto(scene.Tetrahedron{Radius: 1}, fields)
	case "octahedron":
		return decodeInto(scene.Octahedron{Radius: 1}, fields)
	case "icosahedron":
		return decodeInto(scene.Icosahedron{Radius: 1}, fields)
	case "dodecahedron":
		return decodeInto(scene.Dodecahedron{Radius: 1}, fields)
	case "meshfile":
		var s scene.MeshFile
		if err := decode(fields, &s); err != nil {
			return nil, err
		}
		if s.Format == "" {
			return nil, errors.New("Mesh file without format")
		}
		return s, nil
	case "buffer":
		var b bufferRequest
		if err := decode(fields, &b); err != nil {
			return nil, err
		}
		return b.shape()
	}
	return nil, errors.New("Unknown geometry type")
}

func decodeInto[T scene.Shape](s T, fields map[string]interface{}) (scene.Shape, error) {
	if err := decode(fields, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (b bufferRequest) shape() (scene.Shape, error) {
	if len(b.Position) == 0 || len(b.Position)%3 != 0 {
		return nil, errors.Errorf("Position must be a non-empty flat list of xyz, got %d numbers", len(b.Position))
	}
	color := b.Color
	if color == nil {
		color = make([]float64, len(b.Position))
		for i := range color {
			color[i] = 1
		}
	}
	if len(color) != len(b.Position) {
		return nil, errors.Errorf("Color has %d numbers, position %d", len(color), len(b.Position))
	}

	buffer := scene.Buffer{
		Position: scene.NewAttribute(3, b.Position),
		Color:    scene.NewAttribute(3, color),
	}
	if b.Normal != nil {
		if len(b.Normal) != len(b.Position) {
			return nil, errors.Errorf("Normal has %d numbers, position %d", len(b.Normal), len(b.Position))
		}
		n := scene.NewAttribute(3, b.Normal)
		buffer.Normal = &n
	}
	if b.UV != nil {
		if len(b.UV)/2 != len(b.Position)/3 || len(b.UV)%2 != 0 {
			return nil, errors.Errorf("UV has %d numbers for %d vertices", len(b.UV), len(b.Position)/3)
		}
		uv := scene.NewAttribute(2, b.UV)
		buffer.UV = &uv
	}
	return buffer, nil
}

func decodeMaterial(fields map[string]interface{}) (scene.Material, error) {
	var m materialRequest
	if err := decode(fields, &m); err != nil {
		return scene.Material{}, errors.Wrapf(err, "Material")
	}

	kind := scene.MeshPhongMaterial
	if m.Type != "" {
		var ok bool
		if kind, ok = scene.ParseMaterialKind(m.Type); !ok {
			return scene.Material{}, errors.Errorf("Unknown material type %q", m.Type)
		}
	}

	var opts []scene.MaterialOption
	if m.Color != nil {
		opts = append(opts, scene.WithColor(*m.Color))
	}
	if m.Linewidth != nil {
		opts = append(opts, scene.WithLinewidth(*m.Linewidth))
	}
	if m.Opacity != nil {
		opts = append(opts, scene.WithOpacity(*m.Opacity))
	}
	if m.Reflectivity != nil {
		opts = append(opts, scene.WithReflectivity(*m.Reflectivity))
	}
	if m.Side != nil {
		opts = append(opts, scene.WithSide(*m.Side))
	}
	if m.Transparent != nil {
		opts = append(opts, scene.WithTransparent(*m.Transparent))
	}
	if m.VertexColors != nil {
		opts = append(opts, scene.WithVertexColors(*m.VertexColors))
	}
	if m.Wireframe != nil {
		opts = append(opts, scene.WithWireframe(*m.Wireframe))
	}
	if m.WireframeLineWidth != nil {
		opts = append(opts, scene.WithWireframeLineWidth(*m.WireframeLineWidth))
	}

	if kind == scene.PointsMaterial {
		return scene.NewPointsMaterial(m.Size, opts...), nil
	}
	if m.Size != 0 {
		return scene.Material{}, errors.Errorf("Size is only valid for %s", scene.PointsMaterial)
	}
	return scene.NewMaterial(kind, opts...), nil
}

// unsignedHook rejects numbers that would wrap or truncate when stored in an
// unsigned field: segment counts and polyhedron detail.
func unsignedHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	var f float64
	v := reflect.ValueOf(data)
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.String:
		var err error
		if n, ok := data.(json.Number); ok {
			f, err = n.Float64()
		} else {
			f, err = strconv.ParseFloat(v.String(), 64)
		}
		if err != nil {
			return nil, errors.Errorf("Expected a whole number, got %q", v.String())
		}
	default:
		return data, nil
	}

	if f < 0 || f != math.Trunc(f) || f > float64(uint64(1)<<to.Bits()-1) {
		return nil, errors.Errorf("Expected a whole number between 0 and %d, got %v", uint64(1)<<to.Bits()-1, data)
	}
	return uint64(f), nil
}
