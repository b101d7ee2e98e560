package command

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/utils"
)

// Property is a value for SetProperty. The encoded value has no type tag:
// the receiver knows its shape from the property name alone, so every name
// maps to exactly one shape.
type Property interface {
	Name() string
	value() interface{}
}

type (
	Visible          bool
	Position         mgl64.Vec3
	Quaternion       mgl64.Vec4 // x, y, z, w
	Scale            mgl64.Vec3
	Color            mgl64.Vec4 // r, g, b, a
	Opacity          float64
	ModulatedOpacity float64
	TopColor         mgl64.Vec3
	BottomColor      mgl64.Vec3
)

func (Visible) Name() string          { return "visible" }
func (Position) Name() string         { return "position" }
func (Quaternion) Name() string       { return "quaternion" }
func (Scale) Name() string            { return "scale" }
func (Color) Name() string            { return "color" }
func (Opacity) Name() string          { return "opacity" }
func (ModulatedOpacity) Name() string { return "modulated_opacity" }
func (TopColor) Name() string         { return "top_color" }
func (BottomColor) Name() string      { return "bottom_color" }

func (p Visible) value() interface{}          { return bool(p) }
func (p Position) value() interface{}         { return p[:] }
func (p Quaternion) value() interface{}       { return p[:] }
func (p Scale) value() interface{}            { return p[:] }
func (p Color) value() interface{}            { return p[:] }
func (p Opacity) value() interface{}          { return float64(p) }
func (p ModulatedOpacity) value() interface{} { return float64(p) }
func (p TopColor) value() interface{}         { return p[:] }
func (p BottomColor) value() interface{}      { return p[:] }

func QuaternionOf(q mgl64.Quat) Quaternion {
	return Quaternion(utils.QuatXYZW(q))
}

type valueShape int

const (
	shapeBool valueShape = iota
	shapeScalar
	shapeVec3
	shapeVec4
)

var propertyShapes = map[string]valueShape{
	"visible":           shapeBool,
	"position":          shapeVec3,
	"quaternion":        shapeVec4,
	"scale":             shapeVec3,
	"color":             shapeVec4,
	"opacity":           shapeScalar,
	"modulated_opacity": shapeScalar,
	"top_color":         shapeVec3,
	"bottom_color":      shapeVec3,
}

// ParseProperty rebuilds a property from its name and an untyped value, as
// produced by JSON or msgpack decoding.
func ParseProperty(name string, value interface{}) (Property, error) {
	shape, ok := propertyShapes[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProperty, "%q", name)
	}

	switch shape {
	case shapeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, errors.Wrapf(ErrPropertyShape, "%q wants bool, got %T", name, value)
		}
		return Visible(b), nil
	case shapeScalar:
		s, ok := toFloat(value)
		if !ok {
			return nil, errors.Wrapf(ErrPropertyShape, "%q wants number, got %T", name, value)
		}
		if name == "opacity" {
			return Opacity(s), nil
		}
		return ModulatedOpacity(s), nil
	case shapeVec3:
		v, err := toVector(name, value, 3)
		if err != nil {
			return nil, err
		}
		vec := mgl64.Vec3{v[0], v[1], v[2]}
		switch name {
		case "position":
			return Position(vec), nil
		case "scale":
			return Scale(vec), nil
		case "top_color":
			return TopColor(vec), nil
		default:
			return BottomColor(vec), nil
		}
	default:
		v, err := toVector(name, value, 4)
		if err != nil {
			return nil, err
		}
		vec := mgl64.Vec4{v[0], v[1], v[2], v[3]}
		if name == "quaternion" {
			return Quaternion(vec), nil
		}
		return Color(vec), nil
	}
}

func toVector(name string, value interface{}, size int) ([]float64, error) {
	var items []interface{}
	switch v := value.(type) {
	case []interface{}:
		items = v
	case []float64:
		if len(v) != size {
			return nil, errors.Wrapf(ErrPropertyShape, "%q wants %d numbers, got %d", name, size, len(v))
		}
		return v, nil
	default:
		return nil, errors.Wrapf(ErrPropertyShape, "%q wants %d numbers, got %T", name, size, value)
	}
	if len(items) != size {
		return nil, errors.Wrapf(ErrPropertyShape, "%q wants %d numbers, got %d", name, size, len(items))
	}
	out := make([]float64, size)
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, errors.Wrapf(ErrPropertyShape, "%q item %d is %T", name, i, item)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
