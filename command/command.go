// Package command encodes scene updates into the viewer's wire format.
//
// A message is three frames: the request type, the scene path, and a
// msgpack map keyed by field name. Path and type are repeated inside the map.
package command

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mogaika/meshcat_client/scene"
)

const (
	TypeSetObject    = "set_object"
	TypeSetTransform = "set_transform"
	TypeSetProperty  = "set_property"
	TypeDelete       = "delete"
)

// Command is one of SetObject, SetTransform, SetProperty or Delete.
type Command interface {
	RequestType() string
	Path() string
	payload() (fields, error)
}

type SetObject struct {
	path   string
	Object *scene.LumpedObject
}

func NewSetObject(path string, object *scene.LumpedObject) *SetObject {
	return &SetObject{path: path, Object: object}
}

func (c *SetObject) RequestType() string { return TypeSetObject }
func (c *SetObject) Path() string        { return c.path }

func (c *SetObject) payload() (fields, error) {
	var f fields
	object, err := lumpedObjectFields(c.Object)
	if err != nil {
		return f, err
	}
	f.set("object", object)
	f.set("path", c.path)
	f.set("type", TypeSetObject)
	return f, nil
}

// SetTransform replaces the pose of the node at path. The matrix goes out
// in full, column-major, like Object matrices.
type SetTransform struct {
	path   string
	Matrix mgl64.Mat4
}

func NewSetTransform(path string, matrix mgl64.Mat4) *SetTransform {
	return &SetTransform{path: path, Matrix: matrix}
}

func (c *SetTransform) RequestType() string { return TypeSetTransform }
func (c *SetTransform) Path() string        { return c.path }

func (c *SetTransform) payload() (fields, error) {
	var f fields
	f.set("matrix", matrixArray(c.Matrix))
	f.set("path", c.path)
	f.set("type", TypeSetTransform)
	return f, nil
}

type SetProperty struct {
	path     string
	Property Property
}

func NewSetProperty(path string, property Property) *SetProperty {
	return &SetProperty{path: path, Property: property}
}

func (c *SetProperty) RequestType() string { return TypeSetProperty }
func (c *SetProperty) Path() string        { return c.path }

func (c *SetProperty) payload() (fields, error) {
	var f fields
	if c.Property == nil {
		return f, errors.New("Nil property")
	}
	f.set("path", c.path)
	f.set("type", TypeSetProperty)
	f.set("property", c.Property.Name())
	f.set("value", c.Property.value())
	return f, nil
}

type Delete struct {
	path string
}

func NewDelete(path string) *Delete {
	return &Delete{path: path}
}

func (c *Delete) RequestType() string { return TypeDelete }
func (c *Delete) Path() string        { return c.path }

func (c *Delete) payload() (fields, error) {
	var f fields
	f.set("path", c.path)
	f.set("type", TypeDelete)
	return f, nil
}

// Encode serializes the payload of c.
func Encode(c Command) ([]byte, error) {
	f, err := c.payload()
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingFailure, "%s %q: %v", c.RequestType(), c.Path(), err)
	}
	buf, err := msgpack.Marshal(f)
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingFailure, "%s %q: %v", c.RequestType(), c.Path(), err)
	}
	return buf, nil
}

// Frames returns the three frames of the message carrying c.
func Frames(c Command) ([][]byte, error) {
	buf, err := Encode(c)
	if err != nil {
		return nil, err
	}
	return [][]byte{
		[]byte(c.RequestType()),
		[]byte(c.Path()),
		buf,
	}, nil
}
