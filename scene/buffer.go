package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

const Float32Array = "Float32Array"

// Attribute is a flat run of ItemSize-wide items.
type Attribute struct {
	ItemSize   int
	Type       string
	Array      []float64
	Normalized bool
}

func NewAttribute(itemSize int, array []float64) Attribute {
	return Attribute{
		ItemSize: itemSize,
		Type:     Float32Array,
		Array:    array,
	}
}

func Vec3Attribute(items []mgl64.Vec3) Attribute {
	array := make([]float64, 0, len(items)*3)
	for _, v := range items {
		array = append(array, v[0], v[1], v[2])
	}
	return NewAttribute(3, array)
}

func Vec2Attribute(items []mgl64.Vec2) Attribute {
	array := make([]float64, 0, len(items)*2)
	for _, v := range items {
		array = append(array, v[0], v[1])
	}
	return NewAttribute(2, array)
}

// Len returns the number of items.
func (a Attribute) Len() int {
	if a.ItemSize == 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

// Buffer is raw point or line data. Position and Color are mandatory.
type Buffer struct {
	Position Attribute
	Color    Attribute
	Normal   *Attribute
	UV       *Attribute
}

// MeshFile is a mesh file passed through untouched, the viewer parses it.
type MeshFile struct {
	Format string
	Data   string
}

func (Buffer) Type() string   { return "BufferGeometry" }
func (MeshFile) Type() string { return "_meshfile_geometry" }

func (Buffer) shape()   {}
func (MeshFile) shape() {}
