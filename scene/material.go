package scene

import (
	"github.com/google/uuid"
)

type MaterialKind int

const (
	MeshBasicMaterial MaterialKind = iota
	MeshPhongMaterial
	MeshLambertMaterial
	MeshToonMaterial
	LineBasicMaterial
	PointsMaterial
)

var materialKindNames = [...]string{
	MeshBasicMaterial:   "MeshBasicMaterial",
	MeshPhongMaterial:   "MeshPhongMaterial",
	MeshLambertMaterial: "MeshLambertMaterial",
	MeshToonMaterial:    "MeshToonMaterial",
	LineBasicMaterial:   "LineBasicMaterial",
	PointsMaterial:      "PointsMaterial",
}

func (k MaterialKind) String() string {
	if k < 0 || int(k) >= len(materialKindNames) {
		return "MeshPhongMaterial"
	}
	return materialKindNames[k]
}

// ParseMaterialKind maps a three.js material type name back to its kind.
func ParseMaterialKind(name string) (MaterialKind, bool) {
	for k, n := range materialKindNames {
		if n == name {
			return MaterialKind(k), true
		}
	}
	return MeshPhongMaterial, false
}

// DoubleSide is the three.js side constant every material defaults to.
const DoubleSide uint16 = 2

// Material describes surface appearance. Nil decorations are left to the
// viewer's defaults. Size is only meaningful for PointsMaterial; line width
// of LineBasicMaterial goes through Linewidth.
type Material struct {
	UUID uuid.UUID
	Kind MaterialKind
	Size float64

	Color              *uint32
	Linewidth          *float64
	Opacity            *float64
	Reflectivity       *float64
	Side               *uint16
	Transparent        *bool
	VertexColors       *bool
	Wireframe          *bool
	WireframeLineWidth *float64

	texture uuid.UUID
}

type MaterialOption func(*Material)

func NewMaterial(kind MaterialKind, opts ...MaterialOption) Material {
	m := Material{
		UUID: uuid.New(),
		Kind: kind,
		Side: ptr(DoubleSide),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func DefaultMaterial() Material {
	return NewMaterial(MeshPhongMaterial)
}

func NewPointsMaterial(size float64, opts ...MaterialOption) Material {
	m := NewMaterial(PointsMaterial, opts...)
	m.Size = size
	return m
}

// Map returns the identifier of the texture drawn on the material, or
// uuid.Nil. It is only ever set while assembling an object.
func (m Material) Map() uuid.UUID {
	return m.texture
}

func WithColor(rgb uint32) MaterialOption {
	return func(m *Material) { m.Color = ptr(rgb) }
}

func WithLinewidth(w float64) MaterialOption {
	return func(m *Material) { m.Linewidth = ptr(w) }
}

func WithOpacity(o float64) MaterialOption {
	return func(m *Material) { m.Opacity = ptr(o) }
}

func WithReflectivity(r float64) MaterialOption {
	return func(m *Material) { m.Reflectivity = ptr(r) }
}

func WithSide(side uint16) MaterialOption {
	return func(m *Material) { m.Side = ptr(side) }
}

func WithTransparent(t bool) MaterialOption {
	return func(m *Material) { m.Transparent = ptr(t) }
}

func WithVertexColors(v bool) MaterialOption {
	return func(m *Material) { m.VertexColors = ptr(v) }
}

func WithWireframe(w bool) MaterialOption {
	return func(m *Material) { m.Wireframe = ptr(w) }
}

func WithWireframeLineWidth(w float64) MaterialOption {
	return func(m *Material) { m.WireframeLineWidth = ptr(w) }
}

func ptr[T any](v T) *T {
	return &v
}
