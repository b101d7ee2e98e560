package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type ObjectKind int

const (
	MeshObject ObjectKind = iota
	PointsObject
	LineSegmentsObject
)

func (k ObjectKind) String() string {
	switch k {
	case PointsObject:
		return "Points"
	case LineSegmentsObject:
		return "LineSegments"
	default:
		return "Mesh"
	}
}

// ParseObjectKind maps Mesh, Points or LineSegments back to its kind.
func ParseObjectKind(name string) (ObjectKind, bool) {
	for _, k := range []ObjectKind{MeshObject, PointsObject, LineSegmentsObject} {
		if k.String() == name {
			return k, true
		}
	}
	return MeshObject, false
}

// Object is a posed node of the scene graph. Material and geometry references
// are filled in by Assemble.
type Object struct {
	UUID     uuid.UUID
	Kind     ObjectKind
	Matrix   mgl64.Mat4
	Children []Object

	material uuid.UUID
	geometry uuid.UUID
}

func NewObject(pose mgl64.Mat4, kind ObjectKind) Object {
	return Object{
		UUID:   uuid.New(),
		Kind:   kind,
		Matrix: pose,
	}
}

func DefaultObject() Object {
	return NewObject(mgl64.Ident4(), MeshObject)
}

// Material returns the referenced material identifier or uuid.Nil.
func (o Object) Material() uuid.UUID {
	return o.material
}

// Geometry returns the referenced geometry identifier or uuid.Nil. Root
// objects have none, their children carry the geometries.
func (o Object) Geometry() uuid.UUID {
	return o.geometry
}
