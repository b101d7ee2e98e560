package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Shape is one of the geometry variants understood by the viewer.
type Shape interface {
	// Type returns the three.js geometry type name.
	Type() string
	shape()
}

// Geometry pairs a shape with its identifier. Origin is only used when the
// geometry becomes a child of a multi-geometry object.
type Geometry struct {
	UUID   uuid.UUID
	Shape  Shape
	Origin mgl64.Mat4
}

func NewGeometry(shape Shape) Geometry {
	return NewGeometryWithOrigin(shape, mgl64.Ident4())
}

func NewGeometryWithOrigin(shape Shape, origin mgl64.Mat4) Geometry {
	return Geometry{
		UUID:   uuid.New(),
		Shape:  shape,
		Origin: origin,
	}
}

// childPose returns the pose of the object that renders g inside its parent.
func (g Geometry) childPose() mgl64.Mat4 {
	if _, ok := g.Shape.(Cylinder); ok {
		return g.Origin.Mul4(cylinderCorrection)
	}
	return g.Origin
}

type Box struct {
	Width  float64
	Height float64
	Depth  float64
}

type Circle struct {
	Radius      float64
	Segments    uint32
	ThetaStart  float64
	ThetaLength float64
}

type Cone struct {
	Radius         float64
	Height         float64
	RadialSegments uint32
	HeightSegments uint32
	ThetaStart     float64
	ThetaLength    float64
}

type Cylinder struct {
	RadiusTop      float64
	RadiusBottom   float64
	Height         float64
	RadialSegments uint32
	HeightSegments uint32
	ThetaStart     float64
	ThetaLength    float64
}

type Plane struct {
	Width          float64
	Height         float64
	WidthSegments  uint32
	HeightSegments uint32
}

type Ring struct {
	InnerRadius   float64
	OuterRadius   float64
	ThetaSegments uint32
	PhiSegments   uint32
	ThetaStart    float64
	ThetaLength   float64
}

type Sphere struct {
	Radius         float64
	WidthSegments  uint32
	HeightSegments uint32
}

type Torus struct {
	Radius          float64
	Tube            float64
	RadialSegments  uint32
	TubularSegments uint32
}

// Polyhedra are subdivided Detail times.
type Tetrahedron struct {
	Radius float64
	Detail uint32
}

type Octahedron struct {
	Radius float64
	Detail uint32
}

type Icosahedron struct {
	Radius float64
	Detail uint32
}

type Dodecahedron struct {
	Radius float64
	Detail uint32
}

func (Box) Type() string          { return "BoxGeometry" }
func (Circle) Type() string       { return "CircleGeometry" }
func (Cone) Type() string         { return "ConeGeometry" }
func (Cylinder) Type() string     { return "CylinderGeometry" }
func (Plane) Type() string        { return "PlaneGeometry" }
func (Ring) Type() string         { return "RingGeometry" }
func (Sphere) Type() string       { return "SphereGeometry" }
func (Torus) Type() string        { return "TorusGeometry" }
func (Tetrahedron) Type() string  { return "TetrahedronGeometry" }
func (Octahedron) Type() string   { return "OctahedronGeometry" }
func (Icosahedron) Type() string  { return "IcosahedronGeometry" }
func (Dodecahedron) Type() string { return "DodecahedronGeometry" }

func (Box) shape()          {}
func (Circle) shape()       {}
func (Cone) shape()         {}
func (Cylinder) shape()     {}
func (Plane) shape()        {}
func (Ring) shape()         {}
func (Sphere) shape()       {}
func (Torus) shape()        {}
func (Tetrahedron) shape()  {}
func (Octahedron) shape()   {}
func (Icosahedron) shape()  {}
func (Dodecahedron) shape() {}

// NewCylinder returns a closed cylinder with the segment counts robot
// descriptions get by default.
func NewCylinder(radius, length float64) Cylinder {
	return Cylinder{
		RadiusTop:      radius,
		RadiusBottom:   radius,
		Height:         length,
		RadialSegments: 32,
		HeightSegments: 1,
		ThetaStart:     0,
		ThetaLength:    2 * math.Pi,
	}
}

func NewSphere(radius float64) Sphere {
	return Sphere{Radius: radius, WidthSegments: 32, HeightSegments: 16}
}
