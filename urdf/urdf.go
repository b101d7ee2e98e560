// Package urdf reads URDF robot descriptions and publishes them to a viewer.
package urdf

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type Robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []Link   `xml:"link"`
	Joints  []Joint  `xml:"joint"`
}

type Link struct {
	Name       string   `xml:"name,attr"`
	Visuals    []Visual `xml:"visual"`
	Collisions []Visual `xml:"collision"`
}

// Visual is used for both visual and collision elements, they share the
// same layout.
type Visual struct {
	Name     string   `xml:"name,attr"`
	Origin   Origin   `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

type Origin struct {
	XYZ Vec3 `xml:"xyz,attr"`
	RPY Vec3 `xml:"rpy,attr"`
}

// Geometry holds exactly one non-nil shape.
type Geometry struct {
	Box      *Box      `xml:"box"`
	Cylinder *Cylinder `xml:"cylinder"`
	Sphere   *Sphere   `xml:"sphere"`
	Capsule  *Capsule  `xml:"capsule"`
	Mesh     *Mesh     `xml:"mesh"`
}

type Box struct {
	Size Vec3 `xml:"size,attr"`
}

type Cylinder struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

type Sphere struct {
	Radius float64 `xml:"radius,attr"`
}

type Capsule struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

type Mesh struct {
	Filename string `xml:"filename,attr"`
	Scale    *Vec3  `xml:"scale,attr"`
}

type Joint struct {
	Name   string  `xml:"name,attr"`
	Type   string  `xml:"type,attr"`
	Origin Origin  `xml:"origin"`
	Parent LinkRef `xml:"parent"`
	Child  LinkRef `xml:"child"`
}

type LinkRef struct {
	Link string `xml:"link,attr"`
}

// Vec3 is a space separated triple such as "0 0.5 1".
type Vec3 mgl64.Vec3

func (v *Vec3) UnmarshalXMLAttr(attr xml.Attr) error {
	parts := strings.Fields(attr.Value)
	if len(parts) != 3 {
		return errors.Errorf("Attribute %s: expected 3 numbers, got %q", attr.Name.Local, attr.Value)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return errors.Wrapf(err, "Attribute %s", attr.Name.Local)
		}
		v[i] = f
	}
	return nil
}

func Parse(r io.Reader) (*Robot, error) {
	var robot Robot
	if err := xml.NewDecoder(r).Decode(&robot); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse urdf")
	}
	return &robot, nil
}

func Open(path string) (*Robot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to load file %q", path)
	}
	defer f.Close()

	robot, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", path)
	}
	return robot, nil
}
