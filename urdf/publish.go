package urdf

import (
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcat_client/loader"
	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/scene"
)

var (
	ErrUnsupportedGeometry = errors.New("Unsupported urdf geometry")
	ErrMissingGeometry     = errors.New("Geometry element without shape")
)

// Publisher is implemented by transport.Client.
type Publisher interface {
	Delete(path string) (string, error)
	SetObject(path string, object *scene.LumpedObject) (string, error)
	SetTransform(path string, matrix mgl64.Mat4) (string, error)
}

type Options struct {
	// BaseDir resolves relative mesh filenames, usually the directory of
	// the urdf file.
	BaseDir string
	// Collision publishes collision elements instead of visuals.
	Collision bool
	Material  *scene.Material
}

// Publish replaces whatever the viewer shows at the robot paths: it deletes
// every path, sets an object for each link with geometry and then sets each
// joint transform. Geometries are loaded before anything is sent.
func Publish(p Publisher, robot *Robot, opts Options) error {
	log := logger.Component("urdf").WithField("robot", robot.Name)
	paths := Names(robot)

	objects := make(map[string]*scene.LumpedObject)
	for _, link := range robot.Links {
		elements := link.Visuals
		if opts.Collision {
			elements = link.Collisions
		}
		if len(elements) == 0 {
			continue
		}

		var geometries []scene.Geometry
		for _, element := range elements {
			g, err := Geometries(element, opts.BaseDir)
			if err != nil {
				return errors.Wrapf(err, "Link %q", link.Name)
			}
			geometries = append(geometries, g...)
		}

		b := scene.NewBuilder().Geometry(geometries...)
		if opts.Material != nil {
			b.Material(*opts.Material)
		}
		lo, err := b.Build()
		if err != nil {
			return errors.Wrapf(err, "Link %q", link.Name)
		}
		objects[link.Name] = lo
	}

	for _, path := range paths.All(robot) {
		if _, err := p.Delete(path); err != nil {
			return err
		}
	}

	for _, link := range robot.Links {
		lo, ok := objects[link.Name]
		if !ok {
			continue
		}
		if _, err := p.SetObject(paths.Links[link.Name], lo); err != nil {
			return err
		}
	}

	for _, joint := range robot.Joints {
		pose := scene.Pose(mgl64.Vec3(joint.Origin.XYZ), mgl64.Vec3(joint.Origin.RPY))
		if _, err := p.SetTransform(paths.Joints[joint.Name], pose); err != nil {
			return err
		}
	}

	log.Infof("Published %d links and %d joints", len(objects), len(robot.Joints))
	return nil
}

// Geometries converts one visual or collision element. Meshes may expand
// to several geometries when they are glTF scenes.
func Geometries(v Visual, baseDir string) ([]scene.Geometry, error) {
	origin := scene.Pose(mgl64.Vec3(v.Origin.XYZ), mgl64.Vec3(v.Origin.RPY))
	g := v.Geometry

	switch {
	case g.Box != nil:
		return []scene.Geometry{scene.NewGeometryWithOrigin(scene.Box{
			Width:  g.Box.Size[0],
			Height: g.Box.Size[1],
			Depth:  g.Box.Size[2],
		}, origin)}, nil
	case g.Cylinder != nil:
		return []scene.Geometry{scene.NewGeometryWithOrigin(
			scene.NewCylinder(g.Cylinder.Radius, g.Cylinder.Length), origin)}, nil
	case g.Sphere != nil:
		return []scene.Geometry{scene.NewGeometryWithOrigin(scene.NewSphere(g.Sphere.Radius), origin)}, nil
	case g.Capsule != nil:
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "capsule in %q", v.Name)
	case g.Mesh != nil:
		return loader.LoadGeometries(ResolveMesh(g.Mesh.Filename, baseDir), origin)
	}
	return nil, errors.Wrapf(ErrMissingGeometry, "%q", v.Name)
}

// ResolveMesh strips package:// and file:// prefixes and makes relative
// filenames relative to baseDir.
func ResolveMesh(filename, baseDir string) string {
	filename = strings.TrimPrefix(filename, "package://")
	filename = strings.TrimPrefix(filename, "file://")
	if filepath.IsAbs(filename) || baseDir == "" {
		return filename
	}
	return filepath.Join(baseDir, filename)
}
