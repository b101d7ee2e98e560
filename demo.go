package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/loader"
	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/scene"
	"github.com/mogaika/meshcat_client/utils"
)

type demoObject struct {
	path   string
	object *scene.LumpedObject
}

type demoOptions struct {
	image  string
	mesh   string
	points int
	random bool
}

func at(x, y, z float64) scene.Object {
	return scene.NewObject(scene.Translation(x, y, z), scene.MeshObject)
}

func primitive(shape scene.Shape, color uint32, x, y float64) (*scene.LumpedObject, error) {
	return scene.NewBuilder().
		Geometry(scene.NewGeometry(shape)).
		Material(scene.NewMaterial(scene.MeshPhongMaterial, scene.WithColor(color))).
		Object(at(x, y, 0)).
		Build()
}

func randomPointCloud(n int, seed int64) (*scene.LumpedObject, error) {
	r := rand.New(rand.NewSource(seed))
	points := make([]mgl64.Vec3, n)
	for i := range points {
		points[i] = mgl64.Vec3{r.Float64(), r.Float64(), r.Float64()}
	}
	// position doubles as color
	return scene.PointCloud(points, points, 0.001, scene.Translation(2, -2, 0))
}

// demoScene returns every primitive kind the viewer supports, a point cloud
// and a text plane, plus a textured mesh when image and mesh are set.
func demoScene(opts demoOptions) ([]demoObject, error) {
	fullCircle := 2 * math.Pi
	var objects []demoObject
	add := func(path string, lo *scene.LumpedObject, err error) error {
		if err != nil {
			return err
		}
		objects = append(objects, demoObject{path: path, object: lo})
		return nil
	}

	type demoPrimitive struct {
		path  string
		shape scene.Shape
		color uint32
		x, y  float64
	}
	primitives := []demoPrimitive{
		{"/torus", scene.Torus{Radius: 0.5, Tube: 0.2, RadialSegments: 12, TubularSegments: 48}, 0x00ff00, 0, 2},
		{"/tetrahedron", scene.Tetrahedron{Radius: 0.5}, 0xff0000, 1, 0},
		{"/ring", scene.Ring{InnerRadius: 0.5, OuterRadius: 1, ThetaSegments: 32, PhiSegments: 1, ThetaLength: fullCircle}, 0x0000ff, 2, 2},
		{"/plane", scene.Plane{Width: 0.25, Height: 0.25, WidthSegments: 1, HeightSegments: 1}, 0xffffff, 2, 2},
		{"/octahedron", scene.Octahedron{Radius: 0.5}, 0xffffff, -1, -1},
		{"/icosahedron", scene.Icosahedron{Radius: 0.5}, 0xffffff, -2, -2},
		{"/dodecahedron", scene.Dodecahedron{Radius: 0.5}, 0xffffff, -3, -3},
		{"/cylinder", scene.Cylinder{RadiusTop: 0.5, RadiusBottom: 0.5, Height: 1, RadialSegments: 32, HeightSegments: 1, ThetaLength: fullCircle}, 0x00ffff, 0, -1},
		{"/circle", scene.Circle{Radius: 0.5, Segments: 32, ThetaLength: fullCircle}, 0xffffff, 0, -2},
		{"/cone", scene.Cone{Radius: 0.5, Height: 1, RadialSegments: 32, HeightSegments: 1, ThetaLength: fullCircle}, 0x00ffff, 0, -3},
		{"/sphere", scene.Sphere{Radius: 0.5, WidthSegments: 12, HeightSegments: 12}, 0x0000ff, -2, 2},
		{"/box", scene.Box{Width: 0.5, Height: 0.5, Depth: 0.5}, 0xff00ff, 0, 1},
	}

	names := utils.NewPathNamer("", 0)
	for _, p := range primitives {
		path := p.path
		if opts.random {
			path = names.Next()
		}
		lo, err := primitive(p.shape, p.color, p.x, p.y)
		if err := add(path, lo, err); err != nil {
			return nil, err
		}
	}

	if opts.points > 0 {
		lo, err := randomPointCloud(opts.points, time.Now().UnixNano())
		if err := add("/point_cloud", lo, err); err != nil {
			return nil, err
		}
	}

	lo, err := scene.TextPlane(scene.NewTextTexture("Hello, meshcat!", 100, "sans-serif"))
	if err := add("/text", lo, err); err != nil {
		return nil, err
	}

	if opts.mesh != "" {
		geometries, err := loader.LoadGeometries(opts.mesh, scene.Identity())
		if err != nil {
			return nil, err
		}
		b := scene.NewBuilder().Geometry(geometries...)
		if opts.image != "" {
			image, err := scene.NewImage(opts.image)
			if err != nil {
				return nil, err
			}
			b.Image(image).Texture(scene.NewImageTexture())
		}
		lo, err := b.Build()
		if err := add("/head_1", lo, err); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Publish every primitive and animate them",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts demoOptions
		opts.image, _ = cmd.Flags().GetString("image")
		opts.mesh, _ = cmd.Flags().GetString("mesh")
		opts.points, _ = cmd.Flags().GetInt("points")
		opts.random, _ = cmd.Flags().GetBool("random")
		frames, _ := cmd.Flags().GetInt("frames")

		objects, err := demoScene(opts)
		if err != nil {
			return err
		}

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		for _, o := range objects {
			if _, err := client.SetObject(o.path, o.object); err != nil {
				return err
			}
			logger.Log.Debugf("Published %s", o.path)
		}

		target := "/torus"
		if opts.mesh != "" {
			target = "/head_1"
		}
		for i := 1; i <= frames; i++ {
			yaw := 0.1 * float64(i)
			if _, err := client.SetTransform(target, scene.Pose(mgl64.Vec3{}, mgl64.Vec3{0, 0, yaw})); err != nil {
				return err
			}
			time.Sleep(100 * time.Millisecond)
		}
		logger.Log.Infof("Published %d objects", len(objects))
		return nil
	},
}

func init() {
	demoCmd.Flags().String("image", "", "PNG texture for the mesh")
	demoCmd.Flags().String("mesh", "", "Mesh file (obj, dae, stl, gltf, glb) to publish at /head_1")
	demoCmd.Flags().Int("points", 100000, "Number of random points, 0 disables the cloud")
	demoCmd.Flags().Int("frames", 100, "Animation frames")
	demoCmd.Flags().Bool("random", false, "Use random names instead of shape names")
	rootCmd.AddCommand(demoCmd)
}
