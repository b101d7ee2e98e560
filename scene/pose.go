package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/meshcat_client/utils"
)

// Matrices are column-major, the same order three.js Matrix4.fromArray reads.
// Translation lives at indices 12, 13 and 14.

// Meshcat cylinders have their long axis in y, robot descriptions in z.
var cylinderCorrection = mgl64.HomogRotate3DX(math.Pi / 2)

func Identity() mgl64.Mat4 {
	return mgl64.Ident4()
}

func Translation(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// Pose builds a homogeneous transform from a translation and roll/pitch/yaw
// angles in radians.
func Pose(xyz, rpy mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(xyz[0], xyz[1], xyz[2]).Mul4(utils.RotationRPY(rpy))
}

// PoseQuat builds a homogeneous transform from a translation and a rotation.
func PoseQuat(xyz mgl64.Vec3, q mgl64.Quat) mgl64.Mat4 {
	return mgl64.Translate3D(xyz[0], xyz[1], xyz[2]).Mul4(q.Normalize().Mat4())
}

// TranslationOf returns the translation column of m.
func TranslationOf(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[12], m[13], m[14]}
}
