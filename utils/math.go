package utils

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RotationRPY returns the rotation for roll, pitch and yaw in radians: roll
// about x first, then pitch about y, then yaw about z, all on fixed axes.
func RotationRPY(rpy mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(rpy[2]).
		Mul4(mgl64.HomogRotate3DY(rpy[1])).
		Mul4(mgl64.HomogRotate3DX(rpy[0]))
}

// input in radians
func EulerToQuat(rpy mgl64.Vec3) mgl64.Quat {
	return mgl64.Mat4ToQuat(RotationRPY(rpy)).Normalize()
}

// QuatXYZW lays q out the way the viewer's quaternion property expects.
func QuatXYZW(q mgl64.Quat) mgl64.Vec4 {
	return mgl64.Vec4{q.X(), q.Y(), q.Z(), q.W}
}

func FloatArray32to64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
