package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// result in radians
func QuatToEuler(q mgl32.Quat) (e mgl32.Vec3) {
	sinr_cosp := float64(2 * (q.W*q.X() + q.Y()*q.Z()))
	cosr_cosp := float64(1 - 2*(q.X()*q.X()+q.Y()*q.Y()))

	e[0] = float32(math.Atan2(sinr_cosp, cosr_cosp))

	sinp := float64(2 * (q.W*q.Y() - q.Z()*q.X()))
	if math.Abs(sinp) >= 1 {
		e[1] = math.Pi / 2
		if sinp < 0 {
			e[1] *= -1
		}
	} else {
		e[1] = float32(math.Asin(sinp))
	}

	siny_cosp := float64(2 * (q.W*q.Z() + q.X()*q.Y()))
	cosy_cosp := float64(1 - 2*(q.Y()*q.Y()+q.Z()*q.Z()))
	e[2] = float32(math.Atan2(siny_cosp, cosy_cosp))

	return e
}

// RotationToEulerDegrees converts a pure rotation matrix to XYZ euler angles
// in degrees. Only for display; accumulated rotations stay matrices.
func RotationToEulerDegrees(m mgl32.Mat4) mgl32.Vec3 {
	e := QuatToEuler(mgl32.Mat4ToQuat(m).Normalize())
	return mgl32.Vec3{mgl32.RadToDeg(e[0]), mgl32.RadToDeg(e[1]), mgl32.RadToDeg(e[2])}
}

// RotationToQuat returns the rotation as glTF-ordered [x y z w].
func RotationToQuat(m mgl32.Mat4) [4]float32 {
	q := mgl32.Mat4ToQuat(m).Normalize()
	return q.V.Vec4(q.W)
}
