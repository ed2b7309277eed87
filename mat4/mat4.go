// Package mat4 builds and composes 4x4 homogeneous transforms.
//
// All matrices are column-major with column vectors on the right, so
// Multiply(a, b) is the transform "apply b, then a". Angles at the API
// boundary are degrees.
package mat4

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ErrDegenerate reports malformed inputs. Perspective returns the matrix as
// computed alongside it; LookAt returns the zero matrix, since no view basis
// exists for its degenerate inputs.
var ErrDegenerate = errors.New("degenerate matrix")

func Identity() mgl32.Mat4 { return mgl32.Ident4() }

func Translation(x, y, z float32) mgl32.Mat4 { return mgl32.Translate3D(x, y, z) }

func RotationX(degrees float32) mgl32.Mat4 { return mgl32.HomogRotate3DX(mgl32.DegToRad(degrees)) }
func RotationY(degrees float32) mgl32.Mat4 { return mgl32.HomogRotate3DY(mgl32.DegToRad(degrees)) }
func RotationZ(degrees float32) mgl32.Mat4 { return mgl32.HomogRotate3DZ(mgl32.DegToRad(degrees)) }

// RotationAxis rotates about an arbitrary axis. The axis is normalized first;
// a zero axis yields identity.
func RotationAxis(degrees float32, axis mgl32.Vec3) mgl32.Mat4 {
	if axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize())
}

func Scale(sx, sy, sz float32) mgl32.Mat4 { return mgl32.Scale3D(sx, sy, sz) }

// Multiply returns a*b. Not commutative.
func Multiply(a, b mgl32.Mat4) mgl32.Mat4 { return a.Mul4(b) }

// Chain multiplies left to right: Chain(a, b, c) == a*b*c.
func Chain(ms ...mgl32.Mat4) mgl32.Mat4 {
	r := mgl32.Ident4()
	for _, m := range ms {
		r = r.Mul4(m)
	}
	return r
}

// LookAt builds a view matrix. forward = normalize(at-eye),
// right = normalize(forward x up), trueUp = right x forward; the result is
// the inverse of the camera world transform.
func LookAt(eye, at, up mgl32.Vec3) (mgl32.Mat4, error) {
	f := at.Sub(eye)
	if f.Len() == 0 {
		return mgl32.Mat4{}, errors.Wrap(ErrDegenerate, "look-at: eye and target coincide")
	}
	f = f.Normalize()
	if up.Len() == 0 {
		return mgl32.Mat4{}, errors.Wrap(ErrDegenerate, "look-at: zero up vector")
	}
	s := f.Cross(up)
	if s.Len() == 0 {
		return mgl32.Mat4{}, errors.Wrap(ErrDegenerate, "look-at: up is parallel to view direction")
	}
	s = s.Normalize()
	u := s.Cross(f)

	m := mgl32.Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
	return m, nil
}

// Perspective builds a general frustum projection. near must be positive and
// less than far; otherwise the computed matrix is returned with ErrDegenerate.
func Perspective(left, right, bottom, top, near, far float32) (mgl32.Mat4, error) {
	m := mgl32.Frustum(left, right, bottom, top, near, far)
	if near <= 0 {
		return m, errors.Wrapf(ErrDegenerate, "perspective: near %v must be positive", near)
	}
	if near >= far {
		return m, errors.Wrapf(ErrDegenerate, "perspective: near %v must be less than far %v", near, far)
	}
	if left == right || bottom == top {
		return m, errors.Wrapf(ErrDegenerate, "perspective: empty frustum [%v,%v]x[%v,%v]", left, right, bottom, top)
	}
	return m, nil
}

// PerspectiveFov derives a symmetric frustum: top = near*tan(fovY/2),
// right = top*aspect.
func PerspectiveFov(fovYDegrees, aspect, near, far float32) (mgl32.Mat4, error) {
	top := near * float32(math.Tan(float64(mgl32.DegToRad(fovYDegrees))/2))
	right := top * aspect
	return Perspective(-right, right, -top, top, near, far)
}

// IsDegenerate reports whether m contains NaN/Inf or is singular.
func IsDegenerate(m mgl32.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return true
		}
	}
	return m.Det() == 0
}

// TranslationOf returns the translation column of m.
func TranslationOf(m mgl32.Mat4) mgl32.Vec3 { return m.Col(3).Vec3() }

// Apply transforms point p by m (w = 1).
func Apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, m)
}
