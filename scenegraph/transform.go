package scenegraph

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/mat4"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// Rotation returns the rotation matrix about the axis.
func (a Axis) Rotation(degrees float32) mgl32.Mat4 {
	switch a {
	case AxisX:
		return mat4.RotationX(degrees)
	case AxisY:
		return mat4.RotationY(degrees)
	case AxisZ:
		return mat4.RotationZ(degrees)
	}
	return mgl32.Ident4()
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, errors.Errorf("unknown axis %q", s)
}

// RotateMode selects where an incremental rotation is composed with the
// accumulated one.
type RotateMode int

const (
	// PostMultiply applies the new rotation in the node's own current frame
	// (rotation = current * delta). Used for self-spin.
	PostMultiply RotateMode = iota
	// PreMultiply applies the new rotation in the parent frame
	// (rotation = delta * current). Used to revolve while keeping tilt.
	PreMultiply
)

func (m RotateMode) String() string {
	if m == PreMultiply {
		return "pre"
	}
	return "post"
}

func ParseRotateMode(s string) (RotateMode, error) {
	switch strings.ToLower(s) {
	case "", "post", "postmultiply":
		return PostMultiply, nil
	case "pre", "premultiply":
		return PreMultiply, nil
	}
	return 0, errors.Errorf("unknown rotate mode %q", s)
}

// Transform is the local position/rotation/scale state of a node.
// Rotation is an accumulated matrix, not Euler angles, so that relative
// rotations about different axes compose with their history.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Mat4
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.Ident4(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes translation * rotation * scale: scale is applied first,
// then rotation, then translation.
func (t Transform) Matrix() mgl32.Mat4 {
	return mat4.Chain(
		mat4.Translation(t.Position[0], t.Position[1], t.Position[2]),
		t.Rotation,
		mat4.Scale(t.Scale[0], t.Scale[1], t.Scale[2]),
	)
}

// Rotate composes delta with the accumulated rotation.
func (t *Transform) Rotate(delta mgl32.Mat4, mode RotateMode) {
	if mode == PreMultiply {
		t.Rotation = delta.Mul4(t.Rotation)
	} else {
		t.Rotation = t.Rotation.Mul4(delta)
	}
}

// RigidMatrix is translation * rotation, ignoring scale.
func (t Transform) RigidMatrix() mgl32.Mat4 {
	return mat4.Translation(t.Position[0], t.Position[1], t.Position[2]).Mul4(t.Rotation)
}
