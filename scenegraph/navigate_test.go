package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/orrery/mat4"
)

func TestMoves(t *testing.T) {
	n := NewNode("cam", nil)
	n.MoveForward(2)
	vecEqual(t, mgl32.Vec3{0, 0, -2}, n.Position())
	n.MoveRight(1).MoveUp(3)
	vecEqual(t, mgl32.Vec3{1, 3, -2}, n.Position())
	n.MoveLeft(1).MoveDown(3).MoveBack(2)
	vecEqual(t, mgl32.Vec3{}, n.Position())

	n.TurnLeft(90)
	n.MoveForward(1)
	vecEqual(t, mgl32.Vec3{-1, 0, 0}, n.Position())
}

func TestTurnAndLookDoNotRoll(t *testing.T) {
	n := NewNode("cam", nil)
	n.LookDown(30).TurnRight(45)
	assert.InDelta(t, 0, n.Right().Y(), 1e-5)
}

func TestOrbitKeepsTarget(t *testing.T) {
	n := NewNode("cam", nil).SetPosition(0, 0, 10)
	n.OrbitRight(90, 10)
	vecEqual(t, mgl32.Vec3{10, 0, 0}, n.Position())
	// still facing the origin
	vecEqual(t, mgl32.Vec3{-1, 0, 0}, n.Back().Mul(-1))

	n.OrbitLeft(90, 10).OrbitUp(90, 10)
	vecEqual(t, mgl32.Vec3{0, 10, 0}, n.Position())
	n.OrbitDown(90, 10)
	vecEqual(t, mgl32.Vec3{0, 0, 10}, n.Position())
}

func TestNodeLookAtAndView(t *testing.T) {
	n := NewNode("cam", nil).SetPosition(40, 40, 40)
	require.NoError(t, n.LookAt(0, 0, 0))

	want, err := mat4.LookAt(mgl32.Vec3{40, 40, 40}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)
	view := n.ViewMatrix()
	assert.InDeltaSlice(t, want[:], view[:], 1e-4)

	// view is the inverse of the rigid transform
	ident := mgl32.Ident4()
	back := n.ViewMatrix().Mul4(n.LocalTransform())
	assert.InDeltaSlice(t, ident[:], back[:], 1e-4)

	err = NewNode("bad", nil).LookAt(0, 0, 0)
	assert.Equal(t, mat4.ErrDegenerate, errors.Cause(err))
}
