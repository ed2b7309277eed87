package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/mat4"
)

// Right, Up and Back are the node's local basis vectors expressed in the
// parent frame (the columns of the accumulated rotation).
func (n *Node) Right() mgl32.Vec3 { return n.transform.Rotation.Col(0).Vec3() }
func (n *Node) Up() mgl32.Vec3    { return n.transform.Rotation.Col(1).Vec3() }
func (n *Node) Back() mgl32.Vec3  { return n.transform.Rotation.Col(2).Vec3() }

func (n *Node) move(dir mgl32.Vec3, distance float32) *Node {
	n.transform.Position = n.transform.Position.Add(dir.Mul(distance))
	n.update()
	return n
}

func (n *Node) MoveForward(distance float32) *Node { return n.move(n.Back(), -distance) }
func (n *Node) MoveBack(distance float32) *Node    { return n.move(n.Back(), distance) }
func (n *Node) MoveRight(distance float32) *Node   { return n.move(n.Right(), distance) }
func (n *Node) MoveLeft(distance float32) *Node    { return n.move(n.Right(), -distance) }
func (n *Node) MoveUp(distance float32) *Node      { return n.move(n.Up(), distance) }
func (n *Node) MoveDown(distance float32) *Node    { return n.move(n.Up(), -distance) }

// TurnLeft yaws about the parent Y axis so the node never rolls.
func (n *Node) TurnLeft(degrees float32) *Node {
	return n.RotateAxis(AxisY, degrees, PreMultiply)
}

func (n *Node) TurnRight(degrees float32) *Node { return n.TurnLeft(-degrees) }

// LookUp pitches about the node's own X axis.
func (n *Node) LookUp(degrees float32) *Node {
	return n.RotateAxis(AxisX, degrees, PostMultiply)
}

func (n *Node) LookDown(degrees float32) *Node { return n.LookUp(-degrees) }

// Orbit moves around the point distance units ahead of the node while
// keeping it facing that point.
func (n *Node) OrbitUp(degrees, distance float32) *Node {
	return n.MoveForward(distance).LookDown(degrees).MoveBack(distance)
}

func (n *Node) OrbitDown(degrees, distance float32) *Node {
	return n.MoveForward(distance).LookUp(degrees).MoveBack(distance)
}

func (n *Node) OrbitRight(degrees, distance float32) *Node {
	return n.MoveForward(distance).TurnLeft(degrees).MoveBack(distance)
}

func (n *Node) OrbitLeft(degrees, distance float32) *Node {
	return n.MoveForward(distance).TurnRight(degrees).MoveBack(distance)
}

// LookAt sets the rotation so that the node's -Z axis points at the target,
// with +Y as close to parent up as possible.
func (n *Node) LookAt(x, y, z float32) error {
	view, err := mat4.LookAt(n.transform.Position, mgl32.Vec3{x, y, z}, mgl32.Vec3{0, 1, 0})
	if err != nil {
		return errors.Wrapf(err, "node %q", n.Name)
	}
	rot := view.Mat3().Transpose().Mat4()
	n.SetRotation(rot)
	return nil
}

// ViewMatrix is the inverse of the node's rigid transform, for nodes used as
// a camera. Scale is ignored.
func (n *Node) ViewMatrix() mgl32.Mat4 {
	rt := n.transform.Rotation.Mat3().Transpose().Mat4()
	p := n.transform.Position
	return rt.Mul4(mat4.Translation(-p[0], -p[1], -p[2]))
}
