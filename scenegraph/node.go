// Package scenegraph implements a tree of transform nodes rendered
// depth-first with world transforms composed top-down.
//
// Nodes are owned by exactly one parent. A Node is not safe for concurrent
// use: mutate between frames, never during Render.
package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/mat4"
)

var (
	ErrAlreadyParented = errors.New("node already has a parent")
	ErrCycle           = errors.New("node is an ancestor of the new parent")
	ErrNotChild        = errors.New("node is not a child")
)

type Node struct {
	ID   uuid.UUID
	Name string

	transform Transform
	local     mgl32.Mat4

	payload  Payload
	parent   *Node
	children []*Node
}

// NewNode creates a node with identity transform. payload may be nil for a
// pure transform group.
func NewNode(name string, payload Payload) *Node {
	n := &Node{
		ID:        uuid.New(),
		Name:      name,
		transform: NewTransform(),
		payload:   payload,
	}
	n.update()
	return n
}

func (n *Node) update() { n.local = n.transform.Matrix() }

// AddChild transfers ownership of child to n. Fails without changing either
// node if child already has a parent or if it would create a cycle.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New("nil child")
	}
	if child.parent != nil {
		return errors.Wrapf(ErrAlreadyParented, "add %q to %q: owned by %q", child.Name, n.Name, child.parent.Name)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return errors.Wrapf(ErrCycle, "add %q to %q", child.Name, n.Name)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// MustAddChild is AddChild for scene construction code; it panics on error.
func (n *Node) MustAddChild(child *Node) *Node {
	if err := n.AddChild(child); err != nil {
		panic(err)
	}
	return child
}

// RemoveChild detaches child and its whole subtree from n.
func (n *Node) RemoveChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return nil
		}
	}
	name := "<nil>"
	if child != nil {
		name = child.Name
	}
	return errors.Wrapf(ErrNotChild, "remove %q from %q", name, n.Name)
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		_ = n.parent.RemoveChild(n)
	}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Payload() Payload { return n.payload }

func (n *Node) SetPayload(p Payload) { n.payload = p }

func (n *Node) HasPayload() bool { return n.payload != nil }

func (n *Node) SetPosition(x, y, z float32) *Node {
	n.transform.Position = mgl32.Vec3{x, y, z}
	n.update()
	return n
}

func (n *Node) SetScale(sx, sy, sz float32) *Node {
	n.transform.Scale = mgl32.Vec3{sx, sy, sz}
	n.update()
	return n
}

// SetRotation overwrites the accumulated rotation.
func (n *Node) SetRotation(m mgl32.Mat4) *Node {
	n.transform.Rotation = m
	n.update()
	return n
}

// Translate moves the node relative to its current position, in the parent frame.
func (n *Node) Translate(dx, dy, dz float32) *Node {
	n.transform.Position = n.transform.Position.Add(mgl32.Vec3{dx, dy, dz})
	n.update()
	return n
}

// RotateAxis composes a relative rotation about axis with the existing rotation.
func (n *Node) RotateAxis(axis Axis, degrees float32, mode RotateMode) *Node {
	n.transform.Rotate(axis.Rotation(degrees), mode)
	n.update()
	return n
}

// RotateOnAxis is RotateAxis for an arbitrary axis.
func (n *Node) RotateOnAxis(degrees float32, axis mgl32.Vec3, mode RotateMode) *Node {
	n.transform.Rotate(mat4.RotationAxis(degrees, axis), mode)
	n.update()
	return n
}

func (n *Node) RotateX(degrees float32) *Node { return n.RotateAxis(AxisX, degrees, PostMultiply) }
func (n *Node) RotateY(degrees float32) *Node { return n.RotateAxis(AxisY, degrees, PostMultiply) }
func (n *Node) RotateZ(degrees float32) *Node { return n.RotateAxis(AxisZ, degrees, PostMultiply) }

func (n *Node) Position() mgl32.Vec3 { return n.transform.Position }
func (n *Node) Scale() mgl32.Vec3    { return n.transform.Scale }
func (n *Node) Rotation() mgl32.Mat4 { return n.transform.Rotation }

func (n *Node) Transform() Transform { return n.transform }

// LocalTransform is translation * rotation * scale.
func (n *Node) LocalTransform() mgl32.Mat4 { return n.local }

// WorldTransform composes the local transforms of n and all its ancestors.
func (n *Node) WorldTransform() mgl32.Mat4 {
	m := n.local
	for p := n.parent; p != nil; p = p.parent {
		m = p.local.Mul4(m)
	}
	return m
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node named name in pre-order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindID returns the node with the given id in the subtree, or nil.
func (n *Node) FindID(id uuid.UUID) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
		}
		return found == nil
	})
	return found
}

// Count returns the number of nodes in the subtree including n.
func (n *Node) Count() int {
	c := 0
	n.Walk(func(*Node, int) bool { c++; return true })
	return c
}

// Depth returns the length of the longest ownership chain below n (a leaf is 1).
func (n *Node) Depth() int {
	d := 0
	n.Walk(func(_ *Node, depth int) bool {
		if depth+1 > d {
			d = depth + 1
		}
		return true
	})
	return d
}
