package scenegraph

import "github.com/go-gl/mathgl/mgl32"

// Payload draws a node given its world transform. Implementations must not
// mutate the scene graph.
type Payload interface {
	Draw(world mgl32.Mat4)
}

type PayloadFunc func(world mgl32.Mat4)

func (f PayloadFunc) Draw(world mgl32.Mat4) { f(world) }

// Render computes world = parent * local, draws the payload if any and
// recurses into children in order. Node state is not modified.
func (n *Node) Render(parent mgl32.Mat4) {
	world := parent.Mul4(n.local)
	if n.payload != nil {
		n.payload.Draw(world)
	}
	for _, c := range n.children {
		c.Render(world)
	}
}

// Render runs one render pass from root. Call once per frame with
// mat4.Identity() as the parent transform.
func Render(root *Node, parent mgl32.Mat4) {
	if root == nil {
		return
	}
	root.Render(parent)
}
