// Package scene holds everything a running demo needs between frames: the
// node tree, a name registry for input handlers, the camera and the draw
// backend. A Context is used from a single goroutine, or under a lock held
// by the caller; state changes only between frames.
package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/camera"
	"github.com/mogaika/orrery/mat4"
	"github.com/mogaika/orrery/render"
	"github.com/mogaika/orrery/scenegraph"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrUnknownKey  = errors.New("no binding for key")
	ErrDuplicate   = errors.New("duplicate node name")
)

type Context struct {
	Name       string
	Root       *scenegraph.Node
	Camera     camera.Params
	Recorder   *render.Recorder
	Bindings   []Binding
	Animations []Animation

	nodes  map[string]*scenegraph.Node
	frames int
	steps  int
}

func New(name string) *Context {
	return &Context{
		Name:     name,
		Camera:   camera.Default(),
		Recorder: render.NewRecorder(),
		nodes:    make(map[string]*scenegraph.Node),
	}
}

// SetRoot installs the tree and registers every named node in it.
func (c *Context) SetRoot(root *scenegraph.Node) error {
	nodes := make(map[string]*scenegraph.Node)
	var err error
	root.Walk(func(n *scenegraph.Node, _ int) bool {
		if err != nil {
			return false
		}
		if n.Name == "" {
			return true
		}
		if _, exists := nodes[n.Name]; exists {
			err = errors.Wrapf(ErrDuplicate, "%q", n.Name)
			return false
		}
		nodes[n.Name] = n
		return true
	})
	if err != nil {
		return err
	}
	c.Root = root
	c.nodes = nodes
	return nil
}

// Register names a node that is, or will be, part of the tree.
func (c *Context) Register(name string, n *scenegraph.Node) error {
	if _, exists := c.nodes[name]; exists {
		return errors.Wrapf(ErrDuplicate, "%q", name)
	}
	c.nodes[name] = n
	return nil
}

func (c *Context) Node(name string) (*scenegraph.Node, error) {
	if n, ok := c.nodes[name]; ok {
		return n, nil
	}
	return nil, errors.Wrapf(ErrUnknownNode, "%q", name)
}

// Nodes returns the registered names, sorted.
func (c *Context) Nodes() []string {
	names := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add attaches a new subtree under the named parent and registers every
// named node in it. Nothing changes if any name is already taken.
func (c *Context) Add(parent string, n *scenegraph.Node) error {
	p, err := c.Node(parent)
	if err != nil {
		return err
	}
	added := make(map[string]*scenegraph.Node)
	n.Walk(func(d *scenegraph.Node, _ int) bool {
		if err != nil {
			return false
		}
		if d.Name == "" {
			return true
		}
		_, taken := c.nodes[d.Name]
		if _, twice := added[d.Name]; taken || twice {
			err = errors.Wrapf(ErrDuplicate, "%q", d.Name)
			return false
		}
		added[d.Name] = d
		return true
	})
	if err != nil {
		return err
	}
	if err := p.AddChild(n); err != nil {
		return err
	}
	for name, d := range added {
		c.nodes[name] = d
	}
	return nil
}

// Remove detaches the named node, drops its whole subtree from the registry
// and discards the bindings and animations that targeted it. The root cannot
// be removed.
func (c *Context) Remove(name string) error {
	n, err := c.Node(name)
	if err != nil {
		return err
	}
	if n == c.Root {
		return errors.Errorf("cannot remove root %q", name)
	}
	n.Detach()
	removed := make(map[string]struct{})
	n.Walk(func(d *scenegraph.Node, _ int) bool {
		if c.nodes[d.Name] == d {
			delete(c.nodes, d.Name)
			removed[d.Name] = struct{}{}
		}
		return true
	})

	bindings := c.Bindings[:0]
	for _, b := range c.Bindings {
		if _, gone := removed[b.Node]; !gone || !b.Op.targetsNode() {
			bindings = append(bindings, b)
		}
	}
	c.Bindings = bindings

	animations := c.Animations[:0]
	for _, a := range c.Animations {
		if _, gone := removed[a.Node]; !gone {
			animations = append(animations, a)
		}
	}
	c.Animations = animations
	return nil
}

// Frame builds the camera matrices once and renders the tree from identity.
// If the camera is invalid nothing is drawn and the error is returned; the
// next frame is independent.
func (c *Context) Frame() ([]render.DrawCall, error) {
	f, err := c.Camera.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q frame %d", c.Name, c.frames)
	}
	c.Recorder.Begin(f)
	scenegraph.Render(c.Root, mat4.Identity())
	c.frames++
	return c.Recorder.Calls(), nil
}

// Frames returns how many frames were drawn successfully.
func (c *Context) Frames() int { return c.frames }

// Steps returns how many animation steps were applied.
func (c *Context) Steps() int { return c.steps }

// Animation is a rotation applied to a node on every Step.
type Animation struct {
	Node    string
	Axis    scenegraph.Axis
	Degrees float32
	Mode    scenegraph.RotateMode
}

// Step advances the per-frame animations. Every target is resolved first,
// so a missing node fails the step without rotating anything.
func (c *Context) Step() error {
	targets, err := c.animationTargets()
	if err != nil {
		return err
	}
	for i, a := range c.Animations {
		targets[i].RotateAxis(a.Axis, a.Degrees, a.Mode)
	}
	c.steps++
	return nil
}

func (c *Context) animationTargets() ([]*scenegraph.Node, error) {
	targets := make([]*scenegraph.Node, len(c.Animations))
	for i, a := range c.Animations {
		n, err := c.Node(a.Node)
		if err != nil {
			return nil, errors.Wrap(err, "animation")
		}
		targets[i] = n
	}
	return targets, nil
}

// World returns the world transform of the named node.
func (c *Context) World(name string) (mgl32.Mat4, error) {
	n, err := c.Node(name)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return n.WorldTransform(), nil
}
