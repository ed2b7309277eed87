package scenefile

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/render"
	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/scenegraph"
	"github.com/mogaika/orrery/utils"
)

var defaultColor = mgl32.Vec4{0, 1, 0, 1}

// Build constructs a scene context from the description. Drawable nodes get
// payloads bound to the context's recorder.
func (f *File) Build() (*scene.Context, error) {
	ctx := scene.New(f.Name)
	ctx.Camera = f.Camera

	var names utils.RandomNameGenerator
	f.Root.reserve(&names)

	root, err := f.Root.build(ctx, &names)
	if err != nil {
		return nil, err
	}
	if err := ctx.SetRoot(root); err != nil {
		return nil, errors.Wrap(err, "build scene")
	}

	for i, b := range f.Bindings {
		sb, err := b.build()
		if err != nil {
			return nil, errors.Wrapf(err, "binding %d (key %q)", i, b.Key)
		}
		ctx.Bindings = append(ctx.Bindings, sb)
	}
	for i, a := range f.Animations {
		axis, err := scenegraph.ParseAxis(a.Axis)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %d", i)
		}
		mode, err := scenegraph.ParseRotateMode(a.Mode)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %d", i)
		}
		if _, err := ctx.Node(a.Node); err != nil {
			return nil, errors.Wrapf(err, "animation %d", i)
		}
		ctx.Animations = append(ctx.Animations, scene.Animation{Node: a.Node, Axis: axis, Degrees: a.Degrees, Mode: mode})
	}
	return ctx, nil
}

func (n *Node) reserve(names *utils.RandomNameGenerator) {
	if n.Name != "" {
		names.Reserve(n.Name)
	}
	for _, c := range n.Children {
		if c != nil {
			c.reserve(names)
		}
	}
}

func (n *Node) build(ctx *scene.Context, names *utils.RandomNameGenerator) (*scenegraph.Node, error) {
	name := n.Name
	if name == "" {
		name = names.RandomName("node_")
	}

	var payload scenegraph.Payload
	if n.Draw {
		color := defaultColor
		if n.Color != nil {
			color = *n.Color
		}
		payload = ctx.Recorder.Payload(name, color)
	}

	sn := scenegraph.NewNode(name, payload)
	if p := n.Position; p != nil {
		sn.SetPosition(p[0], p[1], p[2])
	}
	if s := n.Scale; s != nil {
		sn.SetScale(s[0], s[1], s[2])
	}
	if n.Matrix != nil {
		sn.SetRotation(*n.Matrix)
	}
	for _, r := range n.Rotate {
		axis, err := scenegraph.ParseAxis(r.Axis)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", name)
		}
		mode, err := scenegraph.ParseRotateMode(r.Mode)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", name)
		}
		sn.RotateAxis(axis, r.Degrees, mode)
	}

	for _, c := range n.Children {
		if c == nil {
			continue
		}
		child, err := c.build(ctx, names)
		if err != nil {
			return nil, err
		}
		if err := sn.AddChild(child); err != nil {
			return nil, err
		}
	}
	return sn, nil
}

func (b Binding) build() (scene.Binding, error) {
	if b.Key == "" {
		return scene.Binding{}, errors.New("empty key")
	}
	return b.Action()
}

// Action converts b into a scene binding without requiring a key, for
// mutations that are not bound to input.
func (b Binding) Action() (scene.Binding, error) {
	sb := scene.Binding{
		Key:     b.Key,
		Node:    b.Node,
		Op:      scene.Op(b.Op),
		Degrees: b.Degrees,
		Factor:  b.Factor,
	}
	if !sb.Op.Valid() {
		return sb, errors.Errorf("unknown op %q", b.Op)
	}
	if b.Axis != "" {
		axis, err := scenegraph.ParseAxis(b.Axis)
		if err != nil {
			return sb, err
		}
		sb.Axis = axis
	}
	mode, err := scenegraph.ParseRotateMode(b.Mode)
	if err != nil {
		return sb, err
	}
	sb.Mode = mode
	if b.Vector != nil {
		sb.Vector = *b.Vector
	}
	return sb, nil
}

// Describe captures the current state of a context, with accumulated
// rotations written as matrices.
func Describe(ctx *scene.Context) *File {
	f := &File{
		Name:   ctx.Name,
		Camera: ctx.Camera,
		Root:   describeNode(ctx.Root),
	}
	for _, b := range ctx.Bindings {
		fb := Binding{
			Key:     b.Key,
			Node:    b.Node,
			Op:      string(b.Op),
			Degrees: b.Degrees,
			Factor:  b.Factor,
		}
		switch b.Op {
		case scene.OpRotate, scene.OpOrbit:
			fb.Axis = b.Axis.String()
			fb.Mode = b.Mode.String()
		case scene.OpSetScale, scene.OpSetPosition, scene.OpTranslate:
			v := b.Vector
			fb.Vector = &v
		}
		f.Bindings = append(f.Bindings, fb)
	}
	for _, a := range ctx.Animations {
		f.Animations = append(f.Animations, Animation{
			Node:    a.Node,
			Axis:    a.Axis.String(),
			Degrees: a.Degrees,
			Mode:    a.Mode.String(),
		})
	}
	return f
}

func describeNode(n *scenegraph.Node) *Node {
	pos, scale, rot := n.Position(), n.Scale(), n.Rotation()
	d := &Node{
		Name:     n.Name,
		Draw:     n.HasPayload(),
		Position: &pos,
		Scale:    &scale,
		Matrix:   &rot,
	}
	if s, ok := n.Payload().(*render.Shape); ok {
		color := s.Color
		d.Color = &color
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, describeNode(c))
	}
	return d
}
