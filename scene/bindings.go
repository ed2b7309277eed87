package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/camera"
	"github.com/mogaika/orrery/scenegraph"
)

type Op string

const (
	OpRotate      Op = "rotate"      // relative rotation, Axis/Degrees/Mode
	OpScale       Op = "scale"       // multiply current scale by Factor
	OpSetScale    Op = "setScale"    // absolute scale = Vector
	OpSetPosition Op = "setPosition" // absolute position = Vector
	OpTranslate   Op = "translate"   // position += Vector
	OpStep        Op = "step"        // run one animation Step
	OpOrbit       Op = "orbit"       // camera orbit, Axis x = pitch, y = yaw
	OpZoom        Op = "zoom"        // camera distance *= Factor
)

func (o Op) Valid() bool {
	switch o {
	case OpRotate, OpScale, OpSetScale, OpSetPosition, OpTranslate, OpStep, OpOrbit, OpZoom:
		return true
	}
	return false
}

// targetsNode reports whether the op mutates Binding.Node rather than the
// camera or the animation clock.
func (o Op) targetsNode() bool {
	switch o {
	case OpStep, OpOrbit, OpZoom:
		return false
	}
	return true
}

// Binding maps a key to a mutation of a named node or of the camera.
type Binding struct {
	Key     string
	Node    string
	Op      Op
	Axis    scenegraph.Axis
	Degrees float32
	Mode    scenegraph.RotateMode
	Factor  float32
	Vector  mgl32.Vec3
}

// Keys returns the distinct bound keys in binding order.
func (c *Context) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, b := range c.Bindings {
		if _, ok := seen[b.Key]; !ok {
			seen[b.Key] = struct{}{}
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// HandleKey applies every binding for key, in order. All bindings are
// checked before the first one runs, so a failing key changes nothing.
func (c *Context) HandleKey(key string) error {
	var matched []Binding
	for _, b := range c.Bindings {
		if b.Key == key {
			matched = append(matched, b)
		}
	}
	if len(matched) == 0 {
		return errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	for _, b := range matched {
		if err := c.check(b); err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
	}
	for _, b := range matched {
		if err := c.Apply(b); err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
	}
	return nil
}

// check reports whether Apply(b) can succeed in the current state.
func (c *Context) check(b Binding) error {
	if !b.Op.Valid() {
		return errors.Errorf("unknown op %q", b.Op)
	}
	switch b.Op {
	case OpStep:
		_, err := c.animationTargets()
		return err
	case OpOrbit, OpZoom:
		return camera.CheckOrbit(c.Camera)
	}
	_, err := c.Node(b.Node)
	return err
}

// Apply performs a single binding regardless of its key.
func (c *Context) Apply(b Binding) error {
	switch b.Op {
	case OpStep:
		return c.Step()
	case OpOrbit:
		if err := camera.CheckOrbit(c.Camera); err != nil {
			return err
		}
		o := camera.OrbitFromParams(c.Camera)
		if b.Axis == scenegraph.AxisX {
			o.Rotate(b.Degrees, 0)
		} else {
			o.Rotate(0, b.Degrees)
		}
		c.Camera = o.Apply(c.Camera)
		return nil
	case OpZoom:
		if err := camera.CheckOrbit(c.Camera); err != nil {
			return err
		}
		o := camera.OrbitFromParams(c.Camera)
		o.Zoom(b.Factor)
		c.Camera = o.Apply(c.Camera)
		return nil
	}

	n, err := c.Node(b.Node)
	if err != nil {
		return err
	}
	switch b.Op {
	case OpRotate:
		n.RotateAxis(b.Axis, b.Degrees, b.Mode)
	case OpScale:
		s := n.Scale().Mul(b.Factor)
		n.SetScale(s[0], s[1], s[2])
	case OpSetScale:
		n.SetScale(b.Vector[0], b.Vector[1], b.Vector[2])
	case OpSetPosition:
		n.SetPosition(b.Vector[0], b.Vector[1], b.Vector[2])
	case OpTranslate:
		n.Translate(b.Vector[0], b.Vector[1], b.Vector[2])
	default:
		return errors.Errorf("unknown op %q", b.Op)
	}
	return nil
}
