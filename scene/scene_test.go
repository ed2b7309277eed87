package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/orrery/camera"
	"github.com/mogaika/orrery/mat4"
	"github.com/mogaika/orrery/scenegraph"
)

func newTestContext(t *testing.T) *Context {
	ctx := New("test")
	root := scenegraph.NewNode("root", nil)
	a := root.MustAddChild(scenegraph.NewNode("A", nil).SetPosition(0, 0, 15))
	a.MustAddChild(scenegraph.NewNode("B", ctx.Recorder.Payload("B", mgl32.Vec4{1, 1, 1, 1})))
	require.NoError(t, ctx.SetRoot(root))
	return ctx
}

func TestFrame(t *testing.T) {
	ctx := newTestContext(t)
	calls, err := ctx.Frame()
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 15}, mat4.TranslationOf(calls[0].Model))

	f, err := ctx.Camera.Build()
	require.NoError(t, err)
	assert.Equal(t, f.View, calls[0].View)
	assert.Equal(t, 1, ctx.Frames())
}

func TestFrameWithBadCameraSkips(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Camera.Near = 0

	calls, err := ctx.Frame()
	assert.Error(t, err)
	assert.Nil(t, calls)
	assert.Equal(t, 0, ctx.Frames())
	assert.Equal(t, 0, ctx.Recorder.Frames())

	// next frame is independent
	ctx.Camera.Near = 1
	calls, err = ctx.Frame()
	require.NoError(t, err)
	assert.Len(t, calls, 1)
}

func TestRegistry(t *testing.T) {
	ctx := newTestContext(t)
	assert.Equal(t, []string{"A", "B", "root"}, ctx.Nodes())

	_, err := ctx.Node("C")
	assert.Equal(t, ErrUnknownNode, errors.Cause(err))

	require.NoError(t, ctx.Add("A", scenegraph.NewNode("C", nil)))
	assert.Equal(t, ErrDuplicate, errors.Cause(ctx.Add("root", scenegraph.NewNode("C", nil))))
	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.Add("nope", scenegraph.NewNode("D", nil))))

	require.NoError(t, ctx.Remove("A"))
	assert.Equal(t, []string{"root"}, ctx.Nodes())
	assert.Equal(t, 1, ctx.Root.Count())
	assert.Error(t, ctx.Remove("root"))

	calls, err := ctx.Frame()
	require.NoError(t, err)
	assert.Empty(t, calls)

	dup := scenegraph.NewNode("x", nil)
	dup.MustAddChild(scenegraph.NewNode("x", nil))
	assert.Equal(t, ErrDuplicate, errors.Cause(ctx.SetRoot(dup)))
	assert.Equal(t, []string{"root"}, ctx.Nodes())

	assert.Equal(t, ErrDuplicate, errors.Cause(ctx.Register("root", dup)))
	require.NoError(t, ctx.Register("other", dup))
}

func TestHandleKey(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Bindings = []Binding{
		{Key: "r", Node: "A", Op: OpRotate, Axis: scenegraph.AxisY, Degrees: 10},
		{Key: "r", Node: "B", Op: OpTranslate, Vector: mgl32.Vec3{1, 0, 0}},
		{Key: "g", Node: "A", Op: OpScale, Factor: 2},
		{Key: "p", Node: "B", Op: OpSetPosition, Vector: mgl32.Vec3{0, 5, 0}},
		{Key: "s", Node: "B", Op: OpSetScale, Vector: mgl32.Vec3{3, 3, 3}},
		{Key: "x", Node: "missing", Op: OpRotate},
	}
	assert.Equal(t, []string{"r", "g", "p", "s", "x"}, ctx.Keys())

	require.NoError(t, ctx.HandleKey("r"))
	require.NoError(t, ctx.HandleKey("r"))
	a, _ := ctx.Node("A")
	b, _ := ctx.Node("B")
	want := mat4.RotationY(20)
	got := a.Rotation()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, b.Position())

	require.NoError(t, ctx.HandleKey("g"))
	require.NoError(t, ctx.HandleKey("g"))
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, a.Scale())

	require.NoError(t, ctx.HandleKey("p"))
	require.NoError(t, ctx.HandleKey("s"))
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, b.Position())
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, b.Scale())

	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.HandleKey("x")))
	assert.Equal(t, ErrUnknownKey, errors.Cause(ctx.HandleKey("?")))
	assert.Error(t, ctx.Apply(Binding{Node: "A", Op: "bogus"}))
}

func TestCameraBindings(t *testing.T) {
	ctx := newTestContext(t)
	dist := ctx.Camera.Eye.Sub(ctx.Camera.At).Len()

	require.NoError(t, ctx.Apply(Binding{Op: OpOrbit, Axis: scenegraph.AxisY, Degrees: 90}))
	assert.InDelta(t, dist, ctx.Camera.Eye.Sub(ctx.Camera.At).Len(), 1e-3)
	assert.InDelta(t, -40, ctx.Camera.Eye.Z(), 1e-3)

	require.NoError(t, ctx.Apply(Binding{Op: OpOrbit, Axis: scenegraph.AxisX, Degrees: 10}))
	require.NoError(t, ctx.Apply(Binding{Op: OpZoom, Factor: 0.5}))
	assert.InDelta(t, dist/2, ctx.Camera.Eye.Sub(ctx.Camera.At).Len(), 1e-3)

	_, err := ctx.Frame()
	assert.NoError(t, err)
}

func TestStep(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Animations = []Animation{
		{Node: "A", Axis: scenegraph.AxisY, Degrees: 1},
		{Node: "B", Axis: scenegraph.AxisX, Degrees: 2, Mode: scenegraph.PreMultiply},
	}
	ctx.Bindings = []Binding{{Key: "l", Op: OpStep}}
	for i := 0; i < 10; i++ {
		require.NoError(t, ctx.HandleKey("l"))
	}
	a, _ := ctx.Node("A")
	b, _ := ctx.Node("B")
	wantA, gotA := mat4.RotationY(10), a.Rotation()
	wantB, gotB := mat4.RotationX(20), b.Rotation()
	assert.InDeltaSlice(t, wantA[:], gotA[:], 1e-5)
	assert.InDeltaSlice(t, wantB[:], gotB[:], 1e-5)
	assert.Equal(t, 10, ctx.Steps())

	ctx.Animations = append(ctx.Animations, Animation{Node: "gone"})
	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.Step()))
}

func TestAddRegistersSubtree(t *testing.T) {
	ctx := newTestContext(t)

	arm := scenegraph.NewNode("arm", nil)
	arm.MustAddChild(scenegraph.NewNode("hand", nil)).
		MustAddChild(scenegraph.NewNode("", nil))
	require.NoError(t, ctx.Add("root", arm))

	hand, err := ctx.Node("hand")
	require.NoError(t, err)
	assert.Equal(t, ctx.Root.Find("hand"), hand)
	assert.Equal(t, []string{"A", "B", "arm", "hand", "root"}, ctx.Nodes())

	// a taken name anywhere in the subtree rejects the whole add
	x := scenegraph.NewNode("x", nil)
	x.MustAddChild(scenegraph.NewNode("arm", nil))
	assert.Equal(t, ErrDuplicate, errors.Cause(ctx.Add("root", x)))
	assert.Nil(t, x.Parent())
	_, err = ctx.Node("x")
	assert.Equal(t, ErrUnknownNode, errors.Cause(err))

	twice := scenegraph.NewNode("y", nil)
	twice.MustAddChild(scenegraph.NewNode("y", nil))
	assert.Equal(t, ErrDuplicate, errors.Cause(ctx.Add("root", twice)))
	assert.Equal(t, []string{"A", "B", "arm", "hand", "root"}, ctx.Nodes())

	require.NoError(t, ctx.Remove("arm"))
	assert.Equal(t, []string{"A", "B", "root"}, ctx.Nodes())
}

func TestRemoveDropsDependents(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Add("root", scenegraph.NewNode("C", nil)))
	ctx.Animations = []Animation{
		{Node: "B", Axis: scenegraph.AxisY, Degrees: 1},
		{Node: "C", Axis: scenegraph.AxisY, Degrees: 1},
	}
	ctx.Bindings = []Binding{
		{Key: "b", Node: "B", Op: OpRotate, Axis: scenegraph.AxisY, Degrees: 5},
		{Key: "c", Node: "C", Op: OpRotate, Axis: scenegraph.AxisY, Degrees: 5},
		{Key: "l", Op: OpStep},
		{Key: "z", Op: OpZoom, Factor: 0.5},
	}

	// B goes with its parent
	require.NoError(t, ctx.Remove("A"))
	assert.Equal(t, []Animation{{Node: "C", Axis: scenegraph.AxisY, Degrees: 1}}, ctx.Animations)
	assert.Equal(t, []string{"c", "l", "z"}, ctx.Keys())

	for i := 0; i < 3; i++ {
		require.NoError(t, ctx.Step())
	}
	c, _ := ctx.Node("C")
	want, got := mat4.RotationY(3), c.Rotation()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5)
	assert.Equal(t, 3, ctx.Steps())

	assert.Equal(t, ErrUnknownKey, errors.Cause(ctx.HandleKey("b")))
	require.NoError(t, ctx.HandleKey("l"))
	assert.Equal(t, 4, ctx.Steps())
}

func TestStepIsAllOrNothing(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Animations = []Animation{
		{Node: "A", Axis: scenegraph.AxisY, Degrees: 1},
		{Node: "gone", Axis: scenegraph.AxisY, Degrees: 1},
	}
	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.Step()))

	a, _ := ctx.Node("A")
	want, got := mat4.Identity(), a.Rotation()
	assert.InDeltaSlice(t, want[:], got[:], 1e-6)
	assert.Equal(t, 0, ctx.Steps())
}

func TestHandleKeyIsAllOrNothing(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Bindings = []Binding{
		{Key: "m", Node: "A", Op: OpTranslate, Vector: mgl32.Vec3{1, 0, 0}},
		{Key: "m", Node: "gone", Op: OpTranslate, Vector: mgl32.Vec3{1, 0, 0}},
		{Key: "s", Node: "A", Op: OpTranslate, Vector: mgl32.Vec3{1, 0, 0}},
		{Key: "s", Op: OpStep},
	}
	ctx.Animations = []Animation{{Node: "gone", Axis: scenegraph.AxisY, Degrees: 1}}

	a, _ := ctx.Node("A")
	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.HandleKey("m")))
	assert.Equal(t, mgl32.Vec3{0, 0, 15}, a.Position())

	assert.Equal(t, ErrUnknownNode, errors.Cause(ctx.HandleKey("s")))
	assert.Equal(t, mgl32.Vec3{0, 0, 15}, a.Position())
	assert.Equal(t, 0, ctx.Steps())
}

func TestOrbitNeedsYUp(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Camera.Up = mgl32.Vec3{0, 0, 1}
	eye := ctx.Camera.Eye

	assert.Equal(t, camera.ErrOrbitUp, errors.Cause(ctx.Apply(Binding{Op: OpOrbit, Axis: scenegraph.AxisY, Degrees: 90})))
	assert.Equal(t, camera.ErrOrbitUp, errors.Cause(ctx.Apply(Binding{Op: OpZoom, Factor: 0.5})))
	assert.Equal(t, eye, ctx.Camera.Eye)
}
