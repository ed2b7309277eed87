// Package render is a headless drawing backend. Payloads created by a
// Recorder turn each world transform into a draw call carrying the full
// model/view/projection set a shader would receive.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/orrery/camera"
	"github.com/mogaika/orrery/scenegraph"
)

type DrawCall struct {
	Node       string     `json:"node"`
	Color      mgl32.Vec4 `json:"color"`
	Model      mgl32.Mat4 `json:"model"`
	View       mgl32.Mat4 `json:"-"`
	Projection mgl32.Mat4 `json:"-"`
	MVP        mgl32.Mat4 `json:"mvp"`
	Normal     mgl32.Mat3 `json:"normal"`
}

// Recorder collects draw calls for one frame at a time.
type Recorder struct {
	frame  camera.Frame
	vp     mgl32.Mat4
	frames int
	calls  []DrawCall
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin starts a frame: previous calls are dropped and every payload drawn
// until the next Begin uses f.
func (r *Recorder) Begin(f camera.Frame) {
	r.frame = f
	r.vp = f.ViewProjection()
	r.calls = r.calls[:0]
	r.frames++
}

func (r *Recorder) Frame() camera.Frame { return r.frame }

// Frames returns how many frames were begun.
func (r *Recorder) Frames() int { return r.frames }

// Calls returns a copy of the current frame's draw calls in draw order.
func (r *Recorder) Calls() []DrawCall {
	out := make([]DrawCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Shape is a payload that records a draw of a named, colored shape.
type Shape struct {
	Name  string
	Color mgl32.Vec4

	r *Recorder
}

func (s *Shape) Draw(world mgl32.Mat4) {
	r := s.r
	r.calls = append(r.calls, DrawCall{
		Node:       s.Name,
		Color:      s.Color,
		Model:      world,
		View:       r.frame.View,
		Projection: r.frame.Projection,
		MVP:        r.vp.Mul4(world),
		Normal:     NormalMatrix(world, r.frame.View),
	})
}

// Payload returns a shape bound to r.
func (r *Recorder) Payload(name string, color mgl32.Vec4) *Shape {
	return &Shape{Name: name, Color: color, r: r}
}

var _ scenegraph.Payload = (*Shape)(nil)

// NormalMatrix is the inverse transpose of the upper 3x3 of view*model.
// Singular model matrices yield the zero matrix.
func NormalMatrix(model, view mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3().Inv().Transpose()
}
