// Package camera builds the per-frame view and projection matrices.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/mat4"
)

// Frustum holds explicit projection bounds. When set on Params it takes
// precedence over FovY/Aspect.
type Frustum struct {
	Left   float32 `yaml:"left" json:"left"`
	Right  float32 `yaml:"right" json:"right"`
	Bottom float32 `yaml:"bottom" json:"bottom"`
	Top    float32 `yaml:"top" json:"top"`
}

type Params struct {
	Eye mgl32.Vec3 `yaml:"eye" json:"eye"`
	At  mgl32.Vec3 `yaml:"at" json:"at"`
	Up  mgl32.Vec3 `yaml:"up" json:"up"`

	FovY   float32 `yaml:"fovy" json:"fovy"` // degrees
	Aspect float32 `yaml:"aspect" json:"aspect"`
	Near   float32 `yaml:"near" json:"near"`
	Far    float32 `yaml:"far" json:"far"`

	Frustum *Frustum `yaml:"frustum,omitempty" json:"frustum,omitempty"`
}

// Default matches the hierarchy demos: eye (40,40,40) looking at the origin,
// 30 degree vertical field of view for a 600x400 canvas.
func Default() Params {
	return Params{
		Eye:    mgl32.Vec3{40, 40, 40},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   30,
		Aspect: 1.5,
		Near:   1,
		Far:    100,
	}
}

// Frame is the view/projection pair shared by every payload during one render pass.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// ViewProjection is projection * view.
func (f Frame) ViewProjection() mgl32.Mat4 { return f.Projection.Mul4(f.View) }

func (p Params) View() (mgl32.Mat4, error) {
	return mat4.LookAt(p.Eye, p.At, p.Up)
}

func (p Params) Projection() (mgl32.Mat4, error) {
	if f := p.Frustum; f != nil {
		return mat4.Perspective(f.Left, f.Right, f.Bottom, f.Top, p.Near, p.Far)
	}
	return mat4.PerspectiveFov(p.FovY, p.Aspect, p.Near, p.Far)
}

// Build computes both matrices. On error the returned Frame must not be used.
func (p Params) Build() (Frame, error) {
	view, err := p.View()
	if err != nil {
		return Frame{}, errors.Wrap(err, "camera view")
	}
	proj, err := p.Projection()
	if err != nil {
		return Frame{}, errors.Wrap(err, "camera projection")
	}
	return Frame{View: view, Projection: proj}, nil
}
