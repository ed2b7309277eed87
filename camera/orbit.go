package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const maxPitch = 89

// ErrOrbitUp is returned for cameras whose up vector is not +Y.
var ErrOrbitUp = errors.New("orbit needs a +Y up vector")

// CheckOrbit reports whether p can be driven by an OrbitController. Orbits
// are measured against world Y: pitch from the XZ plane, yaw around Y.
// A zero up vector counts as +Y, since Apply fills it in.
func CheckOrbit(p Params) error {
	if p.Up.Len() == 0 {
		return nil
	}
	up := p.Up.Normalize()
	if up.Y() <= 0 || !mgl32.FloatEqualThreshold(up.Y(), 1, 1e-4) {
		return errors.Wrapf(ErrOrbitUp, "up %v", p.Up)
	}
	return nil
}

// OrbitController places the eye on a sphere around Target.
type OrbitController struct {
	Target   mgl32.Vec3
	Distance float32
	Pitch    float32 // x rotation, degrees
	Yaw      float32 // y rotation, degrees
}

func NewOrbitController(target mgl32.Vec3, dist, pitch, yaw float32) *OrbitController {
	return &OrbitController{
		Target:   target,
		Distance: dist,
		Pitch:    pitch,
		Yaw:      yaw,
	}
}

// OrbitFromParams derives an orbit around p.At that reproduces p.Eye. It
// assumes a +Y up vector and ignores p.Up; see CheckOrbit.
func OrbitFromParams(p Params) *OrbitController {
	d := p.Eye.Sub(p.At)
	dist := d.Len()
	if dist == 0 {
		return NewOrbitController(p.At, 0, 0, 0)
	}
	pitch := mgl32.RadToDeg(float32(math.Asin(float64(d.Y() / dist))))
	yaw := mgl32.RadToDeg(float32(math.Atan2(float64(d.X()), float64(d.Z()))))
	return NewOrbitController(p.At, dist, pitch, yaw)
}

func (c *OrbitController) Position() mgl32.Vec3 {
	pitch := float64(mgl32.DegToRad(c.Pitch))
	yaw := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{
		c.Distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		c.Distance * float32(math.Sin(pitch)),
		c.Distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}.Add(c.Target)
}

// Rotate changes pitch and yaw; pitch stays within +-89 degrees so the view
// direction never becomes parallel to up.
func (c *OrbitController) Rotate(dPitch, dYaw float32) {
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
}

// Zoom multiplies the distance to the target.
func (c *OrbitController) Zoom(factor float32) {
	if factor > 0 {
		c.Distance *= factor
	}
}

// Apply returns base with the eye and target replaced by the controller's.
func (c *OrbitController) Apply(base Params) Params {
	base.Eye = c.Position()
	base.At = c.Target
	if base.Up.Len() == 0 {
		base.Up = mgl32.Vec3{0, 1, 0}
	}
	return base
}
