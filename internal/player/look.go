package player

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch stops just short of straight up or down. At exactly 90 degrees the
// view direction is parallel to up and the movement basis has no right vector.
const MaxPitch float32 = 89.999

// Orientation is the look direction in degrees. Yaw turns around world up,
// pitch around the camera's local right axis.
type Orientation struct {
	Pitch float32
	Yaw   float32
}

// Apply accumulates a look delta: X turns, Y tilts. Moving right turns right
// and moving down looks down.
func (o *Orientation) Apply(delta rl.Vector2) {
	o.Pitch -= delta.Y
	o.Yaw += -delta.X
	o.Pitch = rl.Clamp(o.Pitch, -MaxPitch, MaxPitch)
}

// Degrees returns the orientation as Euler degrees for a transform: pitch on
// X, yaw on Y, no roll.
func (o Orientation) Degrees() rl.Vector3 {
	return rl.Vector3{X: o.Pitch, Y: o.Yaw}
}

// Quat returns the rotation with yaw applied outermost.
func (o Orientation) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(mgl32.DegToRad(o.Yaw), mgl32.DegToRad(o.Pitch), 0, mgl32.YXZ)
}

// Back is the camera's local +Z axis in world space. Forward is its negation.
func (o Orientation) Back() rl.Vector3 {
	v := o.Quat().Rotate(mgl32.Vec3{0, 0, 1})
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Forward is the direction the camera looks.
func (o Orientation) Forward() rl.Vector3 {
	return rl.Vector3Negate(o.Back())
}
