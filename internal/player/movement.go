package player

import rl "github.com/gen2brain/raylib-go/raylib"

// MoveAxes holds the four polled movement strengths, each in [0, 1].
type MoveAxes struct {
	Forward  float32
	Backward float32
	Left     float32
	Right    float32
}

// Speeds are the per-direction movement speeds in units per second.
type Speeds struct {
	Forward  float32
	Backward float32
	Sideways float32
}

// HorizontalInput maps move axes to a local velocity: X is strafe (right
// positive), Y is along the camera's back axis (forward negative).
// Holding both forward and backward gives no forward motion at all.
func HorizontalInput(axes MoveAxes, dead bool, s Speeds) rl.Vector2 {
	if dead {
		return rl.Vector2{}
	}
	in := rl.Vector2{X: s.Sideways * (axes.Right - axes.Left)}
	if (axes.Forward != 0) != (axes.Backward != 0) {
		in.Y = -s.Forward*axes.Forward + s.Backward*axes.Backward
	}
	return in
}

// MovementBasis flattens the camera basis onto the plane normal to up. back is
// the camera's world +Z axis.
func MovementBasis(back, up rl.Vector3) (right, backward rl.Vector3) {
	right = rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Negate(back), up))
	backward = rl.Vector3Normalize(rl.Vector3CrossProduct(right, up))
	return right, backward
}

// WorldVelocity rotates a local input into world space and keeps vy, which is
// owned by the body.
func WorldVelocity(in rl.Vector2, right, backward rl.Vector3, vy float32) rl.Vector3 {
	v := rl.Vector3Add(rl.Vector3Scale(right, in.X), rl.Vector3Scale(backward, in.Y))
	v.Y = vy
	return v
}
