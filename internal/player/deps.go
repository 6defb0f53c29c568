package player

import rl "github.com/gen2brain/raylib-go/raylib"

// Action names a polled input.
type Action string

const (
	LookUp       Action = "LookUp"
	LookDown     Action = "LookDown"
	LookLeft     Action = "LookLeft"
	LookRight    Action = "LookRight"
	MoveForward  Action = "MoveForward"
	MoveBackward Action = "MoveBackward"
	MoveLeft     Action = "MoveLeft"
	MoveRight    Action = "MoveRight"
)

// Actions lists every action the controller polls.
var Actions = []Action{
	LookUp, LookDown, LookLeft, LookRight,
	MoveForward, MoveBackward, MoveLeft, MoveRight,
}

// InputSource polls action strengths in [0, 1].
type InputSource interface {
	ActionStrength(a Action) float32
	SetMouseCaptured(captured bool)
}

// Body is the physics body the controller drives. It owns vertical velocity
// and integrates once per MoveAndSlide.
type Body interface {
	Position() rl.Vector3
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	UpDirection() rl.Vector3
	IsOnFloor() bool
	MoveAndSlide(dt float32)
}

// CameraRig receives the look rotation (on the rail the camera hangs from)
// and the head-bob offset (on the camera itself).
type CameraRig interface {
	SetLookRotation(degrees rl.Vector3)
	SetBobOffset(offset rl.Vector3)
}

// RenderSink takes global render parameters.
type RenderSink interface {
	SetFog(near, far float32)
	SetBrightness(c rl.Color)
}

type SoundSink interface {
	PlayStep()
}

type AnimationSink interface {
	Play(name string)
}

// Lifecycle ends the game.
type Lifecycle interface {
	Alert(title, message string)
	Quit()
}
