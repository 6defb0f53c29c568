package player

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// DeathAnimation is the clip played once when the player dies.
const DeathAnimation = "Death"

// Deps are the collaborators a Controller drives. All except Log and Rand are
// required.
type Deps struct {
	Input      InputSource
	Body       Body
	Rig        CameraRig
	Render     RenderSink
	Sound      SoundSink
	Animations AnimationSink
	Lifecycle  Lifecycle
	Log        logrus.FieldLogger
	Rand       *rand.Rand
}

func (d Deps) validate() error {
	var errs []error
	for _, dep := range []struct {
		name    string
		missing bool
	}{
		{"input", d.Input == nil},
		{"body", d.Body == nil},
		{"camera rig", d.Rig == nil},
		{"render", d.Render == nil},
		{"sound", d.Sound == nil},
		{"animations", d.Animations == nil},
		{"lifecycle", d.Lifecycle == nil},
	} {
		if dep.missing {
			errs = append(errs, fmt.Errorf("player: missing %s", dep.name))
		}
	}
	return errors.Join(errs...)
}

// Controller is the first-person look and movement controller. It is driven
// from one goroutine by three entry points: HandleMouseMotion for each mouse
// event, Process once per rendered frame and PhysicsProcess once per fixed
// step.
type Controller struct {
	settings Settings
	deps     Deps
	log      logrus.FieldLogger
	rand     *rand.Rand

	look Orientation
	bob  HeadBob
	dead bool
	tint float32
}

// New validates settings and deps. The returned controller has not touched
// any collaborator yet; call Ready once the scene is live.
func New(s Settings, d Deps) (*Controller, error) {
	if err := errors.Join(s.Validate(), d.validate()); err != nil {
		return nil, err
	}
	c := &Controller{
		settings: s,
		deps:     d,
		log:      d.Log,
		rand:     d.Rand,
		bob:      s.HeadBob,
	}
	if c.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		c.log = l
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c, nil
}

// Ready captures the mouse and applies the starting fog and brightness.
func (c *Controller) Ready() {
	c.deps.Input.SetMouseCaptured(true)
	c.ResetFogRange()
	c.deps.Render.SetBrightness(c.settings.Brightness)
	c.deps.Rig.SetLookRotation(c.look.Degrees())
}

// Settings returns the active tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}

// ApplySettings swaps tuning at runtime. Look, walk phase and death state
// carry over. The fog range is only reset when the configured range changes,
// so one set through SetFogRange survives unrelated updates.
func (c *Controller) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	old := c.settings
	c.settings = s
	c.bob.retune(s.HeadBob)
	if s.FogNear != old.FogNear || s.FogFar != old.FogFar {
		c.ResetFogRange()
	}
	c.SetDeathTint(c.tint)
	return nil
}

// SetOrientation places the view directly, clamping pitch.
func (c *Controller) SetOrientation(o Orientation) {
	o.Pitch = rl.Clamp(o.Pitch, -MaxPitch, MaxPitch)
	c.look = o
	c.deps.Rig.SetLookRotation(c.look.Degrees())
}

func (c *Controller) Orientation() Orientation {
	return c.look
}

// HeadBobPhase returns the walk cycle position in seconds.
func (c *Controller) HeadBobPhase() float32 {
	return c.bob.Phase()
}

func (c *Controller) IsDead() bool {
	return c.dead
}

// HandleMouseMotion applies one relative mouse motion event in pixels.
func (c *Controller) HandleMouseMotion(rel rl.Vector2) {
	delta := rl.Vector2Scale(rel, c.settings.MouseSensitivity)
	if c.settings.InvertY {
		delta.Y = -delta.Y
	}
	c.ApplyLook(delta)
}

// Process polls the look axes once per rendered frame.
func (c *Controller) Process(dt float32) {
	in := c.deps.Input
	lookRight := in.ActionStrength(LookRight) - in.ActionStrength(LookLeft)
	lookDown := in.ActionStrength(LookDown) - in.ActionStrength(LookUp)
	if lookRight == 0 && lookDown == 0 {
		return
	}
	delta := rl.Vector2{X: lookRight, Y: lookDown}
	if c.settings.InvertY {
		delta.Y = -delta.Y
	}
	c.ApplyLook(rl.Vector2Scale(delta, c.settings.ControllerSensitivity*dt))
}

// ApplyLook adds a look delta in degrees and pushes the result to the rig.
func (c *Controller) ApplyLook(delta rl.Vector2) {
	c.look.Apply(delta)
	c.deps.Rig.SetLookRotation(c.look.Degrees())
}

func (c *Controller) moveAxes() MoveAxes {
	in := c.deps.Input
	return MoveAxes{
		Forward:  in.ActionStrength(MoveForward),
		Backward: in.ActionStrength(MoveBackward),
		Left:     in.ActionStrength(MoveLeft),
		Right:    in.ActionStrength(MoveRight),
	}
}

// PhysicsProcess runs one fixed step: set horizontal velocity, advance the
// head bob, integrate the body and check for a lethal landing.
func (c *Controller) PhysicsProcess(dt float32) {
	body := c.deps.Body

	input := HorizontalInput(c.moveAxes(), c.dead, c.settings.Speeds)
	right, backward := MovementBasis(c.look.Back(), body.UpDirection())
	body.SetVelocity(WorldVelocity(input, right, backward, body.Velocity().Y))

	if moving := input != (rl.Vector2{}); moving {
		offset, step := c.bob.Advance(dt, moving)
		c.deps.Rig.SetBobOffset(offset)
		if step {
			c.deps.Sound.PlayStep()
		}
	}

	prev := body.Velocity()
	body.MoveAndSlide(dt)

	if IsLethalLanding(body.IsOnFloor(), prev.Y, c.settings.LethalFallSpeed) {
		c.log.WithField("speed", prev.Y).Info("player: lethal landing")
		c.Kill()
	}
}

// IsLethalLanding reports whether touching down at vy kills. The threshold
// itself survives.
func IsLethalLanding(onFloor bool, vy, threshold float32) bool {
	return onFloor && vy < threshold
}

// Kill latches death and starts the death animation. Later calls do nothing.
func (c *Controller) Kill() {
	if c.dead {
		return
	}
	c.dead = true
	c.log.WithField("floor", c.Floor()).Info("player: died")
	c.deps.Animations.Play(DeathAnimation)
}

// DeathTint returns the last amount set.
func (c *Controller) DeathTint() float32 {
	return c.tint
}

// SetDeathTint sets the death tint amount and pushes the resulting
// brightness.
func (c *Controller) SetDeathTint(amount float32) {
	c.tint = amount
	c.deps.Render.SetBrightness(DeathTintColor(amount, c.settings.Brightness, c.settings.DamageColor))
}

func (c *Controller) SetFogRange(near, far float32) {
	c.deps.Render.SetFog(near, far)
}

// ResetFogRange restores the configured fog range.
func (c *Controller) ResetFogRange() {
	c.SetFogRange(c.settings.FogNear, c.settings.FogFar)
}

// Floor returns the storey under the player, counting down from 0 at the
// top. The body is sampled half a unit below its origin.
func (c *Controller) Floor() int {
	up := c.deps.Body.UpDirection()
	p := rl.Vector3Subtract(c.deps.Body.Position(), rl.Vector3Scale(up, 0.5))
	return FloorIndex(p.Y, c.settings.FloorHeight)
}

// FloorIndex maps a height to a storey number. Storey n spans
// [-n*height, -(n-1)*height); anything above the top is storey 0.
func FloorIndex(y, height float32) int {
	n := int(math32.Ceil(-y / height))
	if n < 0 {
		return 0
	}
	return n
}

var crashMessages = []string{
	"NO",
	"It's not about whether you die or not, it's about when you die.",
	"NICE",
	"welcome to NIL",
}

// crashOutcomes is how many equally likely outcomes Crash rolls from; rolls
// past the messages stay silent.
const crashOutcomes = 7

// Crash ends the game. Deep enough down, it may first raise an alert.
func (c *Controller) Crash() {
	if floor := c.Floor(); floor > c.settings.CrashFloor {
		if roll := c.rand.IntN(crashOutcomes); roll < len(crashMessages) {
			msg := crashMessages[roll]
			c.deps.Input.SetMouseCaptured(false)
			c.log.WithField("floor", floor).Error(msg)
			c.deps.Lifecycle.Alert("Runtime Error", msg)
		}
	}
	c.deps.Lifecycle.Quit()
}
