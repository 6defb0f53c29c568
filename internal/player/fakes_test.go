package player

import (
	"math/rand/v2"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeInput struct {
	strengths map[Action]float32
	captured  bool
}

func (f *fakeInput) ActionStrength(a Action) float32 { return f.strengths[a] }
func (f *fakeInput) SetMouseCaptured(c bool)         { f.captured = c }

func (f *fakeInput) hold(a Action, v float32) {
	if f.strengths == nil {
		f.strengths = make(map[Action]float32)
	}
	f.strengths[a] = v
}

// fakeBody integrates straight lines with gravity and lands on y = 0.
type fakeBody struct {
	pos      rl.Vector3
	vel      rl.Vector3
	gravity  float32
	onFloor  bool
	moves    int
}

func (b *fakeBody) Position() rl.Vector3     { return b.pos }
func (b *fakeBody) Velocity() rl.Vector3     { return b.vel }
func (b *fakeBody) SetVelocity(v rl.Vector3) { b.vel = v }
func (b *fakeBody) UpDirection() rl.Vector3  { return rl.Vector3{Y: 1} }
func (b *fakeBody) IsOnFloor() bool          { return b.onFloor }

func (b *fakeBody) MoveAndSlide(dt float32) {
	b.moves++
	b.vel.Y -= b.gravity * dt
	b.pos = rl.Vector3Add(b.pos, rl.Vector3Scale(b.vel, dt))
	b.onFloor = false
	if b.pos.Y <= 0 {
		b.pos.Y = 0
		b.vel.Y = 0
		b.onFloor = true
	}
}

type fakeRig struct {
	rotation rl.Vector3
	offset   rl.Vector3
	offsets  int
}

func (r *fakeRig) SetLookRotation(d rl.Vector3) { r.rotation = d }
func (r *fakeRig) SetBobOffset(o rl.Vector3) {
	r.offset = o
	r.offsets++
}

type fakeRender struct {
	near, far  float32
	brightness rl.Color
	fogCalls   int
}

func (r *fakeRender) SetFog(near, far float32) {
	r.near, r.far = near, far
	r.fogCalls++
}
func (r *fakeRender) SetBrightness(c rl.Color) { r.brightness = c }

type fakeSound struct{ steps int }

func (s *fakeSound) PlayStep() { s.steps++ }

type fakeAnimations struct{ played []string }

func (a *fakeAnimations) Play(name string) { a.played = append(a.played, name) }

type fakeLifecycle struct {
	alerts []string
	quits  int
}

func (l *fakeLifecycle) Alert(title, msg string) { l.alerts = append(l.alerts, title+": "+msg) }
func (l *fakeLifecycle) Quit()                   { l.quits++ }

type harness struct {
	c      *Controller
	input  *fakeInput
	body   *fakeBody
	rig    *fakeRig
	render *fakeRender
	sound  *fakeSound
	anims  *fakeAnimations
	life   *fakeLifecycle
}

func newHarness(t *testing.T, s Settings) *harness {
	t.Helper()
	h := &harness{
		input:  &fakeInput{},
		body:   &fakeBody{gravity: 9.8},
		rig:    &fakeRig{},
		render: &fakeRender{},
		sound:  &fakeSound{},
		anims:  &fakeAnimations{},
		life:   &fakeLifecycle{},
	}
	c, err := New(s, Deps{
		Input:      h.input,
		Body:       h.body,
		Rig:        h.rig,
		Render:     h.render,
		Sound:      h.sound,
		Animations: h.anims,
		Lifecycle:  h.life,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.c = c
	return h
}
