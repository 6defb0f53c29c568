package player

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HeadBob is a per-axis triangle wave applied to the camera's local position
// while walking. X sways, Y bobs. A footstep falls on every wrap of the Y
// period.
type HeadBob struct {
	Period    rl.Vector3 // seconds per cycle, per axis
	Amplitude rl.Vector3 // peak offset, per axis

	phase float32
}

// DefaultHeadBob sways over 80 frames and bobs over 40 at 60 Hz.
func DefaultHeadBob() HeadBob {
	return HeadBob{
		Period:    rl.Vector3{X: 80.0 / 60, Y: 40.0 / 60, Z: 1.0 / 60},
		Amplitude: rl.Vector3{X: 0.08, Y: 0.1, Z: 0},
	}
}

// Validate rejects periods that would divide by zero.
func (h HeadBob) Validate() error {
	var errs []error
	for _, p := range []struct {
		axis   string
		period float32
	}{{"x", h.Period.X}, {"y", h.Period.Y}, {"z", h.Period.Z}} {
		if !(p.period > 0) {
			errs = append(errs, fmt.Errorf("%w: head bob %s period must be positive, got %v", ErrInvalidSettings, p.axis, p.period))
		}
	}
	return errors.Join(errs...)
}

// wrap is the phase range. Only X and Y set it; Z is expected to divide it.
func (h HeadBob) wrap() float32 {
	return math32.Max(h.Period.X, h.Period.Y)
}

// Phase returns the accumulated walk time, in [0, max(Period.X, Period.Y)).
func (h HeadBob) Phase() float32 {
	return h.phase
}

// Advance moves the wave forward by dt while moving and reports whether a
// footstep landed. Standing still freezes the phase.
func (h *HeadBob) Advance(dt float32, moving bool) (offset rl.Vector3, step bool) {
	if !moving || dt <= 0 {
		return h.Offset(), false
	}
	old := h.phase
	h.phase = math32.Mod(h.phase+dt, h.wrap())
	step = math32.Mod(h.phase, h.Period.Y) < math32.Mod(old, h.Period.Y)
	return h.Offset(), step
}

// Offset is the camera offset at the current phase. Each axis runs from 0 up
// to its amplitude at half period and back to 0.
func (h HeadBob) Offset() rl.Vector3 {
	return rl.Vector3{
		X: triangle(h.phase, h.Period.X, h.Amplitude.X),
		Y: triangle(h.phase, h.Period.Y, h.Amplitude.Y),
		Z: triangle(h.phase, h.Period.Z, h.Amplitude.Z),
	}
}

// retune swaps in new periods and amplitudes without restarting the walk.
func (h *HeadBob) retune(n HeadBob) {
	h.Period = n.Period
	h.Amplitude = n.Amplitude
	h.phase = math32.Mod(h.phase, h.wrap())
}

func triangle(phase, period, amplitude float32) float32 {
	half := period / 2
	return amplitude * (1 - math32.Abs(math32.Mod(phase, period)-half)/half)
}
