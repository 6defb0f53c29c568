package player

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrInvalidSettings wraps every validation failure from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid controller settings")

// Settings is the controller's tuning. The zero value is not usable; start
// from DefaultSettings.
type Settings struct {
	Speeds Speeds

	MouseSensitivity      float32 // degrees per pixel of mouse motion
	ControllerSensitivity float32 // degrees per second at full stick
	InvertY               bool

	HeadBob HeadBob

	// LethalFallSpeed is the vertical speed a landing must be strictly below
	// to kill. Negative is down.
	LethalFallSpeed float32

	Brightness  rl.Color // screen brightness while alive
	DamageColor rl.Color // brightness the death tint subtracts from

	FogNear float32
	FogFar  float32

	FloorHeight float32 // storey height for Floor
	CrashFloor  int     // Crash may raise an alert below this storey
}

func DefaultSettings() Settings {
	return Settings{
		Speeds: Speeds{
			Forward:  1.2,
			Backward: 0.9,
			Sideways: 0.48,
		},
		MouseSensitivity:      0.2,
		ControllerSensitivity: 300,
		HeadBob:               DefaultHeadBob(),
		LethalFallSpeed:       -5.4,
		Brightness:            rl.NewColor(255, 255, 255, 255),
		DamageColor:           rl.NewColor(255, 100, 100, 255),
		FogNear:               1,
		FogFar:                3,
		FloorHeight:           3,
		CrashFloor:            130,
	}
}

// Validate reports every problem at once.
func (s Settings) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	if s.Speeds.Forward < 0 || s.Speeds.Backward < 0 || s.Speeds.Sideways < 0 {
		invalid("speeds must not be negative, got %+v", s.Speeds)
	}
	if s.MouseSensitivity < 0 {
		invalid("mouse sensitivity must not be negative, got %v", s.MouseSensitivity)
	}
	if s.ControllerSensitivity < 0 {
		invalid("controller sensitivity must not be negative, got %v", s.ControllerSensitivity)
	}
	if err := s.HeadBob.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.LethalFallSpeed >= 0 {
		invalid("lethal fall speed must be negative, got %v", s.LethalFallSpeed)
	}
	if s.FogNear < 0 || s.FogNear >= s.FogFar {
		invalid("fog range must satisfy 0 <= near < far, got %v..%v", s.FogNear, s.FogFar)
	}
	if !(s.FloorHeight > 0) {
		invalid("floor height must be positive, got %v", s.FloorHeight)
	}
	return errors.Join(errs...)
}
