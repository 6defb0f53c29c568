package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"stairwell/internal/input"
	"stairwell/internal/player"
	"stairwell/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every problem Validate reports.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Controller ControllerConfig `yaml:"controller"`
	World      WorldConfig      `yaml:"world"`
	Input      InputConfig      `yaml:"input"`
	Audio      AudioConfig      `yaml:"audio"`
	Debug      bool             `yaml:"debug"`
	LogLevel   string           `yaml:"log_level"`
	SentryDSN  string           `yaml:"sentry_dsn"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

type ControllerConfig struct {
	ForwardSpeed          float32 `yaml:"forward_speed"`
	BackwardSpeed         float32 `yaml:"backward_speed"`
	SidewaysSpeed         float32 `yaml:"sideways_speed"`
	MouseSensitivity      float32 `yaml:"mouse_sensitivity"`
	ControllerSensitivity float32 `yaml:"controller_sensitivity"`
	InvertY               bool    `yaml:"invert_y"`

	// Head bob periods count frames of a fixed 60 Hz clock, whatever
	// physics_hz is. Amplitudes are in units.
	HeadBobInterval Vec3 `yaml:"head_bob_interval"`
	HeadBobOffset   Vec3 `yaml:"head_bob_offset"`

	LethalFallSpeed float32   `yaml:"lethal_fall_speed"`
	Brightness      YAMLColor `yaml:"brightness"`
	DamageColor     YAMLColor `yaml:"damage_color"`
	FogNear         float32   `yaml:"fog_near"`
	FogFar          float32   `yaml:"fog_far"`
	CrashFloor      int       `yaml:"crash_floor"`

	// DeathDuration is how long the death clip takes to fade in, in seconds.
	DeathDuration float32 `yaml:"death_duration"`
}

type WorldConfig struct {
	Floors      int     `yaml:"floors"`
	FloorHeight float32 `yaml:"floor_height"`
	Gravity     float32 `yaml:"gravity"`
	PhysicsHz   int     `yaml:"physics_hz"`
	Seed        uint64  `yaml:"seed"`
}

type InputConfig struct {
	Deadzone float32             `yaml:"deadzone"`
	Gamepad  int32               `yaml:"gamepad"`
	Bindings map[string][]string `yaml:"bindings"`
}

type AudioConfig struct {
	StepSound string  `yaml:"step_sound"`
	Volume    float32 `yaml:"volume"`
}

// Vec3 is written as a three element list.
type Vec3 [3]float32

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// HeadBobFrameRate is the clock head_bob_interval is counted in.
const HeadBobFrameRate = 60

// Frames reads v as frame counts at hz and returns seconds.
func (v Vec3) Frames(hz float32) rl.Vector3 {
	return rl.Vector3{X: v[0] / hz, Y: v[1] / hz, Z: v[2] / hz}
}

func Default() *Config {
	s := player.DefaultSettings()
	bindings := make(map[string][]string)
	for a, names := range input.DefaultBindings() {
		bindings[string(a)] = names
	}
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Stairwell",
			TargetFPS: 144,
		},
		Controller: ControllerConfig{
			ForwardSpeed:          s.Speeds.Forward,
			BackwardSpeed:         s.Speeds.Backward,
			SidewaysSpeed:         s.Speeds.Sideways,
			MouseSensitivity:      s.MouseSensitivity,
			ControllerSensitivity: s.ControllerSensitivity,
			HeadBobInterval:       Vec3{80, 40, 1},
			HeadBobOffset:         Vec3{0.08, 0.1, 0},
			LethalFallSpeed:       s.LethalFallSpeed,
			Brightness:            YAMLColor{s.Brightness},
			DamageColor:           YAMLColor{s.DamageColor},
			FogNear:               s.FogNear,
			FogFar:                s.FogFar,
			CrashFloor:            s.CrashFloor,
			DeathDuration:         2,
		},
		World: WorldConfig{
			Floors:      140,
			FloorHeight: s.FloorHeight,
			Gravity:     9.8,
			PhysicsHz:   60,
		},
		Input: InputConfig{
			Deadzone: input.DefaultDeadzone,
			Bindings: bindings,
		},
		Audio: AudioConfig{
			StepSound: "assets/sounds/step.wav",
			Volume:    1,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return cfg.Validate()
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Controller.DeathDuration <= 0 {
		invalid("death duration must be positive, got %v", c.Controller.DeathDuration)
	}
	if c.World.Gravity <= 0 {
		invalid("gravity must be positive, got %v", c.World.Gravity)
	}
	if c.World.PhysicsHz <= 0 {
		invalid("physics rate must be positive, got %v", c.World.PhysicsHz)
	}
	if c.Input.Deadzone < 0 || c.Input.Deadzone >= 1 {
		invalid("deadzone must be in [0, 1), got %v", c.Input.Deadzone)
	}
	if err := checkBindings(c.ActionBindings()); err != nil {
		invalid("%v", err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		invalid("volume must be in [0, 1], got %v", c.Audio.Volume)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		invalid("%v", err)
	}
	if err := c.Settings().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if err := c.Layout().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

func checkBindings(bindings map[player.Action][]string) error {
	return input.NewMap(nopDevice{}).Load(bindings)
}

// ActionBindings returns the binding names keyed by action.
func (c *Config) ActionBindings() map[player.Action][]string {
	out := make(map[player.Action][]string, len(c.Input.Bindings))
	for name, bs := range c.Input.Bindings {
		out[player.Action(name)] = bs
	}
	return out
}

// Settings converts the controller and world sections to controller tuning.
func (c *Config) Settings() player.Settings {
	cc := c.Controller
	return player.Settings{
		Speeds: player.Speeds{
			Forward:  cc.ForwardSpeed,
			Backward: cc.BackwardSpeed,
			Sideways: cc.SidewaysSpeed,
		},
		MouseSensitivity:      cc.MouseSensitivity,
		ControllerSensitivity: cc.ControllerSensitivity,
		InvertY:               cc.InvertY,
		HeadBob: player.HeadBob{
			Period:    cc.HeadBobInterval.Frames(HeadBobFrameRate),
			Amplitude: cc.HeadBobOffset.Vector3(),
		},
		LethalFallSpeed: cc.LethalFallSpeed,
		Brightness:      cc.Brightness.Color,
		DamageColor:     cc.DamageColor.Color,
		FogNear:         cc.FogNear,
		FogFar:          cc.FogFar,
		FloorHeight:     c.World.FloorHeight,
		CrashFloor:      cc.CrashFloor,
	}
}

// Layout sizes the stairwell from the world section.
func (c *Config) Layout() world.Layout {
	return world.DefaultLayout(c.World.Floors, c.World.FloorHeight)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// YAMLColor reads "#RRGGBB" or "#RRGGBBAA".
type YAMLColor struct {
	rl.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		ch[i] = v
	}
	c.Color = rl.NewColor(ch[0], ch[1], ch[2], ch[3])
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}

type nopDevice struct{}

func (nopDevice) IsKeyDown(int32) bool                  { return false }
func (nopDevice) IsGamepadAvailable(int32) bool         { return false }
func (nopDevice) IsGamepadButtonDown(int32, int32) bool { return false }
func (nopDevice) GamepadAxis(int32, int32) float32      { return 0 }
func (nopDevice) SetCursorDisabled(bool)                {}
