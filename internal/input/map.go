package input

import (
	"fmt"

	"stairwell/internal/player"

	"github.com/elliotchance/orderedmap/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Device is the hardware a Map polls.
type Device interface {
	IsKeyDown(key int32) bool
	IsGamepadAvailable(pad int32) bool
	IsGamepadButtonDown(pad, button int32) bool
	GamepadAxis(pad, axis int32) float32
	SetCursorDisabled(disabled bool)
}

// DefaultDeadzone ignores stick drift below a fifth of full travel.
const DefaultDeadzone float32 = 0.2

// Map turns physical controls into action strengths. It implements
// player.InputSource.
type Map struct {
	Deadzone float32
	Gamepad  int32

	device   Device
	bindings *orderedmap.OrderedMap[player.Action, []Binding]
	captured bool
}

// NewMap creates an empty map over a device. A nil device polls raylib.
func NewMap(device Device) *Map {
	if device == nil {
		device = Raylib{}
	}
	return &Map{
		Deadzone: DefaultDeadzone,
		device:   device,
		bindings: orderedmap.NewOrderedMap[player.Action, []Binding](),
	}
}

// DefaultBindings moves with WASD, the arrow keys, the left stick or the d-pad
// and looks with the right stick.
func DefaultBindings() map[player.Action][]string {
	return map[player.Action][]string{
		player.LookUp:       {"axis:RIGHT_Y-"},
		player.LookDown:     {"axis:RIGHT_Y+"},
		player.LookLeft:     {"axis:RIGHT_X-"},
		player.LookRight:    {"axis:RIGHT_X+"},
		player.MoveForward:  {"key:W", "key:UP", "axis:LEFT_Y-", "button:DPAD_UP"},
		player.MoveBackward: {"key:S", "key:DOWN", "axis:LEFT_Y+", "button:DPAD_DOWN"},
		player.MoveLeft:     {"key:A", "key:LEFT", "axis:LEFT_X-", "button:DPAD_LEFT"},
		player.MoveRight:    {"key:D", "key:RIGHT", "axis:LEFT_X+", "button:DPAD_RIGHT"},
	}
}

// Load replaces every binding. Actions are stored in player.Actions order;
// actions missing from names end up unbound.
func (m *Map) Load(names map[player.Action][]string) error {
	next := orderedmap.NewOrderedMap[player.Action, []Binding]()
	for _, a := range player.Actions {
		bs, err := ParseBindings(names[a])
		if err != nil {
			return fmt.Errorf("input: %s: %w", a, err)
		}
		next.Set(a, bs)
	}
	for a := range names {
		if _, ok := next.Get(a); !ok {
			return fmt.Errorf("input: unknown action %q", a)
		}
	}
	m.bindings = next
	return nil
}

// Bindings returns the bindings of an action.
func (m *Map) Bindings(a player.Action) []Binding {
	bs, _ := m.bindings.Get(a)
	return bs
}

// Actions returns the bound actions in load order.
func (m *Map) Actions() []player.Action {
	return m.bindings.Keys()
}

// ActionStrength is the strongest of an action's bindings, in [0, 1]. Keys
// and buttons are all or nothing; axes are rescaled past the deadzone.
func (m *Map) ActionStrength(a player.Action) float32 {
	bs, _ := m.bindings.Get(a)
	pad := m.device.IsGamepadAvailable(m.Gamepad)

	var best float32
	for _, b := range bs {
		var v float32
		switch b.Kind {
		case Key:
			if m.device.IsKeyDown(b.Code) {
				v = 1
			}
		case GamepadButton:
			if pad && m.device.IsGamepadButtonDown(m.Gamepad, b.Code) {
				v = 1
			}
		case GamepadAxis:
			if pad {
				v = m.axisStrength(m.device.GamepadAxis(m.Gamepad, b.Code) * b.Sign)
			}
		}
		best = max(best, v)
	}
	return best
}

func (m *Map) axisStrength(v float32) float32 {
	if v <= m.Deadzone {
		return 0
	}
	if m.Deadzone >= 1 {
		return 0
	}
	return rl.Clamp((v-m.Deadzone)/(1-m.Deadzone), 0, 1)
}

// SetMouseCaptured hides and locks the cursor while captured.
func (m *Map) SetMouseCaptured(captured bool) {
	if captured == m.captured {
		return
	}
	m.captured = captured
	m.device.SetCursorDisabled(captured)
}

func (m *Map) MouseCaptured() bool {
	return m.captured
}

// Raylib polls the live window.
type Raylib struct{}

func (Raylib) IsKeyDown(key int32) bool                { return rl.IsKeyDown(key) }
func (Raylib) IsGamepadAvailable(pad int32) bool       { return rl.IsGamepadAvailable(pad) }
func (Raylib) IsGamepadButtonDown(pad, btn int32) bool { return rl.IsGamepadButtonDown(pad, btn) }
func (Raylib) GamepadAxis(pad, axis int32) float32     { return rl.GetGamepadAxisMovement(pad, axis) }

func (Raylib) SetCursorDisabled(disabled bool) {
	if disabled {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}
