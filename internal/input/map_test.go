package input

import (
	"slices"
	"strings"
	"testing"

	"stairwell/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeDevice struct {
	keys     map[int32]bool
	buttons  map[int32]bool
	axes     map[int32]float32
	pad      bool
	disabled []bool
}

func (d *fakeDevice) IsKeyDown(key int32) bool                 { return d.keys[key] }
func (d *fakeDevice) IsGamepadAvailable(int32) bool            { return d.pad }
func (d *fakeDevice) IsGamepadButtonDown(_, button int32) bool { return d.buttons[button] }
func (d *fakeDevice) GamepadAxis(_, axis int32) float32        { return d.axes[axis] }
func (d *fakeDevice) SetCursorDisabled(disabled bool)          { d.disabled = append(d.disabled, disabled) }

func newDevice() *fakeDevice {
	return &fakeDevice{
		keys:    map[int32]bool{},
		buttons: map[int32]bool{},
		axes:    map[int32]float32{},
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		want Binding
	}{
		{"key:W", Binding{Kind: Key, Code: rl.KeyW, Name: "key:W"}},
		{"key:w", Binding{Kind: Key, Code: rl.KeyW, Name: "key:W"}},
		{"key:7", Binding{Kind: Key, Code: rl.KeySeven, Name: "key:7"}},
		{" key:up ", Binding{Kind: Key, Code: rl.KeyUp, Name: "key:UP"}},
		{"button:dpad_left", Binding{Kind: GamepadButton, Code: rl.GamepadButtonLeftFaceLeft, Name: "button:DPAD_LEFT"}},
		{"axis:LEFT_Y-", Binding{Kind: GamepadAxis, Code: rl.GamepadAxisLeftY, Sign: -1, Name: "axis:LEFT_Y-"}},
		{"axis:right_x+", Binding{Kind: GamepadAxis, Code: rl.GamepadAxisRightX, Sign: 1, Name: "axis:RIGHT_X+"}},
	}
	for _, tt := range tests {
		got, err := ParseBinding(tt.in)
		if err != nil {
			t.Errorf("ParseBinding(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBinding(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseBindingErrors(t *testing.T) {
	for _, in := range []string{"", "W", "key:", "key:F13", "mouse:LEFT", "axis:LEFT_X", "axis:TRIGGER+", "button:A"} {
		if _, err := ParseBinding(in); err == nil {
			t.Errorf("ParseBinding(%q) should fail", in)
		}
	}
}

func TestDefaultBindingsParse(t *testing.T) {
	m := NewMap(newDevice())
	if err := m.Load(DefaultBindings()); err != nil {
		t.Fatalf("Load(DefaultBindings()): %v", err)
	}
	if !slices.Equal(m.Actions(), player.Actions) {
		t.Errorf("Actions() = %v, want %v", m.Actions(), player.Actions)
	}
	for _, a := range player.Actions {
		if len(m.Bindings(a)) == 0 {
			t.Errorf("%s has no default binding", a)
		}
	}
}

func TestLoadRejectsUnknownAction(t *testing.T) {
	m := NewMap(newDevice())
	err := m.Load(map[player.Action][]string{"Jump": {"key:SPACE"}})
	if err == nil || !strings.Contains(err.Error(), "Jump") {
		t.Errorf("Expected unknown action error, got %v", err)
	}
}

func TestLoadKeepsOldBindingsOnError(t *testing.T) {
	m := NewMap(newDevice())
	if err := m.Load(DefaultBindings()); err != nil {
		t.Fatal(err)
	}
	bad := DefaultBindings()
	bad[player.MoveLeft] = []string{"key:NOPE"}

	if err := m.Load(bad); err == nil {
		t.Fatal("Expected an error")
	}
	if got := m.Bindings(player.MoveLeft); len(got) != 4 {
		t.Errorf("old bindings lost: %v", got)
	}
}

func TestActionStrength(t *testing.T) {
	d := newDevice()
	m := NewMap(d)
	if err := m.Load(DefaultBindings()); err != nil {
		t.Fatal(err)
	}

	if got := m.ActionStrength(player.MoveForward); got != 0 {
		t.Errorf("idle strength = %v", got)
	}

	d.keys[rl.KeyW] = true
	if got := m.ActionStrength(player.MoveForward); got != 1 {
		t.Errorf("key strength = %v, want 1", got)
	}
	d.keys[rl.KeyW] = false

	// Sticks are ignored without a pad.
	d.axes[rl.GamepadAxisLeftY] = -1
	if got := m.ActionStrength(player.MoveForward); got != 0 {
		t.Errorf("axis read without a pad: %v", got)
	}

	d.pad = true
	if got := m.ActionStrength(player.MoveForward); got != 1 {
		t.Errorf("full stick = %v, want 1", got)
	}
	if got := m.ActionStrength(player.MoveBackward); got != 0 {
		t.Errorf("opposite half of the stick = %v, want 0", got)
	}

	d.axes[rl.GamepadAxisLeftY] = -0.6
	if got := m.ActionStrength(player.MoveForward); got < 0.49 || got > 0.51 {
		t.Errorf("0.6 past a 0.2 deadzone = %v, want 0.5", got)
	}

	d.axes[rl.GamepadAxisLeftY] = -0.15
	if got := m.ActionStrength(player.MoveForward); got != 0 {
		t.Errorf("inside deadzone = %v, want 0", got)
	}

	d.buttons[rl.GamepadButtonLeftFaceUp] = true
	if got := m.ActionStrength(player.MoveForward); got != 1 {
		t.Errorf("dpad strength = %v, want 1", got)
	}
}

func TestSetMouseCaptured(t *testing.T) {
	d := newDevice()
	m := NewMap(d)

	m.SetMouseCaptured(true)
	m.SetMouseCaptured(true)
	m.SetMouseCaptured(false)

	if !slices.Equal(d.disabled, []bool{true, false}) {
		t.Errorf("cursor calls = %v", d.disabled)
	}
	if m.MouseCaptured() {
		t.Error("Expected released")
	}
}
