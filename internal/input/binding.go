package input

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind says what a Binding reads.
type Kind int

const (
	Key Kind = iota
	GamepadButton
	GamepadAxis
)

// Binding is one physical control feeding an action. Axis bindings read one
// half of a stick: Sign picks which.
type Binding struct {
	Kind Kind
	Code int32
	Sign float32
	Name string
}

func (b Binding) String() string {
	return b.Name
}

var keyNames = map[string]int32{
	"UP":     rl.KeyUp,
	"DOWN":   rl.KeyDown,
	"LEFT":   rl.KeyLeft,
	"RIGHT":  rl.KeyRight,
	"SPACE":  rl.KeySpace,
	"LSHIFT": rl.KeyLeftShift,
	"LCTRL":  rl.KeyLeftControl,
}

var buttonNames = map[string]int32{
	"DPAD_UP":    rl.GamepadButtonLeftFaceUp,
	"DPAD_DOWN":  rl.GamepadButtonLeftFaceDown,
	"DPAD_LEFT":  rl.GamepadButtonLeftFaceLeft,
	"DPAD_RIGHT": rl.GamepadButtonLeftFaceRight,
}

var axisNames = map[string]int32{
	"LEFT_X":  rl.GamepadAxisLeftX,
	"LEFT_Y":  rl.GamepadAxisLeftY,
	"RIGHT_X": rl.GamepadAxisRightX,
	"RIGHT_Y": rl.GamepadAxisRightY,
}

// ParseBinding reads a binding name such as "key:W", "key:UP",
// "button:DPAD_UP" or "axis:LEFT_Y-". Names are case-insensitive.
func ParseBinding(s string) (Binding, error) {
	kind, name, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), ":")
	if !ok || name == "" {
		return Binding{}, fmt.Errorf("input: binding %q: want kind:name", s)
	}

	switch kind {
	case "KEY":
		if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
			return Binding{Kind: Key, Code: rl.KeyA + int32(name[0]-'A'), Name: "key:" + name}, nil
		}
		if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
			return Binding{Kind: Key, Code: rl.KeyZero + int32(name[0]-'0'), Name: "key:" + name}, nil
		}
		if code, ok := keyNames[name]; ok {
			return Binding{Kind: Key, Code: code, Name: "key:" + name}, nil
		}
	case "BUTTON":
		if code, ok := buttonNames[name]; ok {
			return Binding{Kind: GamepadButton, Code: code, Name: "button:" + name}, nil
		}
	case "AXIS":
		sign := float32(1)
		switch {
		case strings.HasSuffix(name, "-"):
			sign = -1
			name = strings.TrimSuffix(name, "-")
		case strings.HasSuffix(name, "+"):
			name = strings.TrimSuffix(name, "+")
		default:
			return Binding{}, fmt.Errorf("input: axis binding %q needs a + or - suffix", s)
		}
		if code, ok := axisNames[name]; ok {
			suffix := "+"
			if sign < 0 {
				suffix = "-"
			}
			return Binding{Kind: GamepadAxis, Code: code, Sign: sign, Name: "axis:" + name + suffix}, nil
		}
	default:
		return Binding{}, fmt.Errorf("input: binding %q: unknown kind %q", s, strings.ToLower(kind))
	}
	return Binding{}, fmt.Errorf("input: binding %q: unknown %s", s, strings.ToLower(kind))
}

// ParseBindings parses every name, stopping at the first bad one.
func ParseBindings(names []string) ([]Binding, error) {
	out := make([]Binding, 0, len(names))
	for _, n := range names {
		b, err := ParseBinding(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
