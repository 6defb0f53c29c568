package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stairwell/internal/player"
	"stairwell/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
}

func TestDefaultMatchesControllerDefaults(t *testing.T) {
	got := Default().Settings()
	want := player.DefaultSettings()

	if got.Speeds != want.Speeds {
		t.Errorf("speeds = %+v, want %+v", got.Speeds, want.Speeds)
	}
	if got.Brightness != want.Brightness || got.DamageColor != want.DamageColor {
		t.Errorf("colours = %v/%v", got.Brightness, got.DamageColor)
	}
	if !near3(got.HeadBob.Period, want.HeadBob.Period) || got.HeadBob.Amplitude != want.HeadBob.Amplitude {
		t.Errorf("head bob = %+v, want %+v", got.HeadBob, want.HeadBob)
	}
	if got.FogNear != 1 || got.FogFar != 3 || got.LethalFallSpeed != -5.4 {
		t.Errorf("fog/lethal = %v %v %v", got.FogNear, got.FogFar, got.LethalFallSpeed)
	}
}

func TestHeadBobIgnoresPhysicsRate(t *testing.T) {
	cfg := Default()
	cfg.World.PhysicsHz = 120

	got := cfg.Settings().HeadBob.Period
	if want := (rl.Vector3{X: 80.0 / 60, Y: 40.0 / 60, Z: 1.0 / 60}); !near3(got, want) {
		t.Errorf("period at 120 Hz physics = %v, want %v", got, want)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("Expected defaults, got %+v", cfg.Window)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
controller:
  forward_speed: 2.5
  invert_y: true
  head_bob_interval: [60, 30, 1]
  brightness: "#282828"
  damage_color: "#ff646480"
input:
  bindings:
    MoveForward: ["key:I"]
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != 720 {
		t.Errorf("window = %+v", cfg.Window)
	}
	s := cfg.Settings()
	if s.Speeds.Forward != 2.5 || s.Speeds.Backward != 0.9 {
		t.Errorf("speeds = %+v", s.Speeds)
	}
	if !s.InvertY {
		t.Error("invert_y not read")
	}
	if s.HeadBob.Period.X != 1 || s.HeadBob.Period.Y != 0.5 {
		t.Errorf("period = %v", s.HeadBob.Period)
	}
	if s.Brightness != rl.NewColor(40, 40, 40, 255) {
		t.Errorf("brightness = %v", s.Brightness)
	}
	if s.DamageColor != rl.NewColor(255, 100, 100, 128) {
		t.Errorf("damage = %v", s.DamageColor)
	}
	if got := cfg.ActionBindings()[player.MoveForward]; len(got) != 1 || got[0] != "key:I" {
		t.Errorf("MoveForward bindings = %v", got)
	}
	if got := cfg.ActionBindings()[player.MoveLeft]; len(got) == 0 {
		t.Error("unlisted actions should keep their default bindings")
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
controller:
  head_bob_interval: [80, 0, 1]
  fog_near: 4
  fog_far: 2
world:
  gravity: 0
  floor_height: 9
input:
  bindings:
    Jump: ["key:SPACE"]
log_level: loud
`)

	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
	if !errors.Is(err, player.ErrInvalidSettings) {
		t.Errorf("controller problems should wrap player.ErrInvalidSettings: %v", err)
	}
	if !errors.Is(err, world.ErrInvalidLayout) {
		t.Errorf("layout problems should wrap world.ErrInvalidLayout: %v", err)
	}
	for _, want := range []string{"period", "fog", "gravity", "stairs", "Jump", "loud"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %q: %v", want, err)
		}
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "controller: [oops")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected a parse error")
	}

	path = writeConfig(t, "controller:\n  brightness: red\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "color") {
		t.Fatalf("Expected a colour error, got %v", err)
	}
}

func TestYAMLColorRoundTrip(t *testing.T) {
	c := YAMLColor{rl.NewColor(1, 2, 254, 255)}
	out, err := c.MarshalYAML()
	if err != nil {
		t.Fatal(err)
	}
	if out != "#0102feff" {
		t.Errorf("MarshalYAML = %v", out)
	}
}

func TestWatcherReloads(t *testing.T) {
	path := writeConfig(t, "controller:\n  forward_speed: 1.5\n")

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("controller:\n  forward_speed: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Controller.ForwardSpeed != 3 {
			t.Errorf("reloaded forward speed = %v", cfg.Controller.ForwardSpeed)
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "debug: true\n")

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("world:\n  floors: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		t.Fatalf("invalid config delivered: %+v", cfg.World)
	case err := <-w.Errors:
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Expected ErrInvalid, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "debug: true\n")

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	if err := os.WriteFile(other, []byte("debug: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		t.Fatalf("reloaded for an unrelated file: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherSkipsUnchangedContent(t *testing.T) {
	body := "controller:\n  forward_speed: 1.5\n"
	path := writeConfig(t, body)

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		t.Fatalf("reloaded identical content: %+v", cfg.Controller)
	case err := <-w.Errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := Watch(writeConfig(t, ""), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Error("Updates should be closed")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stairwell.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func near3(a, b rl.Vector3) bool {
	const eps = 1e-6
	d := rl.Vector3Subtract(a, b)
	return d.X*d.X+d.Y*d.Y+d.Z*d.Z < eps*eps
}
