package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"stairwell/internal/audio"
	"stairwell/internal/components"
	"stairwell/internal/config"
	"stairwell/internal/engine"
	"stairwell/internal/input"
	"stairwell/internal/player"
	"stairwell/internal/render"
	"stairwell/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// eyeHeight is the camera rail's height above the body centre.
const eyeHeight = 0.7

type Game struct {
	Config     *config.Config
	World      *world.World
	Renderer   *render.Renderer
	Input      *input.Map
	Player     *engine.GameObject
	Controller *player.Controller

	camera  *components.Camera
	pc      *components.PlayerController
	anims   *components.AnimationPlayer
	clock   *engine.Clock
	overlay *Overlay
	watcher *config.Watcher
	log     *logrus.Logger

	quit  bool
	alert *Alert

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// Alert is a message shown before the game closes.
type Alert struct {
	Title   string
	Message string
}

// New builds the level and the player. It opens no window; device may be nil
// for raylib input.
func New(cfg *config.Config, log *logrus.Logger, device input.Device) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}

	g := &Game{
		Config:   cfg,
		World:    world.New(cfg.Layout(), log),
		Renderer: render.NewRenderer(log),
		Input:    input.NewMap(device),
		clock:    engine.NewClock(cfg.World.PhysicsHz),
		overlay:  NewOverlay(),
		log:      log,
	}
	g.applyInput(cfg)

	if err := g.World.Build(); err != nil {
		return nil, fmt.Errorf("game: build world: %w", err)
	}
	if err := g.createPlayer(); err != nil {
		return nil, fmt.Errorf("game: create player: %w", err)
	}
	g.overlay.Visible = cfg.Debug
	return g, nil
}

func (g *Game) applyInput(cfg *config.Config) {
	g.Input.Deadzone = cfg.Input.Deadzone
	g.Input.Gamepad = cfg.Input.Gamepad
	if err := g.Input.Load(cfg.ActionBindings()); err != nil {
		g.log.WithError(err).Warn("input: keeping previous bindings")
		return
	}
	for _, a := range g.Input.Actions() {
		g.log.WithField("action", a).Debugf("input: bound %v", g.Input.Bindings(a))
	}
}

// createPlayer assembles Player > CameraRail > Camera at the spawn point.
func (g *Game) createPlayer() error {
	cfg := g.Config
	spawn := g.World.Spawn()

	g.Player = engine.NewGameObject("Player")
	g.Player.Tags = []string{"player"}
	g.Player.Transform.Position = spawn.Position

	rail := engine.NewGameObject("CameraRail")
	rail.Transform.Position = rl.Vector3{Y: eyeHeight}
	camObj := engine.NewGameObject("Camera")
	g.camera = components.NewCamera()
	camObj.AddComponent(g.camera)
	camObj.AddComponent(components.NewAudioListener())
	rail.AddChild(camObj)
	g.Player.AddChild(rail)

	body := components.NewCharacterBody(cfg.World.Gravity)
	steps := components.NewAudioSource(cfg.Audio.StepSound)
	g.pc = components.NewPlayerController(rail, camObj, g.Input)
	g.anims = components.NewAnimationPlayer(g.log)

	g.Player.AddComponent(body)
	g.Player.AddComponent(g.pc)
	g.Player.AddComponent(steps)
	g.Player.AddComponent(g.anims)
	g.World.Scene.AddGameObject(g.Player)

	seed := cfg.World.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	ctrl, err := player.New(cfg.Settings(), player.Deps{
		Input:      g.Input,
		Body:       body,
		Rig:        g.pc,
		Render:     g.Renderer,
		Sound:      steps,
		Animations: g.anims,
		Lifecycle:  g,
		Log:        g.log.WithField("component", "player"),
		Rand:       rand.New(rand.NewPCG(seed, seed>>32|1)),
	})
	if err != nil {
		return err
	}
	ctrl.SetOrientation(player.Orientation{Yaw: spawn.Yaw})
	g.Controller = ctrl
	g.pc.Controller = ctrl
	g.addDeathClip(cfg.Controller.DeathDuration)
	g.anims.Finished.AddListener(func(name string) {
		if name == player.DeathAnimation {
			ctrl.Crash()
		}
	})
	return nil
}

// addDeathClip fades the death tint in over duration. A clip of the same
// length is kept.
func (g *Game) addDeathClip(duration float32) {
	if c, ok := g.anims.Clip(player.DeathAnimation); ok && c.Length == duration {
		return
	}
	ctrl := g.Controller
	g.anims.Add(components.Clip{
		Name:   player.DeathAnimation,
		Length: duration,
		Tracks: []components.Track{{
			Keys:  []components.Keyframe{{Time: 0, Value: 0}, {Time: duration, Value: 1}},
			Apply: ctrl.SetDeathTint,
		}},
	})
}

// Start starts every object in the scene. The player captures the mouse and
// pushes its fog and brightness.
func (g *Game) Start() {
	g.World.Scene.Start()
	g.log.WithField("floor", g.Controller.Floor()).Info("game: started")
}

// Watch hot-reloads the config from w until the game ends.
func (g *Game) Watch(w *config.Watcher) {
	g.watcher = w
}

func (g *Game) Run() {
	cfg := g.Config
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(cfg.Window.TargetFPS)
	rl.SetExitKey(rl.KeyNull)

	audio.Init(g.log)
	defer audio.Close()
	audio.SetMasterVolume(cfg.Audio.Volume)

	g.Renderer.Initialize(int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
	defer g.Renderer.Unload()
	initOverlayStyle()

	g.Start()
	defer g.World.Unload()

	for !rl.WindowShouldClose() && !g.Quitting() {
		g.Update(rl.GetFrameTime())
		g.Draw()
	}

	if a := g.PendingAlert(); a != nil {
		g.showAlert(a)
	}
}

func (g *Game) Update(deltaTime float32) {
	updateStart := time.Now()
	g.handleKeys()
	g.advance(deltaTime)
	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF1) {
		g.overlay.Visible = !g.overlay.Visible
		g.Input.SetMouseCaptured(!g.overlay.Visible)
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		g.Input.SetMouseCaptured(false)
	}
	if !g.Input.MouseCaptured() && !g.overlay.Visible && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.Input.SetMouseCaptured(true)
	}
}

// advance runs one frame of simulation: config reloads, per-frame updates
// (mouse and polled look included), then the physics steps that are due.
func (g *Game) advance(deltaTime float32) {
	g.drainConfig()
	g.World.Update(deltaTime)
	for range g.clock.Advance(deltaTime) {
		g.World.FixedUpdate(g.clock.Step)
	}
}

func (g *Game) drainConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Updates:
		if ok {
			g.ApplyConfig(cfg)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.WithError(err).Warn("config: reload rejected")
		}
	default:
	}
}

// ApplyConfig swaps in a reloaded config. Controller tuning, input, audio and
// log level apply live; world changes wait for a restart.
func (g *Game) ApplyConfig(cfg *config.Config) {
	s := cfg.Settings()
	s.FloorHeight = g.World.Layout.FloorHeight
	if err := g.Controller.ApplySettings(s); err != nil {
		g.log.WithError(err).Warn("config: reload rejected")
		return
	}
	if g.worldDiffers(cfg) {
		g.log.Warn("config: world changes apply after a restart")
	}

	g.Config = cfg
	g.applyInput(cfg)
	g.addDeathClip(cfg.Controller.DeathDuration)
	audio.SetMasterVolume(cfg.Audio.Volume)
	g.log.SetLevel(cfg.Level())
	g.log.Info("config: reloaded")
}

func (g *Game) worldDiffers(cfg *config.Config) bool {
	a, b := cfg.World, g.Config.World
	return a.Floors != b.Floors || a.FloorHeight != b.FloorHeight ||
		a.Gravity != b.Gravity || a.PhysicsHz != b.PhysicsHz
}

func (g *Game) Draw() {
	drawStart := time.Now()
	camera := g.camera.GetRaylibCamera()

	w, h := int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight())
	g.Renderer.Resize(w, h)
	_, far := g.Renderer.Fog()
	g.Renderer.DrawScene(camera, g.World.DrawablesNear(camera.Position, far+1))

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.Renderer.Present()
	if g.overlay.Visible {
		g.overlay.Draw(g)
	}
	rl.EndDrawing()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
}

// Alert implements player.Lifecycle. The message is logged, reported and
// shown once the loop ends.
func (g *Game) Alert(title, message string) {
	g.log.WithField("title", title).Error(message)
	g.alert = &Alert{Title: title, Message: message}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("floor", fmt.Sprint(g.Controller.Floor()))
		scope.SetLevel(sentry.LevelError)
	})
	hub.CaptureMessage(title + ": " + message)
}

// Quit implements player.Lifecycle.
func (g *Game) Quit() {
	g.log.Info("game: quit")
	g.quit = true
}

// Quitting reports whether Quit was called.
func (g *Game) Quitting() bool {
	return g.quit
}

// PendingAlert returns the alert raised before quitting, if any.
func (g *Game) PendingAlert() *Alert {
	return g.alert
}

// showAlert draws the alert until a key or click, or the window closes.
func (g *Game) showAlert(a *Alert) {
	g.Input.SetMouseCaptured(false)
	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		box := rl.Rectangle{X: float32(w)/2 - 260, Y: float32(h)/2 - 70, Width: 520, Height: 140}
		rl.DrawRectangleRec(box, colorBgPanel)
		rl.DrawRectangleLinesEx(box, 1, colorAccent)
		rl.DrawText(a.Title, int32(box.X)+16, int32(box.Y)+16, 20, colorTextPrimary)
		rl.DrawText(a.Message, int32(box.X)+16, int32(box.Y)+56, 16, colorTextSecondary)
		rl.DrawText("press any key", int32(box.X)+16, int32(box.Y+box.Height)-28, 14, colorTextMuted)
		rl.EndDrawing()

		if rl.GetKeyPressed() != 0 || rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			return
		}
	}
}
