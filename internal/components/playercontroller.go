package components

import (
	"stairwell/internal/engine"
	"stairwell/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pointer supplies relative mouse motion while the cursor is captured.
type Pointer interface {
	MouseCaptured() bool
}

// PlayerController hosts a player.Controller on the player object. It is the
// controller's camera rig: look rotation goes on CameraRail and head-bob
// offsets on Camera, relative to where Camera started.
type PlayerController struct {
	engine.BaseComponent

	CameraRail engine.GameObjectRef
	Camera     engine.GameObjectRef
	Controller *player.Controller
	Pointer    Pointer
	MouseDelta func() rl.Vector2

	rail      *engine.GameObject
	camera    *engine.GameObject
	bobOrigin rl.Vector3
}

func NewPlayerController(rail, camera *engine.GameObject, pointer Pointer) *PlayerController {
	return &PlayerController{
		CameraRail: engine.RefTo(rail),
		Camera:     engine.RefTo(camera),
		Pointer:    pointer,
		MouseDelta: rl.GetMouseDelta,
	}
}

// Start resolves the rig and readies the controller.
func (p *PlayerController) Start() {
	scene := p.GetGameObject().Scene
	p.rail = p.CameraRail.Get(scene)
	p.camera = p.Camera.Get(scene)
	if p.camera != nil {
		p.bobOrigin = p.camera.Transform.Position
	}
	if p.Controller != nil {
		p.Controller.Ready()
	}
}

func (p *PlayerController) SetLookRotation(degrees rl.Vector3) {
	if p.rail != nil {
		p.rail.Transform.Rotation = degrees
	}
}

func (p *PlayerController) SetBobOffset(offset rl.Vector3) {
	if p.camera != nil {
		p.camera.Transform.Position = rl.Vector3Add(p.bobOrigin, offset)
	}
}

func (p *PlayerController) Update(deltaTime float32) {
	if p.Controller == nil {
		return
	}
	if p.Pointer != nil && p.Pointer.MouseCaptured() && p.MouseDelta != nil {
		if delta := p.MouseDelta(); delta.X != 0 || delta.Y != 0 {
			p.Controller.HandleMouseMotion(delta)
		}
	}
	p.Controller.Process(deltaTime)
}

func (p *PlayerController) FixedUpdate(step float32) {
	if p.Controller != nil {
		p.Controller.PhysicsProcess(step)
	}
}
