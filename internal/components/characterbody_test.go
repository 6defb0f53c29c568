package components

import (
	"testing"

	"stairwell/internal/engine"
	"stairwell/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const tick = float32(1) / 60

// boxes is a WorldAccess over a fixed list of colliders.
type boxes []physics.AABB

func (b boxes) CollidersNear(area physics.AABB) []physics.AABB {
	var out []physics.AABB
	for _, box := range b {
		if box.Intersects(area) {
			out = append(out, box)
		}
	}
	return out
}

var floor = physics.AABB{Min: rl.Vector3{X: -10, Y: -0.2, Z: -10}, Max: rl.Vector3{X: 10, Y: 0, Z: 10}}

// newBody places a body with its centre at pos in a scene holding colliders.
func newBody(pos rl.Vector3, colliders ...physics.AABB) (*CharacterBody, *engine.GameObject) {
	scene := engine.NewScene("test")
	if colliders != nil {
		scene.World = boxes(colliders)
	}
	obj := engine.NewGameObject("Body")
	obj.Transform.Position = pos
	body := NewCharacterBody(9.8)
	obj.AddComponent(body)
	scene.AddGameObject(obj)
	return body, obj
}

func settle(body *CharacterBody, ticks int) {
	for range ticks {
		body.MoveAndSlide(tick)
	}
}

func TestCharacterBodyLands(t *testing.T) {
	body, _ := newBody(rl.Vector3{Y: 1.4}, floor)

	settle(body, 60)

	if !body.IsOnFloor() {
		t.Fatal("body should be on the floor")
	}
	if y := body.Position().Y; math32.Abs(y-0.9) > 1e-3 {
		t.Errorf("resting centre Y = %v, want 0.9", y)
	}
	if vy := body.Velocity().Y; vy != 0 {
		t.Errorf("resting vertical velocity = %v, want 0", vy)
	}
}

func TestCharacterBodyStaysGroundedWhileResting(t *testing.T) {
	body, _ := newBody(rl.Vector3{Y: 1}, floor)
	settle(body, 30)

	for i := range 120 {
		body.MoveAndSlide(tick)
		if !body.IsOnFloor() {
			t.Fatalf("left the floor on tick %d", i)
		}
	}
}

func TestCharacterBodyWallStopsMovement(t *testing.T) {
	wall := physics.AABB{Min: rl.Vector3{X: 1, Y: 0, Z: -5}, Max: rl.Vector3{X: 2, Y: 3, Z: 5}}
	body, _ := newBody(rl.Vector3{Y: 1}, floor, wall)
	settle(body, 30)

	for range 60 {
		body.SetVelocity(rl.Vector3{X: 5, Y: body.Velocity().Y})
		body.MoveAndSlide(tick)
	}

	if x := body.Position().X; x > 0.6+1e-3 {
		t.Errorf("body went into the wall, X = %v", x)
	}
	if !body.IsOnFloor() {
		t.Error("body should still be on the floor")
	}
}

func TestCharacterBodyStepsUpLowLedge(t *testing.T) {
	step := physics.AABB{Min: rl.Vector3{X: 1, Y: 0, Z: -5}, Max: rl.Vector3{X: 3, Y: 0.3, Z: 5}}
	body, _ := newBody(rl.Vector3{Y: 1}, floor, step)
	settle(body, 30)

	for range 60 {
		body.SetVelocity(rl.Vector3{X: 2, Y: body.Velocity().Y})
		body.MoveAndSlide(tick)
	}

	pos := body.Position()
	if pos.X < 1.5 {
		t.Errorf("body did not climb the step, X = %v", pos.X)
	}
	if math32.Abs(pos.Y-1.2) > 0.01 {
		t.Errorf("centre Y on the step = %v, want 1.2", pos.Y)
	}
}

func TestCharacterBodyBlockedByTallLedge(t *testing.T) {
	ledge := physics.AABB{Min: rl.Vector3{X: 1, Y: 0, Z: -5}, Max: rl.Vector3{X: 3, Y: 0.5, Z: 5}}
	body, _ := newBody(rl.Vector3{Y: 1}, floor, ledge)
	settle(body, 30)

	for range 60 {
		body.SetVelocity(rl.Vector3{X: 2, Y: body.Velocity().Y})
		body.MoveAndSlide(tick)
	}

	if x := body.Position().X; x > 0.6+1e-3 {
		t.Errorf("body climbed a ledge taller than its step height, X = %v", x)
	}
}

func TestCharacterBodyCeilingStopsRise(t *testing.T) {
	ceiling := physics.AABB{Min: rl.Vector3{X: -5, Y: 2, Z: -5}, Max: rl.Vector3{X: 5, Y: 3, Z: 5}}
	body, _ := newBody(rl.Vector3{Y: 0.9}, floor, ceiling)
	settle(body, 10)

	body.SetVelocity(rl.Vector3{Y: 5})
	settle(body, 10)

	if top := body.Bounds().Max.Y; top > 2+1e-3 {
		t.Errorf("head went through the ceiling, top = %v", top)
	}
	if vy := body.Velocity().Y; vy > 0 {
		t.Errorf("still rising after the ceiling, vy = %v", vy)
	}
}

func TestCharacterBodyFallSpeedIsCapped(t *testing.T) {
	body, _ := newBody(rl.Vector3{Y: 1000})

	settle(body, 600)

	if vy := body.Velocity().Y; vy != -body.MaxFall {
		t.Errorf("vy = %v, want %v", vy, -body.MaxFall)
	}
	if body.IsOnFloor() {
		t.Error("nothing to stand on")
	}
}

func TestCharacterBodyMoveWithoutWorld(t *testing.T) {
	body, obj := newBody(rl.Vector3{X: 1, Y: 2, Z: 3})

	moved := body.Move(rl.Vector3{X: 0.5, Z: -1})

	if moved != (rl.Vector3{X: 0.5, Z: -1}) {
		t.Errorf("moved = %v", moved)
	}
	if obj.Transform.Position != (rl.Vector3{X: 1.5, Y: 2, Z: 2}) {
		t.Errorf("position = %v", obj.Transform.Position)
	}
}

func TestCharacterBodyDetached(t *testing.T) {
	body := NewCharacterBody(9.8)

	if moved := body.Move(rl.Vector3{X: 1}); moved != (rl.Vector3{}) {
		t.Errorf("detached body moved %v", moved)
	}
	if body.Position() != (rl.Vector3{}) {
		t.Errorf("detached position = %v", body.Position())
	}
	if body.UpDirection() != (rl.Vector3{Y: 1}) {
		t.Errorf("up = %v", body.UpDirection())
	}
}
