package components

import (
	"stairwell/internal/engine"
	"stairwell/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterBody moves a box-shaped character through the static colliders
// of its scene: gravity, push-out, stair stepping and floor detection. The
// object's position is the centre of the box. It implements player.Body.
type CharacterBody struct {
	engine.BaseComponent

	Height     float32 // full height of the box
	Radius     float32 // half-width of the box
	StepHeight float32 // tallest ledge walked onto without falling
	Gravity    float32 // downward acceleration, positive
	MaxFall    float32 // terminal fall speed, positive
	Up         rl.Vector3

	velocity rl.Vector3
	onFloor  bool
}

// groundSnap keeps a resting body pressed into its floor so the floor is
// found again next step.
const groundSnap = 0.1

// stepSkin lifts a stepping body just clear of the ledge top.
const stepSkin = 0.001

func NewCharacterBody(gravity float32) *CharacterBody {
	return &CharacterBody{
		Height:     1.8,
		Radius:     0.4,
		StepHeight: 0.4,
		Gravity:    gravity,
		MaxFall:    50,
		Up:         rl.Vector3{Y: 1},
	}
}

func (c *CharacterBody) Position() rl.Vector3 {
	if g := c.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3{}
}

func (c *CharacterBody) Velocity() rl.Vector3 {
	return c.velocity
}

func (c *CharacterBody) SetVelocity(v rl.Vector3) {
	c.velocity = v
}

func (c *CharacterBody) UpDirection() rl.Vector3 {
	return c.Up
}

// IsOnFloor reports whether the last MoveAndSlide ended standing on something.
func (c *CharacterBody) IsOnFloor() bool {
	return c.onFloor
}

// Bounds is the body's box at its current position.
func (c *CharacterBody) Bounds() physics.AABB {
	return c.boundsAt(c.Position())
}

func (c *CharacterBody) boundsAt(center rl.Vector3) physics.AABB {
	return physics.NewAABBFromCenter(center, rl.Vector3{X: 2 * c.Radius, Y: c.Height, Z: 2 * c.Radius})
}

// MoveAndSlide applies gravity, moves by velocity*dt and resolves collisions.
// Landing zeroes vertical velocity; hitting a ceiling stops upward motion.
func (c *CharacterBody) MoveAndSlide(dt float32) {
	if c.onFloor && c.velocity.Y <= 0 {
		c.velocity.Y = -groundSnap
	} else {
		c.velocity.Y = max(c.velocity.Y-c.Gravity*dt, -c.MaxFall)
	}

	c.onFloor = false
	c.Move(rl.Vector3Scale(c.velocity, dt))
}

// Move moves the body by motion, horizontal first, and returns the
// displacement that actually happened.
func (c *CharacterBody) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	original := g.Transform.Position

	var colliders []physics.AABB
	if g.Scene != nil && g.Scene.World != nil {
		from := c.boundsAt(original)
		to := from.Translate(motion)
		swept := physics.AABB{Min: rl.Vector3Min(from.Min, to.Min), Max: rl.Vector3Max(from.Max, to.Max)}
		colliders = g.Scene.World.CollidersNear(swept.Expand(c.StepHeight + stepSkin))
	}

	if len(colliders) == 0 {
		g.Transform.Position = rl.Vector3Add(original, motion)
		return motion
	}

	if horizontal := (rl.Vector3{X: motion.X, Z: motion.Z}); horizontal.X != 0 || horizontal.Z != 0 {
		c.moveWithCollision(g, horizontal, colliders)
	}
	if motion.Y != 0 {
		c.moveWithCollision(g, rl.Vector3{Y: motion.Y}, colliders)
	}

	return rl.Vector3Subtract(g.Transform.Position, original)
}

func (c *CharacterBody) moveWithCollision(g *engine.GameObject, motion rl.Vector3, colliders []physics.AABB) {
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, motion)
	box := c.boundsAt(g.Transform.Position)

	for _, static := range colliders {
		if !box.Intersects(static) {
			continue
		}
		pushOut := box.Resolve(static)

		horizontal := (pushOut.X != 0 || pushOut.Z != 0) && pushOut.Y == 0
		if horizontal && motion.Y == 0 {
			if stepped, ok := c.tryStep(g.Transform.Position, static, colliders); ok {
				g.Transform.Position = stepped
				box = c.boundsAt(stepped)
				c.onFloor = true
				continue
			}
		}

		g.Transform.Position = rl.Vector3Add(g.Transform.Position, pushOut)
		box = c.boundsAt(g.Transform.Position)

		switch {
		case pushOut.Y > 0:
			c.onFloor = true
			c.velocity.Y = 0
		case pushOut.Y < 0 && c.velocity.Y > 0:
			c.velocity.Y = 0
		}
	}
}

// tryStep lifts the body onto static if the ledge is low enough and the
// lifted box is clear of everything.
func (c *CharacterBody) tryStep(pos rl.Vector3, static physics.AABB, colliders []physics.AABB) (rl.Vector3, bool) {
	feet := pos.Y - c.Height/2
	rise := static.Max.Y - feet
	if rise <= 0 || rise > c.StepHeight {
		return pos, false
	}

	lifted := pos
	lifted.Y += rise + stepSkin
	box := c.boundsAt(lifted)
	for _, other := range colliders {
		if box.Intersects(other) {
			return pos, false
		}
	}
	return lifted, true
}
