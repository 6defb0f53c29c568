package components

import (
	"stairwell/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera views the scene from its object's world transform, looking down -Z.
type Camera struct {
	engine.BaseComponent
	FOV        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        75.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()
	_, up, back := g.Basis()

	return rl.Camera3D{
		Position:   eyePos,
		Target:     rl.Vector3Subtract(eyePos, back),
		Up:         up,
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// Forward is the unit direction the camera looks.
func (c *Camera) Forward() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{Z: -1}
	}
	_, _, back := g.Basis()
	return rl.Vector3Negate(back)
}
