package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees, applied Y then X then Z
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Scale: rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
	for _, child := range g.Children {
		child.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) FixedUpdate(step float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if f, ok := c.(FixedUpdater); ok {
			f.FixedUpdate(step)
		}
	}
	for _, child := range g.Children {
		child.FixedUpdate(step)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	child.Scene = g.Scene
	g.Children = append(g.Children, child)
	if g.Scene != nil {
		g.Scene.index(child)
	}
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// RotationMatrix returns the local rotation as a matrix. Angles compose in
// Y-X-Z order with yaw outermost, so pitch never tilts the yaw axis.
func (t Transform) RotationMatrix() rl.Matrix {
	rx := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	ry := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rz := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rz, rx), ry)
}

// WorldMatrix returns the full local-to-world transform.
func (g *GameObject) WorldMatrix() rl.Matrix {
	t := g.Transform
	m := rl.MatrixMultiply(
		rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z),
		t.RotationMatrix(),
	)
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))
	if g.Parent != nil {
		m = rl.MatrixMultiply(m, g.Parent.WorldMatrix())
	}
	return m
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	return rl.Vector3Transform(rl.Vector3{}, g.WorldMatrix())
}

// Basis returns the world-space X, Y and Z axes of this object, unscaled.
// Forward is -Z.
func (g *GameObject) Basis() (x, y, z rl.Vector3) {
	m := g.WorldMatrix()
	x = rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
	y = rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	z = rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	return x, y, z
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}
