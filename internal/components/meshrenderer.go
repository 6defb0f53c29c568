package components

import (
	"stairwell/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshPlane
)

// MeshRenderer draws an untextured primitive at its object. Edges are drawn
// in EdgeColor when its alpha is non-zero.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType  MeshType
	Color     rl.Color
	EdgeColor rl.Color
	Size      rl.Vector3
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	size := rl.Vector3Multiply(m.Size, g.WorldScale())

	switch m.MeshType {
	case MeshCube:
		rl.DrawCubeV(pos, size, m.Color)
		if m.EdgeColor.A != 0 {
			rl.DrawCubeWiresV(pos, size, m.EdgeColor)
		}
	case MeshPlane:
		rl.DrawPlane(pos, rl.Vector2{X: size.X, Y: size.Z}, m.Color)
	}
}

// Bounds is the box Draw covers, for culling.
func (m *MeshRenderer) Bounds() (min, max rl.Vector3) {
	g := m.GetGameObject()
	if g == nil {
		return
	}
	half := rl.Vector3Scale(rl.Vector3Multiply(m.Size, g.WorldScale()), 0.5)
	pos := g.WorldPosition()
	return rl.Vector3Subtract(pos, half), rl.Vector3Add(pos, half)
}
