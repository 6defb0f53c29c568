package world

import (
	"fmt"

	"stairwell/internal/components"
	"stairwell/internal/engine"
	"stairwell/internal/physics"
	"stairwell/internal/player"
	"stairwell/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

var (
	slabColor  = rl.NewColor(118, 116, 110, 255)
	stairColor = rl.NewColor(140, 136, 126, 255)
	wallColor  = rl.NewColor(86, 88, 92, 255)
	edgeColor  = rl.NewColor(30, 30, 30, 255)
)

// Spawn is where the player starts: the body centre and the view yaw.
type Spawn struct {
	Position rl.Vector3
	Yaw      float32
}

// World owns the level scene and answers collider queries for it. It
// implements engine.WorldAccess.
type World struct {
	Scene  *engine.Scene
	Layout Layout

	grid   *physics.Grid
	floors [][]render.Drawable
	log    logrus.FieldLogger
}

func New(layout Layout, log logrus.FieldLogger) *World {
	w := &World{
		Scene:  engine.NewScene("Stairwell"),
		Layout: layout,
		grid:   physics.NewGrid(physics.DefaultCellSize),
		log:    log,
	}
	w.Scene.World = w
	return w
}

// Build generates every storey and indexes its colliders. It does not touch
// the GPU.
func (w *World) Build() error {
	if err := w.Layout.Validate(); err != nil {
		return err
	}

	w.floors = make([][]render.Drawable, w.Layout.Floors)
	for i := range w.Layout.Floors {
		w.Scene.AddGameObject(w.buildFloor(i))
	}
	w.indexColliders()

	if w.log != nil {
		w.log.WithFields(logrus.Fields{
			"floors":    w.Layout.Floors,
			"colliders": w.grid.Len(),
		}).Info("world: built stairwell")
	}
	return nil
}

func (w *World) buildFloor(i int) *engine.GameObject {
	l := w.Layout
	top := l.Top(i)
	s, r, t := l.ShaftHalf, l.OuterHalf, l.Thickness

	floor := engine.NewGameObject(fmt.Sprintf("Floor_%03d", i))
	floor.Tags = []string{"floor"}

	slab := func(name string, minX, maxX, minZ, maxZ float32) {
		w.addBox(i, floor, name, slabColor,
			rl.Vector3{X: minX, Y: top - t, Z: minZ},
			rl.Vector3{X: maxX, Y: top, Z: maxZ})
	}

	if i == l.Floors-1 {
		slab("Bottom", -r, r, -r, r)
	} else {
		slab("North", -r, r, -r, -s)
		slab("South", -r, r, s, r)
		slab("West", -r, -s, -s, s)

		rise, tread := l.Rise(), l.Tread()
		for k := range l.Steps {
			stepTop := top - float32(k+1)*rise
			z := -s + float32(k)*tread
			w.addBox(i, floor, fmt.Sprintf("Step_%02d", k), stairColor,
				rl.Vector3{X: s, Y: stepTop - t, Z: z},
				rl.Vector3{X: r, Y: stepTop, Z: z + tread})
		}
	}

	walls := []struct {
		name     string
		min, max rl.Vector3
	}{
		{"WallNorth", rl.Vector3{X: -r - t, Z: -r - t}, rl.Vector3{X: r + t, Z: -r}},
		{"WallSouth", rl.Vector3{X: -r - t, Z: r}, rl.Vector3{X: r + t, Z: r + t}},
		{"WallWest", rl.Vector3{X: -r - t, Z: -r}, rl.Vector3{X: -r, Z: r}},
		{"WallEast", rl.Vector3{X: r, Z: -r}, rl.Vector3{X: r + t, Z: r}},
	}
	for _, wall := range walls {
		wall.min.Y, wall.max.Y = top, top+l.FloorHeight
		w.addBox(i, floor, wall.name, wallColor, wall.min, wall.max)
	}
	return floor
}

// addBox adds a solid, drawn box child to parent.
func (w *World) addBox(i int, parent *engine.GameObject, name string, color rl.Color, min, max rl.Vector3) {
	center := rl.Vector3Scale(rl.Vector3Add(min, max), 0.5)
	size := rl.Vector3Subtract(max, min)

	obj := engine.NewGameObject(name)
	obj.Tags = []string{"static"}
	obj.Transform.Position = center

	mr := components.NewMeshRenderer(components.MeshCube, color, size)
	mr.EdgeColor = edgeColor
	obj.AddComponent(mr)
	obj.AddComponent(components.NewBoxCollider(size))

	parent.AddChild(obj)
	w.floors[i] = append(w.floors[i], mr)
}

// indexColliders puts every BoxCollider in the scene into the grid.
func (w *World) indexColliders() {
	w.grid.Clear()
	w.Scene.Walk(func(g *engine.GameObject) {
		if c := engine.GetComponent[*components.BoxCollider](g); c != nil && g.HasTag("static") {
			w.grid.Insert(c.GetAABB())
		}
	})
}

// CollidersNear implements engine.WorldAccess.
func (w *World) CollidersNear(area physics.AABB) []physics.AABB {
	return w.grid.Query(area)
}

// ColliderCount is the number of static boxes indexed.
func (w *World) ColliderCount() int {
	return w.grid.Len()
}

// DrawablesNear returns the drawables of every storey within reach of pos
// vertically. The renderer does the finer culling.
func (w *World) DrawablesNear(pos rl.Vector3, reach float32) []render.Drawable {
	if len(w.floors) == 0 {
		return nil
	}
	// A storey's stairs hang into the band below it.
	lo := max(player.FloorIndex(pos.Y+reach, w.Layout.FloorHeight)-1, 0)
	hi := min(player.FloorIndex(pos.Y-reach, w.Layout.FloorHeight), len(w.floors)-1)

	var out []render.Drawable
	for i := lo; i <= hi; i++ {
		out = append(out, w.floors[i]...)
	}
	return out
}

// Spawn is on the top landing, facing along it towards the stairs.
func (w *World) Spawn() Spawn {
	l := w.Layout
	mid := -(l.OuterHalf + l.ShaftHalf) / 2
	return Spawn{
		Position: rl.Vector3{X: mid, Y: l.Top(0) + 0.9 + 0.01, Z: mid},
		Yaw:      -90,
	}
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

func (w *World) FixedUpdate(step float32) {
	w.Scene.FixedUpdate(step)
}

// Unload releases every component that holds resources.
func (w *World) Unload() {
	w.Scene.Walk(func(g *engine.GameObject) {
		for _, c := range g.Components() {
			if u, ok := c.(engine.Unloader); ok {
				u.Unload()
			}
		}
	})
}
