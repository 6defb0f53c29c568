package physics

import (
	"slices"

	"github.com/chewxy/math32"
)

// DefaultCellSize suits boxes a few units across; larger boxes simply occupy
// more cells.
const DefaultCellSize = 5.0

// CellKey addresses one cell of a Grid.
type CellKey struct {
	X, Y, Z int
}

// Grid is a spatial hash of static boxes. Boxes are inserted into every cell
// they touch, so a query only needs the cells its own box touches.
type Grid struct {
	CellSize float32
	boxes    []AABB
	cells    map[CellKey][]int
}

func NewGrid(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		CellSize: cellSize,
		cells:    make(map[CellKey][]int),
	}
}

func (g *Grid) cellOf(x, y, z float32) CellKey {
	return CellKey{
		X: int(math32.Floor(x / g.CellSize)),
		Y: int(math32.Floor(y / g.CellSize)),
		Z: int(math32.Floor(z / g.CellSize)),
	}
}

func (g *Grid) span(b AABB, fn func(CellKey)) {
	lo := g.cellOf(b.Min.X, b.Min.Y, b.Min.Z)
	hi := g.cellOf(b.Max.X, b.Max.Y, b.Max.Z)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				fn(CellKey{x, y, z})
			}
		}
	}
}

// Insert adds a static box.
func (g *Grid) Insert(b AABB) {
	id := len(g.boxes)
	g.boxes = append(g.boxes, b)
	g.span(b, func(k CellKey) {
		g.cells[k] = append(g.cells[k], id)
	})
}

// Len returns the number of boxes inserted.
func (g *Grid) Len() int {
	return len(g.boxes)
}

// Query returns every box that overlaps area, each at most once, in insertion
// order.
func (g *Grid) Query(area AABB) []AABB {
	seen := make(map[int]struct{})
	var ids []int
	g.span(area, func(k CellKey) {
		for _, id := range g.cells[k] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	})
	slices.Sort(ids)

	var result []AABB
	for _, id := range ids {
		if b := g.boxes[id]; b.Intersects(area) {
			result = append(result, b)
		}
	}
	return result
}

func (g *Grid) Clear() {
	g.boxes = g.boxes[:0]
	for k := range g.cells {
		delete(g.cells, k)
	}
}
