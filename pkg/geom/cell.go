// pkg/geom/cell.go
package geom

import (
	"fmt"
	"math"

	"go-grid-defense/pkg/utils"
)

// Cell is a column/row index into a tile grid.
type Cell struct {
	X, Y int
}

// Neighbor4 lists the four axis-aligned offsets in expansion order.
var Neighbor4 = [4]Cell{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
}

// Add returns the cell offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Manhattan returns |dx| + |dy| between c and o.
func (c Cell) Manhattan(o Cell) int {
	return utils.Abs(c.X-o.X) + utils.Abs(c.Y-o.Y)
}

// Adjacent reports whether o is one of the four direct neighbours of c.
func (c Cell) Adjacent(o Cell) bool {
	return c.Manhattan(o) == 1
}

// Neighbors4 returns the four axis-aligned neighbours of c, unfiltered.
func (c Cell) Neighbors4() [4]Cell {
	var out [4]Cell
	for i, d := range Neighbor4 {
		out[i] = c.Add(d)
	}
	return out
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellToWorld maps a cell to the world-space centre of its tile.
func CellToWorld(c Cell, tileSize float64) Vec2 {
	return Vec2{
		X: float64(c.X)*tileSize + tileSize/2,
		Y: float64(c.Y)*tileSize + tileSize/2,
	}
}

// WorldToCell returns the cell containing p. Negative coordinates floor
// toward negative infinity.
func WorldToCell(p Vec2, tileSize float64) Cell {
	return Cell{
		X: int(math.Floor(p.X / tileSize)),
		Y: int(math.Floor(p.Y / tileSize)),
	}
}
