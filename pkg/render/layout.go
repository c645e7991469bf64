// pkg/render/layout.go
package render

import (
	"math"

	"go-grid-defense/pkg/geom"
)

// Layout maps grid cells to screen pixels. The map's top-left corner sits
// at (OffsetX, OffsetY).
type Layout struct {
	OffsetX, OffsetY float64
	TileSize         float64
}

// ScreenToCell returns the cell under a screen pixel. The result may lie
// outside the map.
func (l Layout) ScreenToCell(x, y int) geom.Cell {
	return geom.Cell{
		X: int(math.Floor((float64(x) - l.OffsetX) / l.TileSize)),
		Y: int(math.Floor((float64(y) - l.OffsetY) / l.TileSize)),
	}
}

// CellOrigin is the screen position of a cell's top-left corner.
func (l Layout) CellOrigin(c geom.Cell) (float32, float32) {
	return float32(l.OffsetX + float64(c.X)*l.TileSize), float32(l.OffsetY + float64(c.Y)*l.TileSize)
}

// CellCenter is the screen position of a cell's center.
func (l Layout) CellCenter(c geom.Cell) (float32, float32) {
	w := geom.CellToWorld(c, l.TileSize)
	return float32(l.OffsetX + w.X), float32(l.OffsetY + w.Y)
}
