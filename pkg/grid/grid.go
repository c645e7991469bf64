// pkg/grid/grid.go
package grid

import (
	"fmt"
	"strings"

	"go-grid-defense/pkg/geom"
)

// Occupancy is the read-only view of an obstacle map that FindRoute needs.
type Occupancy interface {
	Width() int
	Height() int
	// Blocked reports whether c is occupied. Cells outside the grid are
	// handled by the caller through bounds checks.
	Blocked(c geom.Cell) bool
}

// Grid is a width x height occupancy map stored row-major.
type Grid struct {
	width, height int
	cells         []uint8
}

// New returns a grid with every cell free.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

// FromRows builds a grid from rows of 0 (free) and non-zero (occupied)
// values, indexed rows[y][x]. All rows must have the same length.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", y, len(row), g.width)
		}
		for x, v := range row {
			if v != 0 {
				g.cells[y*g.width+x] = 1
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies inside [0,width) x [0,height).
func (g *Grid) InBounds(c geom.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

func (g *Grid) index(c geom.Cell) int {
	return c.Y*g.width + c.X
}

// Blocked reports whether c is occupied. Out-of-bounds cells count as blocked.
func (g *Grid) Blocked(c geom.Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[g.index(c)] != 0
}

// Set marks c as occupied. It returns false when c is out of bounds.
func (g *Grid) Set(c geom.Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.cells[g.index(c)] = 1
	return true
}

// Clear marks c as free. It returns false when c is out of bounds.
func (g *Grid) Clear(c geom.Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.cells[g.index(c)] = 0
	return true
}

// Toggle flips the occupancy of c and returns the new state.
func (g *Grid) Toggle(c geom.Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	g.cells[i] ^= 1
	return g.cells[i] != 0
}

// Clone returns an independent snapshot of g, safe to search while g keeps
// changing.
func (g *Grid) Clone() *Grid {
	cells := make([]uint8, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// FreeCount returns the number of free cells.
func (g *Grid) FreeCount() int {
	n := 0
	for _, v := range g.cells {
		if v == 0 {
			n++
		}
	}
	return n
}

// Rows returns the grid as rows of 0/1 values.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = make([]int, g.width)
		for x := range rows[y] {
			rows[y][x] = int(g.cells[y*g.width+x])
		}
	}
	return rows
}

// String renders the grid with '#' for occupied and '.' for free cells.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
