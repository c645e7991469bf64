// pkg/grid/route.go
package grid

import (
	"errors"
	"fmt"
	"strings"

	"go-grid-defense/pkg/geom"
)

// ErrInvalidRoute is returned for empty routes and routes whose consecutive
// cells are not 4-adjacent.
var ErrInvalidRoute = errors.New("invalid route")

// Route is an immutable sequence of 4-adjacent cells from a start cell to a
// goal cell inclusive. The zero value is an empty, invalid route.
//
// A Route can be shared between any number of followers: nothing hands out
// its backing slice.
type Route struct {
	cells []geom.Cell
}

// NewRoute validates and copies cells into a Route.
func NewRoute(cells ...geom.Cell) (Route, error) {
	if len(cells) == 0 {
		return Route{}, fmt.Errorf("grid: empty route: %w", ErrInvalidRoute)
	}
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Adjacent(cells[i]) {
			return Route{}, fmt.Errorf("grid: cells %v and %v are not adjacent: %w", cells[i-1], cells[i], ErrInvalidRoute)
		}
	}
	out := make([]geom.Cell, len(cells))
	copy(out, cells)
	return Route{cells: out}, nil
}

// MustRoute is NewRoute for literal cell lists known to be valid; it
// panics on error.
func MustRoute(cells ...geom.Cell) Route {
	r, err := NewRoute(cells...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of cells in the route.
func (r Route) Len() int { return len(r.cells) }

// Empty reports whether the route has no cells.
func (r Route) Empty() bool { return len(r.cells) == 0 }

// At returns the i-th cell. It panics when i is out of range.
func (r Route) At(i int) geom.Cell { return r.cells[i] }

// First returns the start cell.
func (r Route) First() geom.Cell { return r.cells[0] }

// Last returns the goal cell.
func (r Route) Last() geom.Cell { return r.cells[len(r.cells)-1] }

// Cells returns a copy of the route's cells.
func (r Route) Cells() []geom.Cell {
	out := make([]geom.Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// Index returns the position of c in the route, or -1.
func (r Route) Index(c geom.Cell) int {
	for i, rc := range r.cells {
		if rc == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is on the route.
func (r Route) Contains(c geom.Cell) bool {
	return r.Index(c) >= 0
}

// Equal reports whether both routes visit the same cells in the same order.
func (r Route) Equal(o Route) bool {
	if len(r.cells) != len(o.cells) {
		return false
	}
	for i := range r.cells {
		if r.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Free reports whether every cell of the route is free in occ.
func (r Route) Free(occ Occupancy) bool {
	for _, c := range r.cells {
		if !inBounds(occ, c) || occ.Blocked(c) {
			return false
		}
	}
	return true
}

func (r Route) String() string {
	parts := make([]string, len(r.cells))
	for i, c := range r.cells {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
