// internal/component/blocker.go
package component

import "go-grid-defense/pkg/geom"

// Blocker is a player-placed obstacle occupying one grid cell.
type Blocker struct {
	Cell     geom.Cell
	PlacedAt uint64 // simulation tick of placement
}
