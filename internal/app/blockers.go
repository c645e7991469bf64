// internal/app/blockers.go
package app

import (
	"fmt"
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

// PlaceBlocker puts a blocker on cell. Placement is refused when it would
// leave the entry or any live enemy without a route to the exit.
func (g *Game) PlaceBlocker(cell geom.Cell) error {
	if err := g.canPlaceBlocker(cell); err != nil {
		return fmt.Errorf("place blocker at %v: %w", cell, err)
	}

	id := g.ECS.NewEntity()
	g.ECS.Blockers[id] = &component.Blocker{Cell: cell, PlacedAt: g.ECS.Tick}
	g.Obstacles.Set(cell)
	if g.ECS.GameState.Phase == component.BuildState {
		g.ECS.GameState.BlockersPlaced++
	}
	g.EventDispatcher.Dispatch(event.Event{Type: event.BlockerPlaced, Data: cell})
	return nil
}

// RemoveBlocker clears the blocker on cell.
func (g *Game) RemoveBlocker(cell geom.Cell) error {
	if g.ECS.GameState.Phase == component.GameOver {
		return fmt.Errorf("remove blocker at %v: %w", cell, ErrGameOver)
	}
	id, ok := g.blockerAt(cell)
	if !ok {
		return fmt.Errorf("remove blocker at %v: %w", cell, ErrNoBlocker)
	}
	g.ECS.RemoveEntity(id)
	g.Obstacles.Clear(cell)
	if g.ECS.GameState.Phase == component.BuildState && g.ECS.GameState.BlockersPlaced > 0 {
		g.ECS.GameState.BlockersPlaced--
	}
	g.EventDispatcher.Dispatch(event.Event{Type: event.BlockerRemoved, Data: cell})
	return nil
}

// ToggleBlocker removes the blocker on cell if there is one and places one
// otherwise.
func (g *Game) ToggleBlocker(cell geom.Cell) error {
	if _, ok := g.blockerAt(cell); ok {
		return g.RemoveBlocker(cell)
	}
	return g.PlaceBlocker(cell)
}

// HasBlocker reports whether a player blocker occupies cell.
func (g *Game) HasBlocker(cell geom.Cell) bool {
	_, ok := g.blockerAt(cell)
	return ok
}

// BlockerCells returns the cells of all blockers in placement order.
func (g *Game) BlockerCells() []geom.Cell {
	ids := g.blockerIDs()
	cells := make([]geom.Cell, len(ids))
	for i, id := range ids {
		cells[i] = g.ECS.Blockers[id].Cell
	}
	return cells
}

// BlockersLeft is the number of blockers that may still be placed in this
// build phase, or -1 when there is no limit.
func (g *Game) BlockersLeft() int {
	limit := g.Settings.MaxBlockersPerBuild
	if limit <= 0 {
		return -1
	}
	if left := limit - g.ECS.GameState.BlockersPlaced; left > 0 {
		return left
	}
	return 0
}

func (g *Game) canPlaceBlocker(cell geom.Cell) error {
	switch {
	case g.ECS.GameState.Phase == component.GameOver:
		return ErrGameOver
	case !g.Obstacles.InBounds(cell):
		return ErrOutOfBounds
	case g.Level.Reserved(cell):
		return ErrCellReserved
	case g.Obstacles.Blocked(cell):
		return ErrCellOccupied
	case g.enemyOn(cell):
		return ErrCellHasEnemy
	case g.ECS.GameState.Phase == component.BuildState && g.BlockersLeft() == 0:
		return ErrBlockerLimit
	}
	if g.isPathBlockedBy(cell) {
		return ErrPlacementBlocksRoute
	}
	return nil
}

// isPathBlockedBy probes a copy of the obstacle map with cell blocked.
func (g *Game) isPathBlockedBy(cell geom.Cell) bool {
	probe := g.Obstacles.Clone()
	probe.Set(cell)

	if _, err := grid.FindRoute(g.Level.Entry, g.Level.Exit, probe); err != nil {
		return true
	}
	checked := map[geom.Cell]bool{}
	for _, id := range g.ECS.EnemyIDs() {
		path, ok := g.ECS.Paths[id]
		if !ok || path.Follower == nil || path.Follower.Finished() {
			continue
		}
		from := path.Follower.Cell()
		if checked[from] {
			continue
		}
		checked[from] = true
		if _, err := grid.FindRoute(from, g.Level.Exit, probe); err != nil {
			return true
		}
	}
	return false
}

func (g *Game) enemyOn(cell geom.Cell) bool {
	for id, enemy := range g.ECS.Enemies {
		if enemy.Dead || enemy.ReachedEnd {
			continue
		}
		if pos, ok := g.ECS.Positions[id]; ok && geom.WorldToCell(pos.Vec(), g.tileSize) == cell {
			return true
		}
	}
	return false
}

func (g *Game) blockerAt(cell geom.Cell) (types.EntityID, bool) {
	for id, b := range g.ECS.Blockers {
		if b.Cell == cell {
			return id, true
		}
	}
	return 0, false
}

func (g *Game) blockerIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(g.ECS.Blockers))
	for id := range g.ECS.Blockers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// maxBlockers returns how many blockers AutoBuild should try to place.
func (g *Game) maxBlockers() int {
	if left := g.BlockersLeft(); left >= 0 {
		return left
	}
	return config.MaxBlockersPerBuild
}
