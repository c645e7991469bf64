// internal/app/auto_build.go
package app

import (
	"errors"
	"log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/geom"
)

// AutoBuild places up to n random blockers for headless runs. Candidate
// cells are the free cells in a random order; cells rejected by the
// placement rules are skipped. It returns the cells actually blocked.
func (g *Game) AutoBuild(prng *utils.PRNGService, n int) []geom.Cell {
	if n <= 0 || g.ECS.GameState.Phase != component.BuildState {
		return nil
	}
	if limit := g.maxBlockers(); n > limit {
		n = limit
	}

	var candidates []geom.Cell
	for y := 0; y < g.Obstacles.Height(); y++ {
		for x := 0; x < g.Obstacles.Width(); x++ {
			c := geom.Cell{X: x, Y: y}
			if !g.Obstacles.Blocked(c) && !g.Level.Reserved(c) {
				candidates = append(candidates, c)
			}
		}
	}
	prng.ShuffleCells(candidates)

	placed := make([]geom.Cell, 0, n)
	for _, c := range candidates {
		if len(placed) == n {
			break
		}
		err := g.PlaceBlocker(c)
		switch {
		case err == nil:
			placed = append(placed, c)
		case errors.Is(err, ErrBlockerLimit):
			return placed
		case !errors.Is(err, ErrPlacementBlocksRoute):
			log.Printf("auto build: %v", err)
		}
	}
	return placed
}
