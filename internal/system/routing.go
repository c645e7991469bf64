// internal/system/routing.go
package system

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

// RoutingSystem keeps the shared entry->exit route in step with the
// obstacle map and hands new routes to every live enemy.
type RoutingSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	obstacles       *grid.Grid
	entry, exit     geom.Cell
	workers         int
	route           grid.Route
}

func NewRoutingSystem(ecs *entity.ECS, obstacles *grid.Grid, entry, exit geom.Cell, workers int, eventDispatcher *event.Dispatcher) *RoutingSystem {
	if workers < 1 {
		workers = 1
	}
	s := &RoutingSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		obstacles:       obstacles,
		entry:           entry,
		exit:            exit,
		workers:         workers,
	}
	eventDispatcher.Subscribe(event.BlockerPlaced, s)
	eventDispatcher.Subscribe(event.BlockerRemoved, s)
	eventDispatcher.Subscribe(event.LevelReloaded, s)
	return s
}

// Route returns the current shared route. It is empty until the first
// successful Recompute.
func (s *RoutingSystem) Route() grid.Route {
	return s.route
}

// Reset points the system at a new obstacle map and endpoints, e.g. after
// a level reload. Call Recompute afterwards.
func (s *RoutingSystem) Reset(obstacles *grid.Grid, entry, exit geom.Cell) {
	s.obstacles = obstacles
	s.entry = entry
	s.exit = exit
}

func (s *RoutingSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.BlockerPlaced, event.BlockerRemoved, event.LevelReloaded:
		if err := s.Recompute(context.Background()); err != nil && !errors.Is(err, grid.ErrRouteNotFound) {
			log.Printf("routing: recompute after %s: %v", e.Type, err)
		}
	}
}

// Recompute searches the shared route on a snapshot of the obstacle map and
// reroutes every live enemy. When the exit is unreachable the previous
// route is kept, RouteBlocked is dispatched and grid.ErrRouteNotFound
// returned.
func (s *RoutingSystem) Recompute(ctx context.Context) error {
	snapshot := s.obstacles.Clone()
	route, err := grid.FindRoute(s.entry, s.exit, snapshot)
	if err != nil {
		log.Printf("routing: no route from %v to %v, keeping %d-cell route", s.entry, s.exit, s.route.Len())
		s.eventDispatcher.Dispatch(event.Event{Type: event.RouteBlocked})
		return err
	}
	s.route = route

	if err := s.rerouteEnemies(ctx, snapshot); err != nil {
		return err
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.RouteChanged, Data: route})
	return nil
}

// rerouteEnemies gives the shared route to enemies standing on it. Enemies
// elsewhere get a route searched from their own cell; those searches run
// concurrently on the shared read-only snapshot.
func (s *RoutingSystem) rerouteEnemies(ctx context.Context, snapshot *grid.Grid) error {
	var (
		ids     []types.EntityID
		starts  []geom.Cell
		seen    = make(map[geom.Cell]int)
		startOf = make(map[types.EntityID]int)
	)
	for _, id := range s.ecs.EnemyIDs() {
		enemy := s.ecs.Enemies[id]
		path, ok := s.ecs.Paths[id]
		if !ok || path.Follower == nil || enemy.Dead || enemy.ReachedEnd {
			continue
		}
		ids = append(ids, id)
		cell := path.Follower.Cell()
		if s.route.Contains(cell) {
			continue
		}
		i, dup := seen[cell]
		if !dup {
			i = len(starts)
			seen[cell] = i
			starts = append(starts, cell)
		}
		startOf[id] = i
	}

	personal := make([]grid.Route, len(starts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, start := range starts {
		i, start := i, start
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := grid.FindRoute(start, s.exit, snapshot)
			if errors.Is(err, grid.ErrRouteNotFound) {
				return nil
			}
			personal[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, id := range ids {
		route := s.route
		if i, ok := startOf[id]; ok && !personal[i].Empty() {
			route = personal[i]
		}
		if err := s.ecs.Paths[id].Follower.Reroute(route); err != nil {
			log.Printf("routing: enemy %d: %v", id, err)
		}
	}
	return nil
}
