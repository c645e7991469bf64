package follower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

const tile = 40.0

func straightRoute(n int) grid.Route {
	cells := make([]geom.Cell, n)
	for i := range cells {
		cells[i] = geom.Cell{X: i, Y: 0}
	}
	return grid.MustRoute(cells...)
}

func TestNewValidation(t *testing.T) {
	_, err := New(grid.Route{}, 1, tile)
	assert.ErrorIs(t, err, grid.ErrInvalidRoute)

	_, err = New(straightRoute(2), 0, tile)
	assert.ErrorIs(t, err, ErrInvalidSpeed)

	_, err = New(straightRoute(2), 1, -1)
	assert.ErrorIs(t, err, ErrInvalidTileSize)
}

func TestNewInitialState(t *testing.T) {
	f, err := New(straightRoute(3), 2, tile)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{X: 20, Y: 20}, f.Position())
	assert.Equal(t, geom.Vec2{X: 60, Y: 20}, f.Target())
	assert.Equal(t, 0, f.SegmentIndex())
	assert.Equal(t, Traveling, f.State())
	assert.InDelta(t, 80.0, f.RemainingDistance(), 1e-9)
}

func TestSingleCellRouteIsFinished(t *testing.T) {
	f, err := New(straightRoute(1), 2, tile)
	require.NoError(t, err)
	assert.True(t, f.Finished())
	assert.Equal(t, 1.0, f.Progress())

	before := f.Position()
	f.Tick()
	assert.Equal(t, before, f.Position(), "finished followers do not move")
}

func TestArrivesAfterExactTicks(t *testing.T) {
	f, err := New(straightRoute(2), 2, tile)
	require.NoError(t, err)

	for i := 0; i < 19; i++ {
		f.Tick()
		require.False(t, f.Finished(), "finished early at tick %d", i+1)
	}
	f.Tick()
	assert.True(t, f.Finished())
	assert.InDelta(t, 60.0, f.Position().X, 1e-9)
	assert.InDelta(t, 20.0, f.Position().Y, 1e-9)
	assert.Equal(t, 1, f.SegmentIndex())
	assert.Equal(t, 0.0, f.RemainingDistance())
}

func TestDistanceToTargetStrictlyDecreases(t *testing.T) {
	route := grid.MustRoute(
		geom.Cell{0, 0}, geom.Cell{1, 0}, geom.Cell{1, 1}, geom.Cell{1, 2}, geom.Cell{0, 2},
	)
	f, err := New(route, 3, tile)
	require.NoError(t, err)

	for ticks := 0; !f.Finished(); ticks++ {
		require.Less(t, ticks, 1000, "follower never finished")
		seg := f.SegmentIndex()
		before := f.Position().Dist(f.Target())
		f.Tick()
		if f.SegmentIndex() == seg {
			require.Less(t, f.Position().Dist(f.Target()), before)
		}
	}
	assert.Equal(t, route.Len()-1, f.SegmentIndex())
	assert.Less(t, f.Position().Dist(f.Target()), f.Speed())
}

func TestHighSpeedVisitsEveryWaypoint(t *testing.T) {
	route := grid.MustRoute(
		geom.Cell{0, 0}, geom.Cell{1, 0}, geom.Cell{1, 1}, geom.Cell{2, 1},
	)
	f, err := New(route, 3*tile, tile)
	require.NoError(t, err)

	var visited []geom.Vec2
	for !f.Finished() {
		f.Tick()
		visited = append(visited, f.Position())
	}
	want := []geom.Vec2{
		geom.CellToWorld(route.At(1), tile),
		geom.CellToWorld(route.At(2), tile),
		geom.CellToWorld(route.At(3), tile),
	}
	assert.Equal(t, want, visited, "one waypoint per tick, none skipped")
}

func TestRerouteKeepsPosition(t *testing.T) {
	f, err := New(straightRoute(2), 2, tile)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		f.Tick()
	}
	require.Equal(t, geom.Vec2{X: 40, Y: 20}, f.Position())
	require.Equal(t, geom.Vec2{X: 60, Y: 20}, f.Target())

	// (0,0) and (1,0) are equally close to (40,20); the first one wins.
	newRoute := grid.MustRoute(
		geom.Cell{0, 2}, geom.Cell{0, 1}, geom.Cell{0, 0}, geom.Cell{1, 0},
	)
	require.NoError(t, f.Reroute(newRoute))

	assert.Equal(t, geom.Vec2{X: 40, Y: 20}, f.Position())
	assert.Equal(t, 2, f.SegmentIndex())
	assert.Equal(t, geom.CellToWorld(newRoute.At(3), tile), f.Target())
	assert.Equal(t, Traveling, f.State())
	assert.True(t, f.Route().Equal(newRoute))
}

func TestRerouteToGoalFinishes(t *testing.T) {
	f, err := New(straightRoute(3), 2, tile)
	require.NoError(t, err)

	require.NoError(t, f.Reroute(grid.MustRoute(geom.Cell{0, 1}, geom.Cell{0, 0})))
	assert.True(t, f.Finished())
	assert.Equal(t, 1, f.SegmentIndex())
	assert.Equal(t, geom.Vec2{X: 20, Y: 20}, f.Position())
}

func TestRerouteRevivesFinishedFollower(t *testing.T) {
	f, err := New(straightRoute(1), 2, tile)
	require.NoError(t, err)
	require.True(t, f.Finished())

	require.NoError(t, f.Reroute(straightRoute(3)))
	assert.Equal(t, Traveling, f.State())
	assert.Equal(t, 0, f.SegmentIndex())
	assert.Equal(t, geom.Vec2{X: 60, Y: 20}, f.Target())
}

func TestRerouteRejectsEmptyRoute(t *testing.T) {
	f, err := New(straightRoute(3), 2, tile)
	require.NoError(t, err)
	f.Tick()
	pos, target, seg := f.Position(), f.Target(), f.SegmentIndex()

	err = f.Reroute(grid.Route{})
	assert.ErrorIs(t, err, grid.ErrInvalidRoute)
	assert.Equal(t, pos, f.Position())
	assert.Equal(t, target, f.Target())
	assert.Equal(t, seg, f.SegmentIndex())
	assert.Equal(t, 3, f.Route().Len())
}

func TestRerouteNeverMovesPosition(t *testing.T) {
	routes := []grid.Route{
		straightRoute(5),
		grid.MustRoute(geom.Cell{4, 4}, geom.Cell{4, 3}, geom.Cell{4, 2}),
		grid.MustRoute(geom.Cell{2, 0}),
		grid.MustRoute(geom.Cell{0, 1}, geom.Cell{1, 1}, geom.Cell{2, 1}, geom.Cell{3, 1}),
	}
	f, err := New(straightRoute(5), 1.5, tile)
	require.NoError(t, err)
	for i, r := range routes {
		for j := 0; j < 7; j++ {
			f.Tick()
		}
		before := f.Position()
		require.NoError(t, f.Reroute(r))
		require.Equal(t, before, f.Position(), "reroute %d moved the follower", i)
	}
}

func TestProgressAndCell(t *testing.T) {
	f, err := New(straightRoute(3), 10, tile)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Progress())
	assert.Equal(t, geom.Cell{0, 0}, f.Cell())

	for f.SegmentIndex() == 0 {
		f.Tick()
	}
	assert.Equal(t, 0.5, f.Progress())
	assert.Equal(t, geom.Cell{1, 0}, f.Cell())
}
