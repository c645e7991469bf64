package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-grid-defense/pkg/geom"
)

func requireValidRoute(t *testing.T, r Route, start, goal geom.Cell, occ Occupancy) {
	t.Helper()
	require.False(t, r.Empty(), "route is empty")
	require.Equal(t, start, r.First())
	require.Equal(t, goal, r.Last())
	for i := 1; i < r.Len(); i++ {
		require.Truef(t, r.At(i-1).Adjacent(r.At(i)), "cells %v and %v not adjacent", r.At(i-1), r.At(i))
	}
	for i := 1; i < r.Len(); i++ {
		require.Falsef(t, occ.Blocked(r.At(i)), "route enters blocked cell %v", r.At(i))
	}
}

func TestFindRouteStraightLine(t *testing.T) {
	g := New(5, 5)
	r, err := FindRoute(geom.Cell{0, 0}, geom.Cell{4, 0}, g)
	require.NoError(t, err)
	want := []geom.Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	assert.Equal(t, want, r.Cells())
	assert.Equal(t, 5, r.Len())
}

func TestFindRouteWallSplitsGrid(t *testing.T) {
	g, err := FromRows([][]int{
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 0},
	})
	require.NoError(t, err)
	_, err = FindRoute(geom.Cell{0, 0}, geom.Cell{2, 0}, g)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestFindRouteStartEqualsGoal(t *testing.T) {
	g := New(3, 3)
	r, err := FindRoute(geom.Cell{1, 1}, geom.Cell{1, 1}, g)
	require.NoError(t, err)
	assert.Equal(t, []geom.Cell{{1, 1}}, r.Cells())
}

func TestFindRouteOutOfBoundsGoal(t *testing.T) {
	g := New(3, 3)
	_, err := FindRoute(geom.Cell{0, 0}, geom.Cell{5, 0}, g)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestFindRouteBlockedGoal(t *testing.T) {
	g := New(4, 4)
	g.Set(geom.Cell{3, 3})
	_, err := FindRoute(geom.Cell{0, 0}, geom.Cell{3, 3}, g)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestFindRouteBlockedStartStillExpands(t *testing.T) {
	g := New(3, 1)
	g.Set(geom.Cell{0, 0})
	r, err := FindRoute(geom.Cell{0, 0}, geom.Cell{2, 0}, g)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
}

func TestFindRouteEnclosedGoal(t *testing.T) {
	g, err := FromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 0, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	_, err = FindRoute(geom.Cell{0, 0}, geom.Cell{2, 2}, g)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestFindRouteDetour(t *testing.T) {
	// A wall with a single gap at the bottom forces a detour.
	g, err := FromRows([][]int{
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	start, goal := geom.Cell{0, 0}, geom.Cell{4, 0}
	r, err := FindRoute(start, goal, g)
	require.NoError(t, err)
	requireValidRoute(t, r, start, goal, g)
	// Down 3, right 4, up 3.
	assert.Equal(t, 11, r.Len())
	assert.True(t, r.Contains(geom.Cell{2, 3}))
}

func TestFindRouteOpenGridLengthIsManhattan(t *testing.T) {
	g := New(9, 7)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		start := geom.Cell{X: rng.Intn(9), Y: rng.Intn(7)}
		goal := geom.Cell{X: rng.Intn(9), Y: rng.Intn(7)}
		r, err := FindRoute(start, goal, g)
		require.NoError(t, err)
		requireValidRoute(t, r, start, goal, g)
		require.Equal(t, 1+start.Manhattan(goal), r.Len())
	}
}

// bfsLen returns the shortest route length by breadth-first search, or 0.
func bfsLen(start, goal geom.Cell, g *Grid) int {
	dist := map[geom.Cell]int{start: 1}
	queue := []geom.Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == goal {
			return dist[c]
		}
		for _, n := range c.Neighbors4() {
			if g.Blocked(n) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return 0
}

func TestFindRouteRandomObstaclesOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		g := New(12, 10)
		for i := 0; i < 40; i++ {
			g.Set(geom.Cell{X: rng.Intn(12), Y: rng.Intn(10)})
		}
		start, goal := geom.Cell{0, 0}, geom.Cell{11, 9}
		g.Clear(start)
		g.Clear(goal)

		want := bfsLen(start, goal, g)
		r, err := FindRoute(start, goal, g)
		if want == 0 {
			require.ErrorIs(t, err, ErrRouteNotFound, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		requireValidRoute(t, r, start, goal, g)
		require.Equal(t, want, r.Len(), "trial %d:\n%s", trial, g)
	}
}

func TestFindRouteDeterministic(t *testing.T) {
	g := New(8, 8)
	g.Set(geom.Cell{3, 3})
	g.Set(geom.Cell{4, 4})
	start, goal := geom.Cell{0, 0}, geom.Cell{7, 7}

	first, err := FindRoute(start, goal, g)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := FindRoute(start, goal, g.Clone())
		require.NoError(t, err)
		require.True(t, first.Equal(again), "got %v then %v", first, again)
	}
}

func TestFindRouteDoesNotMutateGrid(t *testing.T) {
	g := New(6, 6)
	g.Set(geom.Cell{2, 1})
	before := g.String()
	_, err := FindRoute(geom.Cell{0, 0}, geom.Cell{5, 5}, g)
	require.NoError(t, err)
	assert.Equal(t, before, g.String())
}

func BenchmarkFindRoute(b *testing.B) {
	g := New(64, 64)
	for y := 2; y < 64; y += 4 {
		for x := 0; x < 60; x++ {
			g.Set(geom.Cell{X: (x + y) % 64, Y: y})
		}
	}
	start, goal := geom.Cell{0, 0}, geom.Cell{63, 63}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FindRoute(start, goal, g)
	}
}
