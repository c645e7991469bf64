package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/follower"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

const tile = 10.0

func addEnemy(t *testing.T, ecs *entity.ECS, route grid.Route, speed float64) types.EntityID {
	t.Helper()
	f, err := follower.New(route, speed, tile)
	require.NoError(t, err)
	id := ecs.NewEntity()
	pos := f.Position()
	ecs.Positions[id] = &component.Position{X: pos.X, Y: pos.Y}
	ecs.Paths[id] = &component.Path{Follower: f}
	ecs.Enemies[id] = &component.Enemy{DefID: "TEST", Level: 1}
	return id
}

func TestRoutingSystemRecompute(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	obstacles := grid.New(5, 3)
	rs := NewRoutingSystem(ecs, obstacles, geom.Cell{X: 0, Y: 1}, geom.Cell{X: 4, Y: 1}, 2, d)
	assert.True(t, rs.Route().Empty())

	var changes []grid.Route
	d.Subscribe(event.RouteChanged, event.ListenerFunc(func(e event.Event) {
		r, _ := event.RouteOf(e)
		changes = append(changes, r)
	}))

	require.NoError(t, rs.Recompute(context.Background()))
	assert.Equal(t, 5, rs.Route().Len())

	obstacles.Set(geom.Cell{X: 2, Y: 1})
	d.Dispatch(event.Event{Type: event.BlockerPlaced, Data: geom.Cell{X: 2, Y: 1}})
	require.Len(t, changes, 2)
	assert.Equal(t, 7, rs.Route().Len())
	assert.True(t, changes[1].Equal(rs.Route()))
}

func TestRoutingSystemKeepsStaleRouteWhenBlocked(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	obstacles := grid.New(3, 1)
	rs := NewRoutingSystem(ecs, obstacles, geom.Cell{X: 0, Y: 0}, geom.Cell{X: 2, Y: 0}, 1, d)
	require.NoError(t, rs.Recompute(context.Background()))
	before := rs.Route()

	blocked := 0
	d.Subscribe(event.RouteBlocked, event.ListenerFunc(func(event.Event) { blocked++ }))

	obstacles.Set(geom.Cell{X: 1, Y: 0})
	err := rs.Recompute(context.Background())
	assert.ErrorIs(t, err, grid.ErrRouteNotFound)
	assert.Equal(t, 1, blocked)
	assert.True(t, before.Equal(rs.Route()))
}

func TestRoutingSystemReroutesEnemies(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	obstacles := grid.New(5, 5)
	entry, exit := geom.Cell{X: 0, Y: 2}, geom.Cell{X: 4, Y: 2}
	rs := NewRoutingSystem(ecs, obstacles, entry, exit, 4, d)
	require.NoError(t, rs.Recompute(context.Background()))

	// One enemy on the shared route, one off it in the top row.
	onRoute := addEnemy(t, ecs, rs.Route(), 1)
	offRoute := addEnemy(t, ecs, grid.MustRoute(
		geom.Cell{X: 1, Y: 0}, geom.Cell{X: 2, Y: 0}, geom.Cell{X: 3, Y: 0},
		geom.Cell{X: 4, Y: 0}, geom.Cell{X: 4, Y: 1}, geom.Cell{X: 4, Y: 2},
	), 1)
	offPos := ecs.Paths[offRoute].Follower.Position()

	obstacles.Set(geom.Cell{X: 3, Y: 0})
	obstacles.Set(geom.Cell{X: 2, Y: 2})
	require.NoError(t, rs.Recompute(context.Background()))

	shared := ecs.Paths[onRoute].Follower.Route()
	assert.True(t, shared.Equal(rs.Route()))

	personal := ecs.Paths[offRoute].Follower.Route()
	assert.Equal(t, geom.Cell{X: 1, Y: 0}, personal.First())
	assert.Equal(t, exit, personal.Last())
	assert.True(t, personal.Free(obstacles))
	assert.Equal(t, offPos, ecs.Paths[offRoute].Follower.Position())
}

func TestMovementSystemMirrorsPositionAndFinishes(t *testing.T) {
	ecs := entity.NewECS()
	route := grid.MustRoute(geom.Cell{X: 0, Y: 0}, geom.Cell{X: 1, Y: 0})
	id := addEnemy(t, ecs, route, 4)
	ms := NewMovementSystem(ecs)

	ms.Update()
	assert.Equal(t, 9.0, ecs.Positions[id].X)
	assert.False(t, ecs.Enemies[id].ReachedEnd)

	// Within one step of the goal counts as arrived.
	ms.Update()
	assert.True(t, ecs.Enemies[id].ReachedEnd)
	assert.Equal(t, 13.0, ecs.Positions[id].X)

	ms.Update()
	assert.Equal(t, 13.0, ecs.Positions[id].X, "finished enemies stay put")
	assert.Equal(t, 5.0, ecs.Positions[id].Y)
}

type fixedRoute grid.Route

func (r fixedRoute) Route() grid.Route { return grid.Route(r) }

func testLibrary() *defs.Library {
	return &defs.Library{
		Enemies: map[string]defs.EnemyDefinition{
			"RUNNER": {ID: "RUNNER", BaseSpeed: 1, SpeedPerLevel: 1, SpeedFactor: 1, BaseHealth: 5, HealthGrowth: 2, HealthFactor: 1, BaseReward: 1, RewardFactor: 1, Radius: 6},
		},
		Waves: []defs.WaveDefinition{
			{EnemyID: "RUNNER", Count: 3, SpawnIntervalTicks: 2},
			{EnemyID: "RUNNER", Count: 1},
		},
	}
}

func TestWaveSystemSpawnsOnInterval(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	route := grid.MustRoute(geom.Cell{X: 0, Y: 0}, geom.Cell{X: 1, Y: 0}, geom.Cell{X: 2, Y: 0})
	ws := NewWaveSystem(ecs, testLibrary(), fixedRoute(route), tile, 7, d)

	var spawned []types.EntityID
	ended := 0
	d.Subscribe(event.EnemySpawned, event.ListenerFunc(func(e event.Event) {
		id, _ := event.EntityOf(e)
		spawned = append(spawned, id)
	}))
	d.Subscribe(event.WaveEnded, event.ListenerFunc(func(event.Event) { ended++ }))

	wave := ws.StartWave(1)
	require.NotNil(t, wave)
	assert.Equal(t, 3, wave.EnemiesToSpawn)

	ws.Update(wave)
	require.Len(t, spawned, 1)
	ws.Update(wave)
	assert.Len(t, spawned, 1)
	ws.Update(wave)
	assert.Len(t, spawned, 2)
	ws.Update(wave)
	ws.Update(wave)
	assert.Len(t, spawned, 3)
	assert.Equal(t, 3, ws.ActiveEnemies())

	id := spawned[0]
	assert.Equal(t, 2.0, ecs.Paths[id].Follower.Speed())
	assert.Equal(t, 5.0, ecs.Healths[id].Max)
	assert.Equal(t, 2, ecs.Enemies[id].Reward)
	assert.Equal(t, geom.Vec2{X: 5, Y: 5}, ecs.Positions[id].Vec())

	ws.Update(wave)
	assert.Zero(t, ended, "enemies are still alive")
	for _, id := range spawned {
		d.Dispatch(event.Event{Type: event.EnemyReachedGoal, Data: id})
	}
	ws.Update(wave)
	ws.Update(wave)
	assert.Equal(t, 1, ended, "WaveEnded is dispatched once")
}

func TestWaveSystemDefaultsAndFailures(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	route := grid.MustRoute(geom.Cell{X: 0, Y: 0})
	ws := NewWaveSystem(ecs, testLibrary(), fixedRoute(route), tile, 7, d)

	wave := ws.StartWave(2)
	require.NotNil(t, wave)
	assert.Equal(t, 7, wave.SpawnInterval, "unset interval comes from settings")
	assert.Equal(t, 2, wave.Level)

	empty := NewWaveSystem(ecs, testLibrary(), fixedRoute(grid.Route{}), tile, 7, d)
	assert.Nil(t, empty.StartWave(1))

	none := NewWaveSystem(ecs, &defs.Library{}, fixedRoute(route), tile, 7, d)
	assert.Nil(t, none.StartWave(1))
}

type fakeContext struct {
	started, cleared int
	allow            bool
}

func (f *fakeContext) ClearEnemies()   { f.cleared++ }
func (f *fakeContext) StartWave() bool { f.started++; return f.allow }

func TestStateSystemTransitions(t *testing.T) {
	ecs := entity.NewECS()
	d := event.NewDispatcher()
	ctx := &fakeContext{}
	ss := NewStateSystem(ecs, ctx, d)

	assert.False(t, ss.SwitchToWaveState())
	assert.Equal(t, component.BuildState, ss.Current())

	ctx.allow = true
	assert.True(t, ss.SwitchToWaveState())
	assert.Equal(t, component.WaveState, ss.Current())
	ecs.GameState.BlockersPlaced = 3

	d.Dispatch(event.Event{Type: event.WaveEnded})
	assert.Equal(t, component.BuildState, ss.Current())
	assert.Zero(t, ecs.GameState.BlockersPlaced)
	assert.Equal(t, 1, ctx.cleared)

	d.Dispatch(event.Event{Type: event.GameOver})
	assert.Equal(t, component.GameOver, ss.Current())
	d.Dispatch(event.Event{Type: event.WaveEnded})
	assert.Equal(t, component.GameOver, ss.Current())
	assert.False(t, ss.SwitchToWaveState())
}
