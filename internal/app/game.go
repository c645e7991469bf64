// internal/app/game.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/level"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

var (
	ErrOutOfBounds          = errors.New("cell is outside the map")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrCellReserved         = errors.New("cell is the entry or the exit")
	ErrCellHasEnemy         = errors.New("an enemy is standing on the cell")
	ErrPlacementBlocksRoute = errors.New("placement would cut enemies off from the exit")
	ErrNoBlocker            = errors.New("no blocker on cell")
	ErrBlockerLimit         = errors.New("blocker limit reached for this phase")
	ErrGameOver             = errors.New("game is over")
	ErrUnknownEntity        = errors.New("unknown entity")
	ErrTileSizeChanged      = errors.New("reloaded level changes the tile size")
)

// Game ties the level, the ECS and the systems together. It is driven by
// one Update call per frame from whichever front end owns the loop.
type Game struct {
	Level           *level.Level
	Settings        config.Settings
	Library         *defs.Library
	ECS             *entity.ECS
	Obstacles       *grid.Grid // walls plus blockers
	EventDispatcher *event.Dispatcher

	MovementSystem *system.MovementSystem
	RoutingSystem  *system.RoutingSystem
	WaveSystem     *system.WaveSystem
	StateSystem    *system.StateSystem

	Wave            int // number of the next wave
	Lives           int
	Kills           int
	Leaked          int
	SpeedMultiplier int

	tileSize float64
	isPaused bool
}

// NewGame builds a game on lvl. Blockers start empty and the game starts in
// the build phase.
func NewGame(lvl *level.Level, settings config.Settings, library *defs.Library) *Game {
	if lvl == nil {
		panic("level cannot be nil")
	}
	if library == nil {
		library = defs.MustBuiltin()
	}

	tileSize := lvl.TileSize
	if tileSize <= 0 {
		tileSize = settings.TileSize
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	obstacles := lvl.Walls.Clone()
	g := &Game{
		Level:           lvl,
		Settings:        settings,
		Library:         library,
		ECS:             ecs,
		Obstacles:       obstacles,
		EventDispatcher: eventDispatcher,
		MovementSystem:  system.NewMovementSystem(ecs),
		Wave:            1,
		Lives:           settings.Lives,
		SpeedMultiplier: 1,
		tileSize:        tileSize,
	}
	g.RoutingSystem = system.NewRoutingSystem(ecs, obstacles, lvl.Entry, lvl.Exit, settings.RouteWorkers, eventDispatcher)
	g.WaveSystem = system.NewWaveSystem(ecs, library, g.RoutingSystem, tileSize, settings.SpawnIntervalTicks, eventDispatcher)
	g.StateSystem = system.NewStateSystem(ecs, g, eventDispatcher)

	listener := &GameEventListener{game: g}
	eventDispatcher.Subscribe(event.EnemyReachedGoal, listener)
	eventDispatcher.Subscribe(event.EnemyKilled, listener)

	if err := g.RoutingSystem.Recompute(context.Background()); err != nil {
		// Level parsing already proved the route exists.
		panic(fmt.Sprintf("level %q has no route: %v", lvl.Name, err))
	}
	return g
}

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyReachedGoal:
		l.game.Leaked++
		if l.game.ECS.GameState.Phase == component.GameOver {
			return
		}
		l.game.Lives--
		if l.game.Lives <= 0 {
			l.game.Lives = 0
			log.Printf("Game over during wave %d", l.game.Wave-1)
			l.game.EventDispatcher.Dispatch(event.Event{Type: event.GameOver})
		}
	case event.EnemyKilled:
		l.game.Kills++
	}
}

// Update progresses the game by one frame: SpeedMultiplier simulation ticks.
func (g *Game) Update() {
	if g.isPaused {
		return
	}
	for i := 0; i < g.SpeedMultiplier; i++ {
		g.Step()
	}
}

// Step runs exactly one simulation tick regardless of pause and speed.
func (g *Game) Step() {
	g.ECS.Tick++
	if g.ECS.GameState.Phase != component.WaveState {
		return
	}
	g.WaveSystem.Update(g.ECS.Wave)
	if g.ECS.GameState.Phase != component.WaveState {
		return
	}
	g.MovementSystem.Update()
	g.cleanupDestroyedEntities()
}

// StartWave begins the next enemy wave. It implements interfaces.GameContext.
func (g *Game) StartWave() bool {
	wave := g.WaveSystem.StartWave(g.Wave)
	if wave == nil {
		return false
	}
	g.ECS.Wave = wave
	log.Printf("Wave %d: %d x %s (level %d)", wave.Number, wave.EnemiesToSpawn, wave.EnemyID, wave.Level)
	g.EventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: wave.Number})
	g.Wave++
	return true
}

// RequestWave switches from the build phase to the next wave.
func (g *Game) RequestWave() bool {
	return g.StateSystem.SwitchToWaveState()
}

// ClearEnemies removes every enemy without reward or penalty.
func (g *Game) ClearEnemies() {
	for id := range g.ECS.Enemies {
		g.ECS.RemoveEntity(id)
	}
}

func (g *Game) cleanupDestroyedEntities() {
	for _, id := range g.ECS.EnemyIDs() {
		enemy := g.ECS.Enemies[id]
		switch {
		case enemy.Dead:
			data := event.EnemyKilledData{ID: id, Reward: enemy.Reward}
			if pos, ok := g.ECS.Positions[id]; ok {
				data.Cell = geom.WorldToCell(pos.Vec(), g.tileSize)
			}
			g.ECS.RemoveEntity(id)
			g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: data})
		case enemy.ReachedEnd:
			g.ECS.RemoveEntity(id)
			g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyReachedGoal, Data: id})
		}
	}
}

// Damage is the hook for an external combat system. An enemy whose health
// drops to zero is removed on the next tick.
func (g *Game) Damage(id types.EntityID, amount float64) error {
	enemy, ok := g.ECS.Enemies[id]
	if !ok {
		return fmt.Errorf("damage %d: %w", id, ErrUnknownEntity)
	}
	health, ok := g.ECS.Healths[id]
	if !ok || enemy.Dead {
		return nil
	}
	health.Value -= amount
	if health.Value <= 0 {
		health.Value = 0
		enemy.Dead = true
	}
	return nil
}

// LeadingEnemy returns the live enemy with the least distance left to walk.
func (g *Game) LeadingEnemy() (types.EntityID, bool) {
	var (
		best   types.EntityID
		bestD  float64
		exists bool
	)
	for _, id := range g.ECS.EnemyIDs() {
		path, ok := g.ECS.Paths[id]
		if !ok || path.Follower == nil || g.ECS.Enemies[id].Dead {
			continue
		}
		d := path.Follower.RemainingDistance()
		if !exists || d < bestD {
			best, bestD, exists = id, d, true
		}
	}
	return best, exists
}

// ReplaceLevel swaps in a reloaded level. Blockers that still fit are kept,
// the rest are dropped, and every enemy is rerouted in place.
func (g *Game) ReplaceLevel(lvl *level.Level) error {
	tileSize := lvl.TileSize
	if tileSize <= 0 {
		tileSize = g.Settings.TileSize
	}
	if tileSize != g.tileSize {
		return fmt.Errorf("reload %q: %v -> %v: %w", lvl.Name, g.tileSize, tileSize, ErrTileSizeChanged)
	}

	obstacles := lvl.Walls.Clone()
	kept, dropped := 0, 0
	for _, id := range g.blockerIDs() {
		b := g.ECS.Blockers[id]
		if lvl.Reserved(b.Cell) || obstacles.Blocked(b.Cell) {
			g.ECS.RemoveEntity(id)
			dropped++
			continue
		}
		obstacles.Set(b.Cell)
		if _, err := grid.FindRoute(lvl.Entry, lvl.Exit, obstacles); err != nil {
			obstacles.Clear(b.Cell)
			g.ECS.RemoveEntity(id)
			dropped++
			continue
		}
		kept++
	}

	g.Level = lvl
	g.Obstacles = obstacles
	g.RoutingSystem.Reset(obstacles, lvl.Entry, lvl.Exit)
	log.Printf("Level %q reloaded: kept %d blockers, dropped %d", lvl.Name, kept, dropped)
	g.EventDispatcher.Dispatch(event.Event{Type: event.LevelReloaded, Data: lvl.Name})
	return nil
}

// --- Public Accessors & Mutators ---

func (g *Game) Route() grid.Route {
	return g.RoutingSystem.Route()
}

func (g *Game) Phase() component.GamePhase {
	return g.ECS.GameState.Phase
}

func (g *Game) TileSize() float64 {
	return g.tileSize
}

// CurrentWave returns the running wave's number, or the next one in the
// build phase, and whether it is a boss wave.
func (g *Game) CurrentWave() (int, bool) {
	n := g.Wave
	if g.ECS.Wave != nil {
		n = g.ECS.Wave.Number
	}
	waveDef, ok := g.Library.WaveFor(n)
	if !ok {
		return n, false
	}
	def, _ := g.Library.Enemy(waveDef.EnemyID)
	return n, def.Boss
}

func (g *Game) EnemyCount() int {
	return len(g.ECS.Enemies)
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

func (g *Game) SetPaused(paused bool) {
	g.isPaused = paused
}

// SetSpeed sets the number of ticks per Update, clamped to
// [1, config.MaxSpeedMultiplier].
func (g *Game) SetSpeed(multiplier int) {
	if multiplier < 1 {
		multiplier = 1
	}
	if multiplier > config.MaxSpeedMultiplier {
		multiplier = config.MaxSpeedMultiplier
	}
	g.SpeedMultiplier = multiplier
}

// CycleSpeed steps through x1, x2, x4.
func (g *Game) CycleSpeed() {
	next := g.SpeedMultiplier * 2
	if next > config.MaxSpeedMultiplier {
		next = 1
	}
	g.SetSpeed(next)
}
