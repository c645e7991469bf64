// internal/system/wave.go
package system

import (
	"log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/follower"
	"go-grid-defense/pkg/grid"
)

// RouteProvider supplies the route new enemies spawn on.
type RouteProvider interface {
	Route() grid.Route
}

type WaveSystem struct {
	ecs             *entity.ECS
	library         *defs.Library
	routes          RouteProvider
	tileSize        float64
	spawnInterval   int // used when a wave leaves its interval unset
	eventDispatcher *event.Dispatcher
	activeEnemies   int
	ended           bool
}

func NewWaveSystem(ecs *entity.ECS, library *defs.Library, routes RouteProvider, tileSize float64, spawnInterval int, eventDispatcher *event.Dispatcher) *WaveSystem {
	if spawnInterval < 1 {
		spawnInterval = config.SpawnIntervalTicks
	}
	ws := &WaveSystem{
		ecs:             ecs,
		library:         library,
		routes:          routes,
		tileSize:        tileSize,
		spawnInterval:   spawnInterval,
		eventDispatcher: eventDispatcher,
	}
	eventDispatcher.Subscribe(event.EnemyKilled, ws)
	eventDispatcher.Subscribe(event.EnemyReachedGoal, ws)
	return ws
}

// Update runs one tick of spawning for wave.
func (s *WaveSystem) Update(wave *component.Wave) {
	if wave == nil || s.ended {
		return
	}
	if wave.EnemiesToSpawn > 0 {
		wave.SpawnTimer++
		if wave.SpawnTimer >= wave.SpawnInterval {
			if _, err := s.spawnEnemy(wave); err != nil {
				log.Printf("wave %d: spawn: %v", wave.Number, err)
			}
			wave.EnemiesToSpawn--
			wave.SpawnTimer = 0
		}
	} else if s.activeEnemies == 0 {
		s.ended = true
		s.eventDispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: wave.Number})
	}
}

func (s *WaveSystem) ActiveEnemies() int {
	return s.activeEnemies
}

func (s *WaveSystem) spawnEnemy(wave *component.Wave) (types.EntityID, error) {
	def, ok := s.library.Enemy(wave.EnemyID)
	if !ok {
		return 0, defs.ErrUnknownEnemy
	}
	stats := def.Stats(wave.Level)
	f, err := follower.New(s.routes.Route(), stats.Speed, s.tileSize)
	if err != nil {
		return 0, err
	}

	id := s.ecs.NewEntity()
	pos := f.Position()
	s.ecs.Positions[id] = &component.Position{X: pos.X, Y: pos.Y}
	s.ecs.Paths[id] = &component.Path{Follower: f}
	s.ecs.Healths[id] = &component.Health{Value: stats.MaxHealth, Max: stats.MaxHealth}

	col := config.EnemyColor
	if stats.Boss {
		col = config.BossColor
	}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:     col,
		Radius:    float32(stats.Radius),
		HasStroke: stats.Boss,
	}
	s.ecs.Enemies[id] = &component.Enemy{
		DefID:  wave.EnemyID,
		Level:  wave.Level,
		Boss:   stats.Boss,
		Reward: stats.Reward,
	}
	s.activeEnemies++
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: id})
	return id, nil
}

// StartWave builds the spawning state for wave number n. Enemy level equals
// the wave number.
func (s *WaveSystem) StartWave(n int) *component.Wave {
	waveDef, ok := s.library.WaveFor(n)
	if !ok {
		log.Println("wave: no wave definitions")
		return nil
	}
	if s.routes.Route().Empty() {
		log.Printf("wave %d: no route from entry to exit", n)
		return nil
	}
	interval := waveDef.SpawnIntervalTicks
	if interval <= 0 {
		interval = s.spawnInterval
	}
	s.ended = false
	s.activeEnemies = 0
	return &component.Wave{
		Number:         n,
		EnemyID:        waveDef.EnemyID,
		Level:          n,
		EnemiesToSpawn: waveDef.Count,
		// First enemy appears on the first tick.
		SpawnTimer:    interval - 1,
		SpawnInterval: interval,
	}
}

func (s *WaveSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled, event.EnemyReachedGoal:
		if s.activeEnemies > 0 {
			s.activeEnemies--
		}
	}
}
