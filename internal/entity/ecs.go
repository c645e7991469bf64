// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
)

type ECS struct {
	Tick        uint64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Paths       map[types.EntityID]*component.Path
	Healths     map[types.EntityID]*component.Health
	Renderables map[types.EntityID]*component.Renderable
	Enemies     map[types.EntityID]*component.Enemy
	Blockers    map[types.EntityID]*component.Blocker
	Wave        *component.Wave
	GameState   *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Paths:       make(map[types.EntityID]*component.Path),
		Healths:     make(map[types.EntityID]*component.Health),
		Renderables: make(map[types.EntityID]*component.Renderable),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Blockers:    make(map[types.EntityID]*component.Blocker),
		Wave:        nil,
		GameState: &component.GameState{
			Phase: component.BuildState,
		},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Enemies, id)
	delete(ecs.Blockers, id)
}

// EnemyIDs returns the live enemy IDs in ascending order, so systems that
// iterate them behave the same on every run.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Enemies))
	for id := range ecs.Enemies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
