// internal/system/movement.go
package system

import (
	"go-grid-defense/internal/entity"
)

// MovementSystem advances every enemy's follower by one tick and mirrors
// the result into the Position component.
type MovementSystem struct {
	ecs *entity.ECS
}

func NewMovementSystem(ecs *entity.ECS) *MovementSystem {
	return &MovementSystem{ecs: ecs}
}

// Update runs one simulation tick. Enemies are visited in ID order.
func (s *MovementSystem) Update() {
	for _, id := range s.ecs.EnemyIDs() {
		enemy := s.ecs.Enemies[id]
		if enemy.Dead || enemy.ReachedEnd {
			continue
		}
		path, hasPath := s.ecs.Paths[id]
		if !hasPath || path.Follower == nil {
			continue
		}
		f := path.Follower
		f.Tick()

		pos := f.Position()
		if p, ok := s.ecs.Positions[id]; ok {
			p.X, p.Y = pos.X, pos.Y
		}
		if f.Finished() {
			enemy.ReachedEnd = true
		}
	}
}
