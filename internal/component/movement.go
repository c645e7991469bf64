// internal/component/movement.go
package component

import (
	"go-grid-defense/pkg/follower"
	"go-grid-defense/pkg/geom"
)

// Position - мировая позиция сущности, зеркало Follower.Position для рендера.
type Position struct {
	X, Y float64
}

func (p *Position) Vec() geom.Vec2 { return geom.Vec2{X: p.X, Y: p.Y} }

// Path wraps the follower that walks the enemy along its route.
type Path struct {
	Follower *follower.Follower
}
