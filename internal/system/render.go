// internal/system/render.go
package system

import (
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/entity"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem рисует врагов и полоски здоровья
type RenderSystem struct {
	ecs     *entity.ECS
	offsetX float32
	offsetY float32
}

func NewRenderSystem(ecs *entity.ECS, offsetX, offsetY float32) *RenderSystem {
	return &RenderSystem{ecs: ecs, offsetX: offsetX, offsetY: offsetY}
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.ecs.EnemyIDs() {
		pos, hasPos := s.ecs.Positions[id]
		render, hasRender := s.ecs.Renderables[id]
		if !hasPos || !hasRender {
			continue
		}
		x := float32(pos.X) + s.offsetX
		y := float32(pos.Y) + s.offsetY

		vector.DrawFilledCircle(screen, x, y, render.Radius, render.Color, true)
		if render.HasStroke {
			// Boss marker
			vector.StrokeCircle(screen, x, y, render.Radius*0.6, 2, config.TextLightColor, true)
		}

		health, hasHealth := s.ecs.Healths[id]
		if !hasHealth {
			continue
		}
		barW, barH, lift := float32(config.HealthBarWidth), float32(config.HealthBarHeight), float32(20)
		barColor := config.HealthColor
		if enemy := s.ecs.Enemies[id]; enemy != nil && enemy.Boss {
			barW, barH, lift = barW*2, barH+2, 30
			barColor = config.BossHealthColor
		}
		vector.DrawFilledRect(screen, x-barW/2, y-lift, barW, barH, config.HealthBackColor, false)
		vector.DrawFilledRect(screen, x-barW/2, y-lift, barW*float32(health.Fraction()), barH, barColor, false)
	}
}
