// internal/state/game_over_state.go
package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverState shows the final result over the last frame; R starts a
// fresh game on the same level.
type GameOverState struct {
	sm       *StateMachine
	previous *GameState
	summary  string
}

func NewGameOverState(sm *StateMachine, previous *GameState) *GameOverState {
	g := previous.Game()
	return &GameOverState{
		sm:       sm,
		previous: previous,
		summary:  fmt.Sprintf("waves survived %d, enemies stopped %d. press R to restart", g.Wave-2, g.Kills),
	}
}

func (m *GameOverState) Enter() {}

func (m *GameOverState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		opts := m.previous.opts
		opts.Level = m.previous.Game().Level
		m.sm.SetState(NewGameState(m.sm, opts))
	}
}

func (m *GameOverState) Draw(screen *ebiten.Image) {
	m.previous.Draw(screen)
	drawOverlay(screen, "GAME OVER", m.summary)
}

func (m *GameOverState) Exit() {}
