// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"go-grid-defense/internal/config"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState freezes the simulation and draws the game underneath a
// dimmed overlay.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {
	s.previousState.Game().SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)
	drawOverlay(screen, "PAUSED", "press P to resume")
}

func (s *PauseState) Exit() {
	s.previousState.Game().SetPaused(false)
}

func drawOverlay(screen *ebiten.Image, title, hint string) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	face := basicfont.Face7x13
	cx, cy := config.ScreenWidth/2, config.ScreenHeight/2
	b := text.BoundString(face, title)
	text.Draw(screen, title, face, cx-b.Dx()/2, cy-10, color.White)
	b = text.BoundString(face, hint)
	text.Draw(screen, hint, face, cx-b.Dx()/2, cy+14, config.TextLightColor)
}
