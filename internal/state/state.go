// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State is one screen of the game: GameState while playing, PauseState on
// top of it, GameOverState once lives run out.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine holds the active screen. States switch themselves from
// inside Update by calling SetState.
type StateMachine struct {
	current State
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits the current state and enters newState. Setting the
// active state again does nothing.
func (sm *StateMachine) SetState(newState State) {
	if newState == sm.current {
		return
	}
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current returns the active state, or nil.
func (sm *StateMachine) Current() State {
	return sm.current
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
