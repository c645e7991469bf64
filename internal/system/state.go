// internal/system/state.go
package system

import (
	"log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/interfaces"
)

// StateSystem switches the game between build and wave phases.
type StateSystem struct {
	ecs             *entity.ECS
	gameContext     interfaces.GameContext
	eventDispatcher *event.Dispatcher
}

func NewStateSystem(ecs *entity.ECS, gameContext interfaces.GameContext, eventDispatcher *event.Dispatcher) *StateSystem {
	ss := &StateSystem{
		ecs:             ecs,
		gameContext:     gameContext,
		eventDispatcher: eventDispatcher,
	}
	eventDispatcher.Subscribe(event.WaveEnded, ss)
	eventDispatcher.Subscribe(event.GameOver, ss)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveEnded:
		s.SwitchToBuildState()
	case event.GameOver:
		s.ecs.GameState.Phase = component.GameOver
		s.ecs.Wave = nil
	}
}

func (s *StateSystem) SwitchToBuildState() {
	if s.ecs.GameState.Phase == component.GameOver {
		return
	}
	s.ecs.GameState.Phase = component.BuildState
	s.ecs.GameState.BlockersPlaced = 0
	s.ecs.Wave = nil
	s.gameContext.ClearEnemies()
}

// SwitchToWaveState starts the next wave. It stays in the build phase when
// the wave cannot start.
func (s *StateSystem) SwitchToWaveState() bool {
	if s.ecs.GameState.Phase != component.BuildState {
		return false
	}
	if !s.gameContext.StartWave() {
		log.Println("state: wave could not start, staying in build phase")
		return false
	}
	s.ecs.GameState.Phase = component.WaveState
	return true
}

func (s *StateSystem) Current() component.GamePhase {
	return s.ecs.GameState.Phase
}
