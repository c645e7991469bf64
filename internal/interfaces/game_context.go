// internal/interfaces/game_context.go
package interfaces

// GameContext is what the StateSystem needs from the game when switching
// phases.
type GameContext interface {
	ClearEnemies()
	StartWave() bool
}
