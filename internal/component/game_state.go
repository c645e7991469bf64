// internal/component/game_state.go
package component

// GamePhase - фаза игры
type GamePhase int

const (
	BuildState GamePhase = iota
	WaveState
	GameOver
)

func (p GamePhase) String() string {
	switch p {
	case BuildState:
		return "build"
	case WaveState:
		return "wave"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// GameState - компонент для хранения состояния игры
type GameState struct {
	Phase          GamePhase
	BlockersPlaced int // blockers placed during the current build phase
}

// Wave tracks spawning progress of the running wave.
type Wave struct {
	Number         int
	EnemyID        string
	Level          int
	EnemiesToSpawn int
	SpawnTimer     int // ticks since the last spawn
	SpawnInterval  int // ticks between spawns
}
