// internal/defs/loader.go
package defs

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var builtin embed.FS

var (
	errMissingID         = errors.New("missing id")
	errNonPositiveSpeed  = errors.New("speed must be positive")
	errNonPositiveHealth = errors.New("health must be positive")

	// ErrUnknownEnemy is returned when a wave names an enemy that has no definition.
	ErrUnknownEnemy = errors.New("unknown enemy id")
)

// Library holds every enemy and wave definition, keyed by ID.
type Library struct {
	Enemies map[string]EnemyDefinition
	Waves   []WaveDefinition
}

// Enemy looks up a definition by ID.
func (l *Library) Enemy(id string) (EnemyDefinition, bool) {
	def, ok := l.Enemies[id]
	return def, ok
}

// Builtin returns the definitions compiled into the binary.
func Builtin() (*Library, error) {
	enemies, err := builtin.ReadFile("data/enemies.yaml")
	if err != nil {
		return nil, fmt.Errorf("defs: read builtin enemies: %w", err)
	}
	waves, err := builtin.ReadFile("data/waves.yaml")
	if err != nil {
		return nil, fmt.Errorf("defs: read builtin waves: %w", err)
	}
	return parseLibrary(enemies, waves)
}

// MustBuiltin is Builtin for program start-up; it panics on error.
func MustBuiltin() *Library {
	lib, err := Builtin()
	if err != nil {
		panic(err)
	}
	return lib
}

// LoadLibrary reads enemy and wave definitions from YAML files. An empty
// path falls back to the builtin file for that half.
func LoadLibrary(enemiesPath, wavesPath string) (*Library, error) {
	read := func(path, fallback string) ([]byte, error) {
		if path == "" {
			return builtin.ReadFile(fallback)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("defs: read %s: %w", path, err)
		}
		return data, nil
	}
	enemies, err := read(enemiesPath, "data/enemies.yaml")
	if err != nil {
		return nil, err
	}
	waves, err := read(wavesPath, "data/waves.yaml")
	if err != nil {
		return nil, err
	}
	lib, err := parseLibrary(enemies, waves)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d enemy definitions and %d waves", len(lib.Enemies), len(lib.Waves))
	return lib, nil
}

func parseLibrary(enemyData, waveData []byte) (*Library, error) {
	var enemyDefs []EnemyDefinition
	if err := yaml.Unmarshal(enemyData, &enemyDefs); err != nil {
		return nil, fmt.Errorf("defs: unmarshal enemy definitions: %w", err)
	}
	var waves []WaveDefinition
	if err := yaml.Unmarshal(waveData, &waves); err != nil {
		return nil, fmt.Errorf("defs: unmarshal wave definitions: %w", err)
	}

	lib := &Library{
		Enemies: make(map[string]EnemyDefinition, len(enemyDefs)),
		Waves:   waves,
	}
	for i, def := range enemyDefs {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("defs: enemy %d (%q): %w", i, def.ID, err)
		}
		lib.Enemies[def.ID] = def
	}
	for i, w := range waves {
		if _, ok := lib.Enemies[w.EnemyID]; !ok {
			return nil, fmt.Errorf("defs: wave %d: %w %q", i+1, ErrUnknownEnemy, w.EnemyID)
		}
		if w.Count <= 0 || w.SpawnIntervalTicks < 0 {
			return nil, fmt.Errorf("defs: wave %d: count must be positive and spawn_interval_ticks not negative", i+1)
		}
	}
	return lib, nil
}
