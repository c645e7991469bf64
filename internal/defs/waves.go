// internal/defs/waves.go
package defs

// WaveDefinition describes one wave of enemies. A zero SpawnIntervalTicks
// leaves the interval to the game settings.
type WaveDefinition struct {
	EnemyID            string `yaml:"enemy_id"`
	Count              int    `yaml:"count"`
	SpawnIntervalTicks int    `yaml:"spawn_interval_ticks"`
}

// repeatBlock is how many trailing patterns are cycled once the table runs out.
const repeatBlock = 5

// WaveFor returns the pattern for wave number n (1-based). Past the end of
// the table the last repeatBlock patterns repeat.
func (l *Library) WaveFor(n int) (WaveDefinition, bool) {
	if len(l.Waves) == 0 {
		return WaveDefinition{}, false
	}
	if n < 1 {
		n = 1
	}
	if n <= len(l.Waves) {
		return l.Waves[n-1], true
	}
	block := repeatBlock
	if block > len(l.Waves) {
		block = len(l.Waves)
	}
	first := len(l.Waves) - block
	return l.Waves[first+(n-len(l.Waves)-1)%block], true
}
