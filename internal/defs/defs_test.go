package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLibrary(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)
	require.Contains(t, lib.Enemies, "ENEMY_NORMAL")
	require.Contains(t, lib.Enemies, "ENEMY_BOSS")
	assert.Len(t, lib.Waves, 10)
}

func TestEnemyStatsScaling(t *testing.T) {
	lib := MustBuiltin()

	normal, _ := lib.Enemy("ENEMY_NORMAL")
	s := normal.Stats(1)
	assert.InDelta(t, 1.2, s.Speed, 1e-9)
	assert.InDelta(t, 20.0, s.MaxHealth, 1e-9)
	assert.Equal(t, 11, s.Reward)
	assert.False(t, s.Boss)

	s = normal.Stats(3)
	assert.InDelta(t, 1.6, s.Speed, 1e-9)
	assert.InDelta(t, 28.8, s.MaxHealth, 1e-9)
	assert.Equal(t, 13, s.Reward)

	boss, _ := lib.Enemy("ENEMY_BOSS")
	s = boss.Stats(5)
	assert.InDelta(t, 1.2, s.Speed, 1e-9)
	assert.InDelta(t, 20*1.2*1.2*1.2*1.2*6, s.MaxHealth, 1e-9)
	assert.Equal(t, 75, s.Reward)
	assert.Equal(t, 20.0, s.Radius)
	assert.True(t, s.Boss)

	assert.Equal(t, normal.Stats(1), normal.Stats(0), "levels below 1 clamp")
}

func TestWaveForRepeatsTail(t *testing.T) {
	lib := MustBuiltin()

	w, ok := lib.WaveFor(1)
	require.True(t, ok)
	assert.Equal(t, lib.Waves[0], w)

	w, _ = lib.WaveFor(10)
	assert.Equal(t, lib.Waves[9], w)

	// 11 wraps to 6, 15 to 10, 16 to 6 again.
	w, _ = lib.WaveFor(11)
	assert.Equal(t, lib.Waves[5], w)
	w, _ = lib.WaveFor(15)
	assert.Equal(t, lib.Waves[9], w)
	w, _ = lib.WaveFor(16)
	assert.Equal(t, lib.Waves[5], w)

	_, ok = (&Library{}).WaveFor(1)
	assert.False(t, ok)
}

func TestLoadLibraryFromFiles(t *testing.T) {
	dir := t.TempDir()
	enemies := filepath.Join(dir, "enemies.yaml")
	waves := filepath.Join(dir, "waves.yaml")
	require.NoError(t, os.WriteFile(enemies, []byte(`
- id: SLUG
  name: Slug
  base_speed: 0.5
  speed_factor: 1
  base_health: 5
  health_growth: 1
  health_factor: 1
  reward_factor: 1
  radius: 8
`), 0o644))
	require.NoError(t, os.WriteFile(waves, []byte(`- {enemy_id: SLUG, count: 3, spawn_interval_ticks: 10}`), 0o644))

	lib, err := LoadLibrary(enemies, waves)
	require.NoError(t, err)
	assert.Len(t, lib.Enemies, 1)
	assert.Equal(t, 3, lib.Waves[0].Count)

	// Only waves overridden, enemies from builtin data.
	_, err = LoadLibrary("", waves)
	assert.ErrorIs(t, err, ErrUnknownEnemy)
}

func TestLoadLibraryRejectsBadDefinitions(t *testing.T) {
	dir := t.TempDir()
	enemies := filepath.Join(dir, "enemies.yaml")
	require.NoError(t, os.WriteFile(enemies, []byte(`- {id: X, base_speed: 0, speed_factor: 1, base_health: 1, health_factor: 1}`), 0o644))
	_, err := LoadLibrary(enemies, "")
	assert.ErrorIs(t, err, errNonPositiveSpeed)

	_, err = LoadLibrary(filepath.Join(dir, "missing.yaml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
