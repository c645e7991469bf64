package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-grid-defense/internal/config"
)

func TestLoadAssetsDefaults(t *testing.T) {
	a, err := LoadAssets("", "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), a.Settings)
	assert.Equal(t, "Crossroads", a.Level.Name)
	assert.NotEmpty(t, a.Library.Waves)
}

func TestLoadAssetsFromFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "settings.yaml")
	lvl := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("lives: 5\n"), 0o644))
	require.NoError(t, os.WriteFile(lvl, []byte(testLevel), 0o644))

	a, err := LoadAssets(cfg, lvl)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Settings.Lives)
	assert.Equal(t, "strip", a.Level.Name)

	_, err = LoadAssets(filepath.Join(dir, "missing.yaml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
