// internal/app/setup.go
package app

import (
	"fmt"
	"log"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/level"
)

// Assets is everything a front end needs before it can build a Game.
type Assets struct {
	Level    *level.Level
	Settings config.Settings
	Library  *defs.Library
}

// LoadAssets reads the settings, level and definitions named on the
// command line. Empty paths select the built-in data.
func LoadAssets(configPath, levelPath string) (Assets, error) {
	var a Assets

	a.Settings = config.Default()
	if configPath != "" {
		s, err := config.Load(configPath)
		if err != nil {
			return a, err
		}
		a.Settings = s
	}

	if levelPath != "" {
		lvl, err := level.Load(levelPath)
		if err != nil {
			return a, err
		}
		a.Level = lvl
	} else {
		a.Level = level.Default()
	}

	lib, err := defs.LoadLibrary(a.Settings.EnemiesFile, a.Settings.WavesFile)
	if err != nil {
		return a, fmt.Errorf("load definitions: %w", err)
	}
	a.Library = lib

	log.Printf("Level %q: %dx%d, entry %v, exit %v, route %d cells",
		a.Level.Name, a.Level.Width(), a.Level.Height(), a.Level.Entry, a.Level.Exit, a.Level.Route.Len())
	return a, nil
}
