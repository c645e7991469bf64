// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	TileSize     = 40.0
	HUDHeight    = 60

	TicksPerSecond     = 60
	BaseLives          = 20
	MaxSpeedMultiplier = 4

	SpawnIntervalTicks    = 45
	MaxBlockersPerBuild   = 5
	RouteWorkers          = 4
	LevelReloadDebounceMs = 150

	EnemyRadius      = 12.0
	BossRadius       = 20.0
	HealthBarWidth   = 20.0
	HealthBarHeight  = 4.0
	BlockerInsetPx   = 4.0
	RouteDotRadiusPx = 3.0

	IndicatorRadius   = 14.0
	IndicatorOffsetX  = 40
	SpeedButtonSize   = 10.0
	SpeedButtonOffset = 100
	MessageSeconds    = 2
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	FreeTileColor   = color.RGBA{40, 50, 70, 255}
	GridLineColor   = color.RGBA{60, 70, 90, 255}
	WallColor       = color.RGBA{90, 90, 100, 255}
	BlockerColor    = color.RGBA{70, 130, 180, 255}
	EntryColor      = color.RGBA{0, 255, 0, 255}
	ExitColor       = color.RGBA{255, 0, 0, 255}
	RouteColor      = color.RGBA{255, 255, 0, 128}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	EnemyColor      = color.RGBA{255, 0, 0, 255}
	BossColor       = color.RGBA{250, 255, 0, 255}
	HealthBackColor = color.RGBA{51, 51, 51, 255}
	HealthColor     = color.RGBA{0, 255, 0, 255}
	BossHealthColor = color.RGBA{255, 165, 0, 255}
	BuildStateColor = color.RGBA{70, 130, 180, 220}
	WaveStateColor  = color.RGBA{220, 60, 60, 220}
	HUDColor        = color.RGBA{30, 30, 45, 255}

	// SpeedColors are indexed by log2 of the speed multiplier.
	SpeedColors = []color.RGBA{
		{70, 130, 180, 255},
		{255, 165, 0, 255},
		{220, 60, 60, 255},
	}
)

// Settings are the tunables that can be overridden from a YAML file.
type Settings struct {
	TileSize            float64 `yaml:"tile_size"`
	Lives               int     `yaml:"lives"`
	SpawnIntervalTicks  int     `yaml:"spawn_interval_ticks"`
	MaxBlockersPerBuild int     `yaml:"max_blockers_per_build"`
	RouteWorkers        int     `yaml:"route_workers"`
	Seed                int64   `yaml:"seed"`
	EnemiesFile         string  `yaml:"enemies_file"`
	WavesFile           string  `yaml:"waves_file"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		TileSize:            TileSize,
		Lives:               BaseLives,
		SpawnIntervalTicks:  SpawnIntervalTicks,
		MaxBlockersPerBuild: MaxBlockersPerBuild,
		RouteWorkers:        RouteWorkers,
	}
}

// Load reads settings from path on top of Default.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	var errs []error
	if s.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size must be positive, got %v", s.TileSize))
	}
	if s.Lives <= 0 {
		errs = append(errs, fmt.Errorf("lives must be positive, got %d", s.Lives))
	}
	if s.SpawnIntervalTicks <= 0 {
		errs = append(errs, fmt.Errorf("spawn_interval_ticks must be positive, got %d", s.SpawnIntervalTicks))
	}
	if s.MaxBlockersPerBuild < 0 {
		errs = append(errs, fmt.Errorf("max_blockers_per_build must not be negative, got %d", s.MaxBlockersPerBuild))
	}
	if s.RouteWorkers <= 0 {
		errs = append(errs, fmt.Errorf("route_workers must be positive, got %d", s.RouteWorkers))
	}
	return errors.Join(errs...)
}
