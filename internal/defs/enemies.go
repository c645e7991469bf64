// internal/defs/enemies.go
package defs

import "math"

// EnemyDefinition holds the static data for one kind of enemy. Per-wave
// numbers are derived from it with Stats.
type EnemyDefinition struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Boss          bool    `yaml:"boss"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
	SpeedFactor   float64 `yaml:"speed_factor"`
	BaseHealth    float64 `yaml:"base_health"`
	HealthGrowth  float64 `yaml:"health_growth"`
	HealthFactor  float64 `yaml:"health_factor"`
	BaseReward    int     `yaml:"base_reward"`
	RewardFactor  int     `yaml:"reward_factor"`
	Radius        float64 `yaml:"radius"`
}

// EnemyStats are the numbers an enemy spawns with at a given level.
type EnemyStats struct {
	Speed     float64 // world units per tick
	MaxHealth float64
	Reward    int
	Radius    float64
	Boss      bool
}

// Stats scales the definition to level. Levels below 1 count as 1.
func (d EnemyDefinition) Stats(level int) EnemyStats {
	if level < 1 {
		level = 1
	}
	return EnemyStats{
		Speed:     (d.BaseSpeed + d.SpeedPerLevel*float64(level)) * d.SpeedFactor,
		MaxHealth: d.BaseHealth * math.Pow(d.HealthGrowth, float64(level-1)) * d.HealthFactor,
		Reward:    (d.BaseReward + level) * d.RewardFactor,
		Radius:    d.Radius,
		Boss:      d.Boss,
	}
}

func (d EnemyDefinition) validate() error {
	switch {
	case d.ID == "":
		return errMissingID
	case d.BaseSpeed+d.SpeedPerLevel <= 0 || d.SpeedFactor <= 0:
		return errNonPositiveSpeed
	case d.BaseHealth <= 0 || d.HealthFactor <= 0:
		return errNonPositiveHealth
	}
	return nil
}
