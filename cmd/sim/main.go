// cmd/sim/main.go
//
// Headless run: random blockers before every wave, then the wave plays out
// tick by tick. The same seed always produces the same game.
package main

import (
	"flag"
	"log"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/utils"
)

// maxWaveTicks bounds a single wave in case enemies can never leave it.
const maxWaveTicks = 200000

func main() {
	configPath := flag.String("config", "", "settings YAML file")
	levelPath := flag.String("level", "", "level YAML file (built-in level if empty)")
	seed := flag.Int64("seed", 0, "PRNG seed (0 uses the settings seed, then the clock)")
	waves := flag.Int("waves", 10, "number of waves to play")
	blockers := flag.Int("blockers", -1, "blockers placed before each wave (-1 uses the settings limit)")
	dps := flag.Float64("dps", 0, "damage per tick dealt to the enemy closest to the exit")
	flag.Parse()

	assets, err := app.LoadAssets(*configPath, *levelPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = assets.Settings.Seed
	}
	prng := utils.NewPRNGService(*seed)
	log.Printf("Seed %d", prng.Seed())

	g := app.NewGame(assets.Level, assets.Settings, assets.Library)
	reroutes, rewards := 0, 0
	g.EventDispatcher.Subscribe(event.RouteChanged, event.ListenerFunc(func(event.Event) { reroutes++ }))
	g.EventDispatcher.Subscribe(event.EnemyKilled, event.ListenerFunc(func(e event.Event) {
		if d, ok := event.KilledOf(e); ok {
			rewards += d.Reward
		}
	}))

	perWave := *blockers
	if perWave < 0 {
		perWave = assets.Settings.MaxBlockersPerBuild
	}

	for n := 1; n <= *waves && g.Phase() != component.GameOver; n++ {
		placed := g.AutoBuild(prng, perWave)
		if !g.RequestWave() {
			log.Printf("Wave %d could not start", n)
			break
		}
		ticks := 0
		for g.Phase() == component.WaveState && ticks < maxWaveTicks {
			if *dps > 0 {
				if id, ok := g.LeadingEnemy(); ok {
					if err := g.Damage(id, *dps); err != nil {
						log.Printf("damage: %v", err)
					}
				}
			}
			g.Step()
			ticks++
		}
		log.Printf("Wave %d done in %d ticks: +%d blockers (%d total), route %d cells, lives %d",
			n, ticks, len(placed), len(g.BlockerCells()), g.Route().Len(), g.Lives)
	}

	log.Printf("Result: phase %s, lives %d, kills %d (reward %d), leaked %d, route recomputed %d times",
		g.Phase(), g.Lives, g.Kills, rewards, g.Leaked, reroutes)
}
