// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/level"
	"go-grid-defense/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "settings YAML file")
	levelPath := flag.String("level", "", "level YAML file (built-in level if empty)")
	watch := flag.Bool("watch", false, "reload the level file when it changes")
	flag.Parse()

	assets, err := app.LoadAssets(*configPath, *levelPath)
	if err != nil {
		log.Fatal(err)
	}

	opts := state.Options{Level: assets.Level, Settings: assets.Settings, Library: assets.Library}
	if *watch {
		if *levelPath == "" {
			log.Fatal("-watch needs -level")
		}
		w, err := level.NewWatcher(*levelPath, config.LevelReloadDebounceMs*time.Millisecond)
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
		opts.Watcher = w
		log.Printf("Watching %s for changes", *levelPath)
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, opts))
	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Grid Defense: " + assets.Level.Name)
	ebiten.SetTPS(config.TicksPerSecond)
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
