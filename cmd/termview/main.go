// cmd/termview/main.go
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/termview"
	"go-grid-defense/pkg/geom"
)

func main() {
	configPath := flag.String("config", "", "settings YAML file")
	levelPath := flag.String("level", "", "level YAML file (built-in level if empty)")
	logPath := flag.String("log", "termview.log", "log file; the terminal is busy drawing")
	flag.Parse()

	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	assets, err := app.LoadAssets(*configPath, *levelPath)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	view := termview.New(app.NewGame(assets.Level, assets.Settings, assets.Library))
	run(screen, view)
}

func run(screen tcell.Screen, view *termview.View) {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !handleInput(view, ev) {
				return
			}
		case <-ticker.C:
			view.Game.Update()
			view.Draw(screen)
		}
	}
}

func handleInput(view *termview.View, ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	g := view.Game
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		view.MoveCursor(geom.Cell{Y: -1})
	case tcell.KeyDown:
		view.MoveCursor(geom.Cell{Y: 1})
	case tcell.KeyLeft:
		view.MoveCursor(geom.Cell{X: -1})
	case tcell.KeyRight:
		view.MoveCursor(geom.Cell{X: 1})
	case tcell.KeyEnter:
		view.Toggle()
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			return false
		case ' ':
			if !g.RequestWave() {
				view.Message = "wave cannot start now"
			}
		case '1', '2', '4':
			g.SetSpeed(int(key.Rune() - '0'))
		case 'p':
			g.SetPaused(!g.IsPaused())
		}
	}
	return true
}
