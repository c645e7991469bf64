// internal/state/game_state.go
package state

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font/basicfont"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/level"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/ui"
	"go-grid-defense/pkg/render"
)

// Options are what a new game is built from. Watcher may be nil.
type Options struct {
	Level    *level.Level
	Settings config.Settings
	Library  *defs.Library
	Watcher  *level.Watcher
}

// GameState - состояние игры
type GameState struct {
	sm            *StateMachine
	opts          Options
	game          *game.Game
	renderer      *render.GridRenderer
	renderSystem  *system.RenderSystem
	indicator     *ui.StateIndicator
	speedButton   *ui.SpeedButton
	waveIndicator *ui.WaveIndicator
	hud           *ui.HUD
}

func NewGameState(sm *StateMachine, opts Options) *GameState {
	gameLogic := game.NewGame(opts.Level, opts.Settings, opts.Library)

	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		FreeTileColor:   config.FreeTileColor,
		GridLineColor:   config.GridLineColor,
		WallColor:       config.WallColor,
		BlockerColor:    config.BlockerColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		RouteColor:      config.RouteColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     1,
	}

	// Карта по центру по горизонтали, под HUD
	ts := gameLogic.TileSize()
	layout := render.Layout{
		OffsetX:  (float64(config.ScreenWidth) - float64(opts.Level.Width())*ts) / 2,
		OffsetY:  config.HUDHeight,
		TileSize: ts,
	}
	renderer := render.NewGridRenderer(layout, config.ScreenWidth, config.ScreenHeight, mapColors)
	renderer.RenderMapImage(gameLogic.Level.Walls, gameLogic.Level.Entry, gameLogic.Level.Exit)

	face := basicfont.Face7x13
	return &GameState{
		sm:           sm,
		opts:         opts,
		game:         gameLogic,
		renderer:     renderer,
		renderSystem: system.NewRenderSystem(gameLogic.ECS, float32(layout.OffsetX), float32(layout.OffsetY)),
		indicator: ui.NewStateIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			config.HUDHeight/2,
			config.IndicatorRadius,
		),
		speedButton: ui.NewSpeedButton(
			float32(config.ScreenWidth-config.SpeedButtonOffset),
			config.HUDHeight/2,
			config.SpeedButtonSize,
			config.SpeedColors,
		),
		waveIndicator: ui.NewWaveIndicator(float32(config.ScreenWidth)/2+220, 26, config.TextLightColor, config.BossHealthColor),
		hud:           ui.NewHUD(float32(config.ScreenWidth), config.HUDHeight, face, config.HUDColor, config.TextLightColor),
	}
}

// Game exposes the running game for the other states.
func (g *GameState) Game() *game.Game {
	return g.game
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	g.pollLevelReload()

	if g.game.Phase() == component.GameOver {
		g.sm.SetState(NewGameOverState(g.sm, g))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.startWave()
	}
	for key, speed := range map[ebiten.Key]int{ebiten.Key1: 1, ebiten.Key2: 2, ebiten.Key4: 4} {
		if inpututil.IsKeyJustPressed(key) {
			g.setSpeed(speed)
		}
	}

	g.game.Update()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case g.indicator.IsClicked(x, y):
			g.indicator.HandleClick()
			g.startWave()
		case g.speedButton.IsClicked(x, y):
			g.game.CycleSpeed()
			g.setSpeed(g.game.SpeedMultiplier)
		default:
			g.handleGameClick(x, y, ebiten.MouseButtonLeft)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonRight)
	}
}

func (g *GameState) startWave() {
	if g.game.Phase() != component.BuildState {
		return
	}
	if !g.game.RequestWave() {
		g.flash("wave could not start")
	}
}

func (g *GameState) setSpeed(speed int) {
	g.game.SetSpeed(speed)
	state := 0
	for s := g.game.SpeedMultiplier; s > 1; s /= 2 {
		state++
	}
	g.speedButton.SetState(state)
}

func (g *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	cell := g.renderer.Layout().ScreenToCell(x, y)
	if !g.game.Obstacles.InBounds(cell) {
		return
	}

	var err error
	switch button {
	case ebiten.MouseButtonLeft:
		err = g.game.PlaceBlocker(cell)
	case ebiten.MouseButtonRight:
		err = g.game.RemoveBlocker(cell)
	}
	if err != nil {
		log.Printf("%v", err)
		g.flash(err.Error())
	}
}

// pollLevelReload applies a reloaded level without blocking the frame.
func (g *GameState) pollLevelReload() {
	w := g.opts.Watcher
	if w == nil {
		return
	}
	select {
	case lvl, ok := <-w.Levels:
		if !ok {
			g.opts.Watcher = nil
			return
		}
		if err := g.game.ReplaceLevel(lvl); err != nil {
			log.Printf("Level reload rejected: %v", err)
			g.flash(err.Error())
			return
		}
		g.renderer.RenderMapImage(lvl.Walls, lvl.Entry, lvl.Exit)
		g.flash("level reloaded: " + lvl.Name)
	case err, ok := <-w.Errors:
		if ok {
			log.Printf("Level reload failed: %v", err)
			g.flash(err.Error())
		}
	default:
	}
}

func (g *GameState) flash(msg string) {
	g.hud.Flash(msg, config.MessageSeconds*time.Second)
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.game.BlockerCells(), g.game.Route(), g.renderSystem)

	g.hud.Draw(screen, ui.HUDStats{
		Phase:        g.game.Phase().String(),
		Lives:        g.game.Lives,
		Kills:        g.game.Kills,
		Enemies:      g.game.EnemyCount(),
		Speed:        g.game.SpeedMultiplier,
		BlockersLeft: g.game.BlockersLeft(),
		Paused:       g.game.IsPaused(),
	})

	var stateColor color.Color
	switch g.game.Phase() {
	case component.BuildState:
		stateColor = config.BuildStateColor
	case component.WaveState:
		stateColor = config.WaveStateColor
	default:
		stateColor = config.HealthBackColor
	}
	g.indicator.Draw(screen, stateColor)
	g.speedButton.Draw(screen)

	wave, boss := g.game.CurrentWave()
	g.waveIndicator.Draw(screen, g.hud.Face, wave, boss)
}

func (g *GameState) Exit() {}
