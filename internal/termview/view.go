// internal/termview/view.go
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"go-grid-defense/internal/app"
	"go-grid-defense/pkg/geom"
)

const (
	glyphFree    = '.'
	glyphWall    = '#'
	glyphBlocker = 'B'
	glyphRoute   = '*'
	glyphEntry   = 'S'
	glyphExit    = 'X'
	glyphEnemy   = 'o'
	glyphBoss    = 'O'
)

var (
	styleFree    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBlocker = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleRoute   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnd     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// View draws a Game onto a terminal, one character per cell, with a
// movable cursor for placing blockers.
type View struct {
	Game    *app.Game
	Cursor  geom.Cell
	Message string
}

func New(g *app.Game) *View {
	return &View{Game: g, Cursor: g.Level.Entry}
}

// MoveCursor shifts the cursor by d, keeping it on the map.
func (v *View) MoveCursor(d geom.Cell) {
	next := v.Cursor.Add(d)
	if v.Game.Obstacles.InBounds(next) {
		v.Cursor = next
	}
}

// Toggle places or removes a blocker under the cursor.
func (v *View) Toggle() {
	if err := v.Game.ToggleBlocker(v.Cursor); err != nil {
		v.Message = err.Error()
		return
	}
	v.Message = ""
}

// Glyph returns what the map shows at c, ignoring the cursor.
func (v *View) Glyph(c geom.Cell) (rune, tcell.Style) {
	g := v.Game
	switch {
	case c == g.Level.Entry:
		return glyphEntry, styleEnd
	case c == g.Level.Exit:
		return glyphExit, styleEnd
	case g.HasBlocker(c):
		return glyphBlocker, styleBlocker
	case g.Obstacles.Blocked(c):
		return glyphWall, styleWall
	case g.Route().Contains(c):
		return glyphRoute, styleRoute
	}
	return glyphFree, styleFree
}

// Draw renders the map, enemies, cursor and a status line below the map.
func (v *View) Draw(screen tcell.Screen) {
	screen.Clear()
	g := v.Game
	for y := 0; y < g.Obstacles.Height(); y++ {
		for x := 0; x < g.Obstacles.Width(); x++ {
			ch, style := v.Glyph(geom.Cell{X: x, Y: y})
			screen.SetContent(x, y, ch, nil, style)
		}
	}

	for _, id := range g.ECS.EnemyIDs() {
		pos, ok := g.ECS.Positions[id]
		if !ok {
			continue
		}
		c := geom.WorldToCell(pos.Vec(), g.TileSize())
		ch := glyphEnemy
		if g.ECS.Enemies[id].Boss {
			ch = glyphBoss
		}
		screen.SetContent(c.X, c.Y, ch, nil, styleEnemy)
	}

	ch, _, style, _ := screen.GetContent(v.Cursor.X, v.Cursor.Y)
	screen.SetContent(v.Cursor.X, v.Cursor.Y, ch, nil, style.Reverse(true))

	wave, _ := g.CurrentWave()
	status := fmt.Sprintf("wave %d  %s  lives %d  kills %d  enemies %d  x%d",
		wave, g.Phase(), g.Lives, g.Kills, g.EnemyCount(), g.SpeedMultiplier)
	drawText(screen, 0, g.Obstacles.Height()+1, status, styleStatus)
	drawText(screen, 0, g.Obstacles.Height()+2, "arrows move, enter toggles blocker, space starts wave, 1/2/4 speed, p pause, q quits", styleFree)
	if v.Message != "" {
		drawText(screen, 0, g.Obstacles.Height()+3, v.Message, styleEnemy)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
