// pkg/render/grid_renderer.go
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/system"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

type GridRenderer struct {
	layout   Layout
	colors   *MapColors
	fontFace font.Face
	mapImage *ebiten.Image // предрендеренная карта: плитки, стены, вход и выход
}

func NewGridRenderer(layout Layout, screenWidth, screenHeight int, colors *MapColors) *GridRenderer {
	return &GridRenderer{
		layout:   layout,
		colors:   colors,
		fontFace: basicfont.Face7x13,
		mapImage: ebiten.NewImage(screenWidth, screenHeight),
	}
}

func (r *GridRenderer) Layout() Layout {
	return r.layout
}

// RenderMapImage redraws the static background. Call it again after a
// level reload.
func (r *GridRenderer) RenderMapImage(walls *grid.Grid, entry, exit geom.Cell) {
	r.mapImage.Clear()
	r.mapImage.Fill(r.colors.BackgroundColor)

	ts := float32(r.layout.TileSize)
	for y := 0; y < walls.Height(); y++ {
		for x := 0; x < walls.Width(); x++ {
			c := geom.Cell{X: x, Y: y}
			px, py := r.layout.CellOrigin(c)
			fill := r.colors.FreeTileColor
			switch {
			case c == entry:
				fill = r.colors.EntryColor
			case c == exit:
				fill = r.colors.ExitColor
			case walls.Blocked(c):
				fill = r.colors.WallColor
			}
			vector.DrawFilledRect(r.mapImage, px, py, ts, ts, fill, false)
			vector.StrokeRect(r.mapImage, px, py, ts, ts, r.colors.StrokeWidth, r.colors.GridLineColor, false)
		}
	}
	r.drawLabel(r.mapImage, entry, "IN")
	r.drawLabel(r.mapImage, exit, "OUT")
}

func (r *GridRenderer) drawLabel(target *ebiten.Image, c geom.Cell, label string) {
	x, y := r.layout.CellCenter(c)
	bounds := text.BoundString(r.fontFace, label)
	w, h := bounds.Dx(), bounds.Dy()
	text.Draw(target, label, r.fontFace, int(x)-w/2, int(y)+h/2, r.colors.TextLightColor)
}

// Draw renders the background, the blockers, the shared route and then
// the enemies through renderSystem.
func (r *GridRenderer) Draw(screen *ebiten.Image, blockers []geom.Cell, route grid.Route, renderSystem *system.RenderSystem) {
	screen.DrawImage(r.mapImage, nil)

	ts := float32(r.layout.TileSize)
	inset := float32(config.BlockerInsetPx)
	for _, c := range blockers {
		px, py := r.layout.CellOrigin(c)
		vector.DrawFilledRect(screen, px+inset, py+inset, ts-2*inset, ts-2*inset, r.colors.BlockerColor, false)
		vector.StrokeRect(screen, px+inset, py+inset, ts-2*inset, ts-2*inset, 2, DarkenColor(r.colors.BlockerColor), false)
	}

	r.drawRoute(screen, route)

	if renderSystem != nil {
		renderSystem.Draw(screen)
	}
}

func (r *GridRenderer) drawRoute(screen *ebiten.Image, route grid.Route) {
	for i := 0; i < route.Len(); i++ {
		x, y := r.layout.CellCenter(route.At(i))
		if i > 0 {
			px, py := r.layout.CellCenter(route.At(i - 1))
			vector.StrokeLine(screen, px, py, x, y, 2, r.colors.RouteColor, true)
		}
		vector.DrawFilledCircle(screen, x, y, config.RouteDotRadiusPx, r.colors.RouteColor, true)
	}
}
