// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton draws the fast-forward icon; its color shows the speed
// multiplier (one color per step).
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32, stateColors []color.RGBA) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	triangleSize := b.Size * float32(scale)

	fill := b.StateColors[b.CurrentState]

	// Параметры треугольников
	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	b.drawTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, fill)
	b.drawTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, fill)
}

func (b *SpeedButton) drawTriangle(screen *ebiten.Image, x1, y1, x2, y2, x3, y3 float32, fill color.RGBA) {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = float32(fill.R) / 255
		vs[i].ColorG = float32(fill.G) / 255
		vs[i].ColorB = float32(fill.B) / 255
		vs[i].ColorA = float32(fill.A) / 255
	}
	screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})

	vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.White, true)
	vector.StrokeLine(screen, x2, y2, x3, y3, 1, color.White, true)
	vector.StrokeLine(screen, x3, y3, x1, y1, 1, color.White, true)
}

// IsClicked uses a circle around the icon as its hit area.
func (b *SpeedButton) IsClicked(x, y int) bool {
	return insideCircle(float32(x), float32(y), b.X, b.Y, b.Size*1.5)
}

// SetState shows state i, wrapping around the palette.
func (b *SpeedButton) SetState(i int) {
	if len(b.StateColors) == 0 {
		return
	}
	b.CurrentState = ((i % len(b.StateColors)) + len(b.StateColors)) % len(b.StateColors)
	b.LastClickTime = time.Now()
}

var fillImg *ebiten.Image

func whitePixel() *ebiten.Image {
	if fillImg == nil {
		fillImg = ebiten.NewImage(1, 1)
		fillImg.Fill(color.White)
	}
	return fillImg
}
