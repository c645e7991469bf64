// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator shows the current phase as a colored circle. Clicking it
// in the build phase starts the next wave.
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.Color) {
	elapsed := time.Since(i.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1, color.White, true)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	return insideCircle(float32(x), float32(y), i.X, i.Y, i.Radius)
}

// HandleClick запускает анимацию нажатия
func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}

func insideCircle(px, py, cx, cy, r float32) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
}
