// internal/ui/hud.go
package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// HUDStats is what the top bar shows each frame.
type HUDStats struct {
	Phase        string
	Lives        int
	Kills        int
	Enemies      int
	Speed        int
	BlockersLeft int // -1 means unlimited
	Paused       bool
}

// Lines formats the stats as the bar's text columns.
func (s HUDStats) Lines() []string {
	blockers := "no limit"
	if s.BlockersLeft >= 0 {
		blockers = fmt.Sprint(s.BlockersLeft)
	}
	speed := fmt.Sprintf("x%d", s.Speed)
	if s.Paused {
		speed = "paused"
	}
	return []string{
		"Phase: " + s.Phase,
		fmt.Sprintf("Lives: %d", s.Lives),
		fmt.Sprintf("Kills: %d", s.Kills),
		fmt.Sprintf("Enemies: %d", s.Enemies),
		"Blockers: " + blockers,
		"Speed: " + speed,
	}
}

// HUD is the bar across the top of the screen plus a transient message
// line used for rejected placements and reloads.
type HUD struct {
	Width, Height float32
	Face          font.Face
	Background    color.RGBA
	TextColor     color.RGBA

	message     string
	messageTill time.Time
}

func NewHUD(width, height float32, face font.Face, background, textColor color.RGBA) *HUD {
	return &HUD{Width: width, Height: height, Face: face, Background: background, TextColor: textColor}
}

// Flash shows msg for d.
func (h *HUD) Flash(msg string, d time.Duration) {
	h.message = msg
	h.messageTill = time.Now().Add(d)
}

// Message returns the message currently shown, if any.
func (h *HUD) Message() string {
	if time.Now().After(h.messageTill) {
		return ""
	}
	return h.message
}

func (h *HUD) Draw(screen *ebiten.Image, stats HUDStats) {
	vector.DrawFilledRect(screen, 0, 0, h.Width, h.Height, h.Background, false)

	const colWidth, top = 130, 22
	for i, line := range stats.Lines() {
		text.Draw(screen, line, h.Face, 16+i*colWidth, top, h.TextColor)
	}
	if msg := h.Message(); msg != "" {
		text.Draw(screen, msg, h.Face, 16, top+20, h.TextColor)
	}
}
