// internal/component/combat.go
package component

import "go-grid-defense/pkg/utils"

// Health - компонент здоровья
type Health struct {
	Value float64
	Max   float64
}

// Fraction returns the remaining health in [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return utils.Clamp(h.Value/h.Max, 0, 1)
}
