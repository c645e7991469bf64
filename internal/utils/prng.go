// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"go-grid-defense/pkg/geom"
)

// PRNGService - обертка над генератором случайных чисел, чтобы
// симуляция с одинаковым сидом вела себя одинаково.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService создает сервис с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed actually in use.
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// ShuffleCells permutes cells in place.
func (s *PRNGService) ShuffleCells(cells []geom.Cell) {
	s.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
}
