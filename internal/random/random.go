// Package random holds the single random-choice primitive every clue decision
// reduces to, plus the uniform helpers built on the same source.
package random

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Source interface {
	IntN(n int) int
	Float64() float64
}

type Selector struct {
	src Source
}

func New(src Source) *Selector {
	if src == nil {
		panic("random: nil source")
	}
	return &Selector{src: src}
}

// NewSeeded returns a Selector over a PCG source. A zero seed is replaced by
// the current time.
func NewSeeded(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Select returns an index with probability proportional to its weight.
// Weights need not be normalized. Empty input, a negative weight or a zero
// total is a programming error and panics.
func (s *Selector) Select(weights []float64) int {
	if len(weights) == 0 {
		panic("random: select from empty weights")
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			panic(fmt.Sprintf("random: negative weight %v at index %d", w, i))
		}
		total += w
	}
	if total <= 0 {
		panic("random: select with zero total weight")
	}
	if len(weights) == 1 {
		return 0
	}

	draw := s.src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if draw < cumulative {
			return i
		}
	}

	// Float rounding can leave draw == total; fall back to the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

func (s *Selector) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn with non-positive n")
	}
	return s.src.IntN(n)
}

// Percent draws uniformly from [0, 100).
func (s *Selector) Percent() float64 {
	return s.src.Float64() * 100
}

// Chance reports whether a roll succeeds against a percentage. Non-positive
// percentages never succeed.
func (s *Selector) Chance(percent float64) bool {
	return percent > 0 && s.Percent() < percent
}

// Permutation returns a uniformly shuffled slice of 0..n-1.
func (s *Selector) Permutation(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.src.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
