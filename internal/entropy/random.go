// Package entropy provides the seeded random source shared by every stochastic
// step of a simulation run. One Source per run keeps runs reproducible.
package entropy

import (
	"math/rand"
	"time"
)

// Source is a seeded pseudo-random source. It is not safe for concurrent use;
// the simulation is single-threaded.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New creates a source from an explicit seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewFromTime creates a source seeded from the wall clock. The chosen seed is
// available via Seed so the run can be replayed.
func NewFromTime() *Source {
	return New(time.Now().UnixNano())
}

// Seed returns the seed this source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform float64 in [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	return low + s.rng.Float64()*(high-low)
}

// Shuffle randomly permutes n elements using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}
