// Package entropy provides the simulation's randomness source. Everything
// stochastic (loot, map jitter) draws from one seeded generator so a run
// replays identically from its seed.
package entropy

import "math/rand/v2"

// Source is a seeded random stream.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a deterministic source from a seed.
func NewSource(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Intn returns a random int in [0, n). n must be > 0.
func (s *Source) Intn(n int) int {
	return s.rng.IntN(n)
}
