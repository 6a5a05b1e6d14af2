// Package random defines the injectable random source used by every
// generator so that a fixed seed reproduces a level exactly.
package random

import "math/rand"

// Source draws uniform random numbers.
type Source interface {
	// Uniform returns a float in [min, max).
	Uniform(min, max float64) float64
	// UniformInt returns an int in [min, maxExclusive).
	UniformInt(min, maxExclusive int) int
}

// Rand adapts a *rand.Rand to Source.
type Rand struct {
	r *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// FromRand wraps an existing generator.
func FromRand(r *rand.Rand) *Rand {
	return &Rand{r: r}
}

// Uniform returns a float in [min, max). If max <= min it returns min.
func (s *Rand) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

// UniformInt returns an int in [min, maxExclusive). If the range is empty it
// returns min.
func (s *Rand) UniformInt(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	return min + s.r.Intn(maxExclusive-min)
}
