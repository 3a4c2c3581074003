// Package generator produces reproducible pseudo-random integer sequences
// for benchmarking. A generator is seeded explicitly, so the same seed always
// yields the same sequence.
package generator

import (
	"math/rand/v2"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// DefaultMaxValue is the exclusive upper bound of generated values.
const DefaultMaxValue = 100

// Generator yields integers uniformly distributed in [0, MaxValue).
type Generator struct {
	seed     uint64
	maxValue int
	rng      *rand.Rand
}

// New returns a generator seeded with seed. A non-positive maxValue falls
// back to DefaultMaxValue.
func New(seed uint64, maxValue int) *Generator {
	if maxValue <= 0 {
		maxValue = DefaultMaxValue
	}
	return &Generator{
		seed:     seed,
		maxValue: maxValue,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 { return g.seed }

// MaxValue returns the exclusive upper bound of generated values.
func (g *Generator) MaxValue() int { return g.maxValue }

// Ints returns a freshly allocated sequence of n values. Successive calls
// continue the same pseudo-random stream.
func (g *Generator) Ints(n int) ([]int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("size", n, "must be non-negative")
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = g.rng.IntN(g.maxValue)
	}
	return seq, nil
}

// ClockSeed derives a seed from the wall clock, for runs where the user did
// not ask for a specific one.
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
