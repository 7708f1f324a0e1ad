package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// RandomSeed draws a seed from the process-wide generator. It backs the
// convenience constructors that do not take an explicit seed.
func RandomSeed() int64 {
	return rand.Int64()
}

// NextSeed returns the next value of the seed sequence. Successive calls on
// RNGs built from the same seed yield the same sequence.
func (r *RNG) NextSeed() int64 {
	return r.r.Int64()
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
