// Package rng provides the deterministic random source threaded through a
// map generation run.
package rng

import "math/rand/v2"

// MaxSeed is the largest accepted seed.
const MaxSeed = int64(^uint32(0) >> 1)

// Rand is a thin wrapper around a PCG-backed math/rand/v2 generator.
type Rand struct {
	r *rand.Rand
}

// New creates a deterministic generator for seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Intn returns a value in [0, n). It returns 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance reports true with probability pct/100.
func (r *Rand) Chance(pct int) bool {
	return r.Intn(100) < pct
}
