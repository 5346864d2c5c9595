// Package random provides the deterministic randomness used to build grids.
package random

import "math/big"

// Park–Miller "minimal standard" constants.
const (
	Multiplier = 48271
	Modulus    = 2147483647
)

// Source is the randomness provider for grid generation.
type Source interface {
	// Intn returns a non-negative int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// LCG is a Park–Miller linear congruential generator.
//
// Invariant: state is always in [0, Modulus).
// An LCG is not safe for concurrent use; the order of draws is part of the
// contract, so callers own a generator exclusively.
type LCG struct {
	state uint64
}

var bigModulus = big.NewInt(Modulus)

// NewLCG returns a generator seeded with seed.
//
// The seed is reduced modulo Modulus up front. For non-negative seeds this
// produces exactly the sequence of the unreduced recurrence; negative seeds
// are mapped into range rather than yielding negative draws.
//
// Precondition: seed must be non-nil.
// Postcondition: Two generators built from equal seeds produce equal sequences.
func NewLCG(seed *big.Int) *LCG {
	s := new(big.Int).Mod(seed, bigModulus)
	return &LCG{state: s.Uint64()}
}

// NewLCGFromUint64 is NewLCG for seeds that fit in a uint64.
func NewLCGFromUint64(seed uint64) *LCG {
	return &LCG{state: seed % Modulus}
}

// Next advances the generator and returns the new state.
//
// Postcondition: return value is in [0, Modulus).
func (g *LCG) Next() uint64 {
	g.state = g.state * Multiplier % Modulus
	return g.state
}

// Intn advances the generator and returns the new state reduced into [0, n).
//
// Precondition: n > 0. Panics with "random: Intn called with n <= 0" otherwise.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	return int(g.Next() % uint64(n))
}
