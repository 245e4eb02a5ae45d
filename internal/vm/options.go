package vm

import (
	"math/rand/v2"
)

// Options controls behavior differences between CHIP-8 interpreters.
type Options struct {
	// CarrySetOnly only ever sets VF for 8XY4, 8XY5, 8XY7 and FX1E and leaves it
	// untouched when no carry or borrow occurred, as some early interpreters do.
	CarrySetOnly bool

	// ShiftLeftMSB sets VF to the shifted out most significant bit for 8XYE.
	// When disabled VF is set if the register was non-zero before the shift.
	ShiftLeftMSB bool

	// Random returns the random byte used by CXNN, a default source is used if nil.
	Random func() byte
}

// DefaultOptions returns the default VM options.
func DefaultOptions() Options {
	return Options{}
}

// SeededRandom returns a deterministic random byte source for the given seed.
func SeededRandom(seed uint64) func() byte {
	rng := rand.New(rand.NewPCG(seed, seed))
	return func() byte {
		return byte(rng.UintN(256))
	}
}

func defaultRandom() byte {
	return byte(rand.UintN(256))
}
