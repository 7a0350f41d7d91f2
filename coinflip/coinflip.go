// Package coinflip simulates coin flips against an injectable source of
// uniform random draws, so tests can decide exactly what the coin sees.
package coinflip

import (
	"math/rand/v2"
	"strconv"
)

// Exported enums.
const (
	Heads Flip = iota + 1
	Tails
)

// Counts is the number of heads and tails in a run of flips.
type Counts struct {
	Heads int
	Tails int
}

// Flip is the outcome of a single coin flip.
type Flip int

// String returns "heads" or "tails".
func (f Flip) String() string {
	switch f {
	case Heads:
		return "heads"
	case Tails:
		return "tails"
	default:
		return "Flip(" + strconv.Itoa(int(f)) + ")"
	}
}

// Rng is a source of uniform draws in [0, 1). *rand.Rand satisfies it.
type Rng interface {
	Float64() float64
}

// FlipCoin draws once from rng and returns Heads if the draw is below one
// half, Tails otherwise.
func FlipCoin(rng Rng) Flip {
	if rng.Float64() < headsThreshold {
		return Heads
	}

	return Tails
}

// FlipCoins flips the coin n times, in order. A non-positive n yields no flips.
func FlipCoins(rng Rng, n int) []Flip {
	flips := make([]Flip, 0, max(n, 0))

	for range n {
		flips = append(flips, FlipCoin(rng))
	}

	return flips
}

// NewRand returns a PCG-backed Rng that produces the same draws for the same seed.
func NewRand(seed uint64) Rng {
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // simulation, not cryptography
}

// Tally counts the heads and tails in flips. Invalid flips are not counted.
func Tally(flips []Flip) Counts {
	var counts Counts

	for _, flip := range flips {
		switch flip {
		case Heads:
			counts.Heads++
		case Tails:
			counts.Tails++
		}
	}

	return counts
}

// unexported constants.
const (
	headsThreshold = 0.5
)
