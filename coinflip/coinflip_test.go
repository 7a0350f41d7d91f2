package coinflip_test

import (
	"math"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL
	"pgregory.net/rapid"

	"github.com/toejough/doubleexamples/coinflip"
)

func TestFlipCoin_YieldingHeads(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// GIVEN:
	rng := MockRng()
	rng.Float64.ReturnValue(0.25)

	// WHEN:
	flip := coinflip.FlipCoin(rng.Interface())

	// THEN:
	g.Expect(flip).To(Equal(coinflip.Heads))
	g.Expect(rng.Float64.Called()).To(BeTrue())
	rng.Float64.ExpectCalledTimes(t, 1)
}

func TestFlipCoin_YieldingTails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// GIVEN:
	rng := MockRng()
	rng.Float64.ReturnValue(0.75)

	// WHEN:
	flip := coinflip.FlipCoin(rng.Interface())

	// THEN:
	g.Expect(flip).To(Equal(coinflip.Tails))
	g.Expect(rng.Float64.Called()).To(BeTrue())
	rng.Float64.ExpectCalledTimes(t, 1)
}

func TestFlipCoin_Boundaries(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		draw float64
		want coinflip.Flip
	}{
		{"lowest draw", 0, coinflip.Heads},
		{"just below half", math.Nextafter(0.5, 0), coinflip.Heads},
		{"exactly half", 0.5, coinflip.Tails},
		{"highest draw", math.Nextafter(1, 0), coinflip.Tails},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			rng := MockRng()
			rng.Float64.ReturnValue(tc.draw)

			g.Expect(coinflip.FlipCoin(rng.Interface())).To(Equal(tc.want))
		})
	}
}

func TestFlipCoin_UnconfiguredRngDrawsZero(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rng := MockRng()

	g.Expect(coinflip.FlipCoin(rng.Interface())).To(Equal(coinflip.Heads))
}

func TestFlipCoin_BelowHalfIsHeads_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		draw := rapid.Float64Range(0, 0.5).Filter(func(v float64) bool { return v < 0.5 }).Draw(rt, "draw")

		rng := MockRng()
		rng.Float64.ReturnValue(draw)

		if flip := coinflip.FlipCoin(rng.Interface()); flip != coinflip.Heads {
			rt.Fatalf("draw %v flipped %v, want heads", draw, flip)
		}

		if n := rng.Float64.NumCalls(); n != 1 {
			rt.Fatalf("drew %d times, want 1", n)
		}
	})
}

func TestFlipCoin_HalfAndAboveIsTails_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		draw := rapid.Float64Range(0.5, 1).Filter(func(v float64) bool { return v < 1 }).Draw(rt, "draw")

		rng := MockRng()
		rng.Float64.ReturnValue(draw)

		if flip := coinflip.FlipCoin(rng.Interface()); flip != coinflip.Tails {
			rt.Fatalf("draw %v flipped %v, want tails", draw, flip)
		}
	})
}

func TestFlipCoins_UsesDrawsInOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rng := MockRng()
	rng.Float64.ReturnValues(0.1, 0.9, 0.4, 0.5)

	flips := coinflip.FlipCoins(rng.Interface(), 4)

	g.Expect(flips).To(Equal([]coinflip.Flip{coinflip.Heads, coinflip.Tails, coinflip.Heads, coinflip.Tails}))
	rng.Float64.ExpectCalledTimes(t, 4)
}

func TestFlipCoins_NonPositiveCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, -100} {
		g := NewWithT(t)

		rng := MockRng()

		flips := coinflip.FlipCoins(rng.Interface(), n)

		g.Expect(flips).NotTo(BeNil())
		g.Expect(flips).To(BeEmpty())
		g.Expect(rng.Float64.Called()).To(BeFalse())
	}
}

func TestFlipCoins_Count_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-5, 200).Draw(rt, "n")
		draw := rapid.Float64Range(0, 0.99).Draw(rt, "draw")

		rng := MockRng()
		rng.Float64.ReturnValue(draw)

		flips := coinflip.FlipCoins(rng.Interface(), n)

		if len(flips) != max(n, 0) {
			rt.Fatalf("got %d flips, want %d", len(flips), max(n, 0))
		}

		if rng.Float64.NumCalls() != max(n, 0) {
			rt.Fatalf("drew %d times, want %d", rng.Float64.NumCalls(), max(n, 0))
		}
	})
}

func TestTally(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	counts := coinflip.Tally([]coinflip.Flip{coinflip.Heads, coinflip.Tails, coinflip.Heads, coinflip.Flip(0)})

	g.Expect(counts).To(Equal(coinflip.Counts{Heads: 2, Tails: 1}))
	g.Expect(coinflip.Tally(nil)).To(BeZero())
}

func TestFlip_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(coinflip.Heads.String()).To(Equal("heads"))
	g.Expect(coinflip.Tails.String()).To(Equal("tails"))
	g.Expect(coinflip.Flip(0).String()).To(Equal("Flip(0)"))
}

func TestNewRand_SameSeedSameFlips(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first := coinflip.FlipCoins(coinflip.NewRand(42), 64)
	second := coinflip.FlipCoins(coinflip.NewRand(42), 64)

	g.Expect(first).To(Equal(second))

	counts := coinflip.Tally(first)
	g.Expect(counts.Heads + counts.Tails).To(Equal(64))
}

func TestNewRand_DrawsInUnitInterval_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		rng := coinflip.NewRand(rapid.Uint64().Draw(rt, "seed"))

		for range 16 {
			if draw := rng.Float64(); draw < 0 || draw >= 1 {
				rt.Fatalf("draw %v outside [0, 1)", draw)
			}
		}
	})
}
