package grid

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wordgrid/internal/game/random"
)

func TestBuildPool_Weights(t *testing.T) {
	counts := lo.CountValues(pool)
	assert.Equal(t, 82, counts["A"])
	assert.Equal(t, 127, counts["E"])
	assert.Equal(t, 2, counts["J"], "0.15*10 rounds half up")
	assert.Equal(t, 8, counts["K"])
	assert.Equal(t, 1, counts["Q"], "rare letters must not round to zero")
	assert.Equal(t, 1, counts["Z"])
	assert.Equal(t, "A", pool[0])
	assert.Equal(t, "Z", pool[len(pool)-1])
}

// TestShuffle_KeepsVowelsInPlace checks that the shuffle phase neither moves
// nor overwrites vowel cells, and only permutes the other letters.
func TestShuffle_KeepsVowelsInPlace(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		side := rapid.SampledFrom(Sides).Draw(rt, "side")
		seed := rapid.Uint64Range(1, 1<<40).Draw(rt, "seed")
		p := DefaultParams(side)

		b := newBuilder(p, random.NewLCGFromUint64(seed))
		b.placeVowels()
		b.fill()

		before := append([]string(nil), b.letters...)
		b.shuffle()

		for _, i := range b.vowelIndices {
			assert.Equal(rt, before[i], b.letters[i], "vowel at %d moved", i)
		}
		assert.ElementsMatch(rt, before, b.letters, "shuffle must be a permutation")
	})
}

func TestShufflePartner_GivesUpOnAllVowelDraws(t *testing.T) {
	b := newBuilder(Params{Side: 4, Vowels: 1, MaxDuplicates: 2}, fixed(0))
	b.vowelIndices = []int{0}
	_, ok := b.shufflePartner(5)
	assert.False(t, ok)
}

func TestVowelPosition_FallsBackToFirstEmpty(t *testing.T) {
	b := newBuilder(Params{Side: 4, Vowels: 1, MaxDuplicates: 2}, fixed(0))
	b.letters[0] = "X"
	b.letters[1] = "Y"
	assert.Equal(t, 2, b.vowelPosition(0, 4))
}

type fixed int

func (f fixed) Intn(n int) int { return int(f) % n }
