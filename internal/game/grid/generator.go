package grid

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/samber/lo"

	"github.com/cory-johannsen/wordgrid/internal/game/random"
)

// Sentinel errors for invalid generation parameters.
var (
	ErrInvalidSide          = errors.New("grid: invalid side length")
	ErrInvalidVowels        = errors.New("grid: invalid vowel count")
	ErrInvalidMaxDuplicates = errors.New("grid: invalid max duplicates")
)

// Retry caps for the bounded loops in Generate.
const (
	// maxPositionAttempts bounds re-draws of a vowel position that landed on
	// a filled cell. On exhaustion the first empty cell of the region is used.
	maxPositionAttempts = 64
	// maxPartnerAttempts bounds re-draws of a shuffle partner that landed on a
	// vowel cell. On exhaustion the tile is left in place.
	maxPartnerAttempts = 64
)

// Params controls grid generation.
type Params struct {
	// Side is the side length; one of Sides.
	Side int
	// Vowels is the number of vowels anchored in the grid.
	Vowels int
	// MaxDuplicates is the soft cap on occurrences of a single letter.
	MaxDuplicates int
}

// DefaultVowels returns the vowel count heuristic 2*side-3.
func DefaultVowels(side int) int {
	return 2*side - 3
}

// DefaultParams returns the default parameters for side.
func DefaultParams(side int) Params {
	return Params{Side: side, Vowels: DefaultVowels(side), MaxDuplicates: 2}
}

// Validate checks p against the generator's preconditions.
//
// Postcondition: Returns nil or an error wrapping one of the sentinel errors.
func (p Params) Validate() error {
	if err := validateSide(p.Side); err != nil {
		return err
	}
	tiles := p.Side * p.Side
	if p.Vowels < 1 || p.Vowels > tiles {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidVowels, p.Vowels, tiles)
	}
	if p.MaxDuplicates < 1 {
		return fmt.Errorf("%w: got %d, want >= 1", ErrInvalidMaxDuplicates, p.MaxDuplicates)
	}
	return nil
}

// pool is the weighted letter pool: each letter repeated round(percent*10)
// times, in A..Z order.
var pool = buildPool(frequencies)

func buildPool(table []LetterWeight) []string {
	var out []string
	for _, lw := range table {
		n := int(math.Round(lw.Percent * 10))
		for i := 0; i < n; i++ {
			out = append(out, lw.Letter)
		}
	}
	return out
}

// PoolSize returns the number of entries in the weighted letter pool.
func PoolSize() int {
	return len(pool)
}

// GenerateFromSeed builds a grid from p using a fresh generator seeded with seed.
//
// Precondition: seed must be non-nil.
// Postcondition: Identical (p, seed) pairs always yield identical grids.
func GenerateFromSeed(p Params, seed *big.Int) (Grid, error) {
	return Generate(p, random.NewLCG(seed))
}

// Generate builds a grid from p, drawing every random choice from src.
//
// Vowels are placed first, one per contiguous region of the index space.
// The remaining cells are filled in index order from the weighted pool,
// skipping vowels. Finally the non-vowel cells are shuffled; vowel cells
// never move.
//
// MaxDuplicates is a soft cap: when a bounded retry loop runs out of
// attempts the last candidate is kept even if it exceeds the cap.
//
// Precondition: src must be non-nil and exclusively owned for the call.
// Postcondition: Returns a Grid satisfying its invariants, or a parameter error.
func Generate(p Params, src random.Source) (Grid, error) {
	if err := p.Validate(); err != nil {
		return Grid{}, err
	}

	b := newBuilder(p, src)
	b.placeVowels()
	b.fill()
	b.shuffle()

	return Grid{Side: p.Side, Letters: b.letters, VowelIndices: b.vowelIndices}, nil
}

// builder holds the mutable state of one Generate call.
type builder struct {
	p            Params
	src          random.Source
	letters      []string
	counts       map[string]int
	vowelIndices []int
}

func newBuilder(p Params, src random.Source) *builder {
	return &builder{
		p:       p,
		src:     src,
		letters: make([]string, p.Side*p.Side),
		counts:  make(map[string]int),
	}
}

func (b *builder) atCap(letter string) bool {
	return b.counts[letter] >= b.p.MaxDuplicates
}

func (b *builder) place(i int, letter string) {
	b.letters[i] = letter
	b.counts[letter]++
}

// placeVowels anchors one vowel in each region.
func (b *builder) placeVowels() {
	tiles := len(b.letters)
	regionSize := tiles / b.p.Vowels

	for v := 0; v < b.p.Vowels; v++ {
		start := v * regionSize
		end := (v + 1) * regionSize
		if v == b.p.Vowels-1 {
			end = tiles
		}

		idx := b.vowelPosition(start, end)

		vowel := vowels[b.src.Intn(len(vowels))]
		for attempts := 0; b.atCap(vowel) && attempts < len(vowels); attempts++ {
			vowel = vowels[b.src.Intn(len(vowels))]
		}

		b.place(idx, vowel)
		b.vowelIndices = append(b.vowelIndices, idx)
	}
}

// vowelPosition draws an empty cell in [start, end).
func (b *builder) vowelPosition(start, end int) int {
	idx := start + b.src.Intn(end-start)
	for attempts := 0; b.letters[idx] != ""; attempts++ {
		if attempts >= maxPositionAttempts {
			return b.firstEmpty(start, end)
		}
		idx = start + b.src.Intn(end-start)
	}
	return idx
}

func (b *builder) firstEmpty(start, end int) int {
	for i := start; i < end; i++ {
		if b.letters[i] == "" {
			return i
		}
	}
	// Regions are disjoint and each receives one vowel, so a region always
	// has an empty cell when its vowel is placed.
	panic("grid: no empty cell in vowel region")
}

// fill places a pool letter in every empty cell, in index order.
func (b *builder) fill() {
	for i := range b.letters {
		if b.letters[i] != "" {
			continue
		}
		b.place(i, b.pickConsonant())
	}
}

// pickConsonant draws from the pool, re-drawing while the letter is a vowel
// or at the cap. After more than 2*len(pool) re-draws the current letter is
// returned as is.
func (b *builder) pickConsonant() string {
	maxAttempts := 2 * len(pool)
	letter := pool[b.src.Intn(len(pool))]
	attempts := 0
	for IsVowel(letter) || b.atCap(letter) {
		letter = pool[b.src.Intn(len(pool))]
		attempts++
		if attempts > maxAttempts {
			break
		}
	}
	return letter
}

// shuffle runs a Fisher–Yates pass over the non-vowel cells.
func (b *builder) shuffle() {
	for i := len(b.letters) - 1; i > 0; i-- {
		if b.isVowelIndex(i) {
			continue
		}
		j, ok := b.shufflePartner(i)
		if !ok {
			continue
		}
		b.letters[i], b.letters[j] = b.letters[j], b.letters[i]
	}
}

// shufflePartner draws a non-vowel index in [0, i]. It reports false when
// every attempt landed on a vowel cell.
func (b *builder) shufflePartner(i int) (int, bool) {
	j := b.src.Intn(i + 1)
	for attempts := 0; b.isVowelIndex(j); attempts++ {
		if attempts >= maxPartnerAttempts {
			return 0, false
		}
		j = b.src.Intn(i + 1)
	}
	return j, true
}

func (b *builder) isVowelIndex(i int) bool {
	return lo.Contains(b.vowelIndices, i)
}
