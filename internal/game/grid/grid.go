// Package grid generates deterministic letter grids and answers geometry
// questions about them.
package grid

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Sides lists the supported grid side lengths.
var Sides = []int{4, 5, 6}

// Grid is a square board of single uppercase letters stored row-major.
//
// Invariant: len(Letters) == Side*Side; every index in VowelIndices holds a vowel.
type Grid struct {
	Side         int      `json:"side" yaml:"side"`
	Letters      []string `json:"letters" yaml:"letters"`
	VowelIndices []int    `json:"vowel_indices" yaml:"vowel_indices"`
}

// TileCount returns Side*Side.
func (g Grid) TileCount() int {
	return g.Side * g.Side
}

// Clone returns a copy of g that shares no slices with it.
func (g Grid) Clone() Grid {
	return Grid{
		Side:         g.Side,
		Letters:      append([]string(nil), g.Letters...),
		VowelIndices: append([]int(nil), g.VowelIndices...),
	}
}

// InRange reports whether i is a valid tile index.
func (g Grid) InRange(i int) bool {
	return i >= 0 && i < len(g.Letters)
}

// RowCol returns the zero-based row and column of index i.
//
// Precondition: g.Side > 0.
func (g Grid) RowCol(i int) (row, col int) {
	return i / g.Side, i % g.Side
}

// Index returns the linear index of (row, col).
//
// Precondition: 0 <= row, col < g.Side.
func (g Grid) Index(row, col int) int {
	return row*g.Side + col
}

// Adjacent reports whether tiles a and b touch horizontally, vertically or
// diagonally. A tile is not adjacent to itself.
func (g Grid) Adjacent(a, b int) bool {
	return Adjacent(g.Side, a, b)
}

// Adjacent reports whether indices a and b are 8-directionally adjacent on a
// grid of the given side length.
//
// Precondition: side > 0.
func Adjacent(side, a, b int) bool {
	ar, ac := a/side, a%side
	br, bc := b/side, b%side
	if ar == br && ac == bc {
		return false
	}
	return abs(ar-br) <= 1 && abs(ac-bc) <= 1
}

// Letter returns the letter at index i.
//
// Precondition: g.InRange(i).
func (g Grid) Letter(i int) string {
	return g.Letters[i]
}

// Word concatenates the letters along path.
//
// Precondition: every index in path is in range.
func (g Grid) Word(path []int) string {
	var b strings.Builder
	for _, i := range path {
		b.WriteString(g.Letters[i])
	}
	return b.String()
}

// Row returns the letters of row r.
func (g Grid) Row(r int) []string {
	return g.Letters[r*g.Side : (r+1)*g.Side]
}

// String renders the grid as space-separated rows.
func (g Grid) String() string {
	rows := make([]string, 0, g.Side)
	for r := 0; r < g.Side; r++ {
		rows = append(rows, strings.Join(g.Row(r), " "))
	}
	return strings.Join(rows, "\n")
}

// ValidSide reports whether side is a supported side length.
func ValidSide(side int) bool {
	return lo.Contains(Sides, side)
}

func validateSide(side int) error {
	if !ValidSide(side) {
		return fmt.Errorf("%w: got %d, want one of %v", ErrInvalidSide, side, Sides)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
