package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTile is returned for a tile label that does not name a tile.
var ErrInvalidTile = errors.New("invalid tile")

// TileLabel returns the label of tile i on a board of the given side: the
// column letter followed by the 1-based row number, e.g. "b3".
//
// Precondition: 0 <= i < side*side.
func TileLabel(i, side int) string {
	return fmt.Sprintf("%c%d", 'a'+rune(i%side), i/side+1)
}

// ColumnLetter returns the label letter of column col.
func ColumnLetter(col int) string {
	return string('a' + rune(col))
}

// ParseTile converts a label such as "b3" or "B3" to a tile index.
//
// Postcondition: Returns an index in [0, side*side), or an error wrapping ErrInvalidTile.
func ParseTile(label string, side int) (int, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if len(l) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTile, label)
	}
	col := int(l[0]) - 'a'
	if col < 0 || col >= side {
		return 0, fmt.Errorf("%w: %q: column must be a..%s", ErrInvalidTile, label, ColumnLetter(side-1))
	}
	row, err := strconv.Atoi(l[1:])
	if err != nil || row < 1 || row > side {
		return 0, fmt.Errorf("%w: %q: row must be 1..%d", ErrInvalidTile, label, side)
	}
	return (row-1)*side + col, nil
}

// ParseTiles converts every label in args to a tile index. Labels may be
// separated by spaces or commas.
//
// Postcondition: Returns the indices in order, or the first error encountered.
func ParseTiles(args []string, side int) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, label := range strings.Split(arg, ",") {
			if strings.TrimSpace(label) == "" {
				continue
			}
			i, err := ParseTile(label, side)
			if err != nil {
				return nil, err
			}
			out = append(out, i)
		}
	}
	return out, nil
}
