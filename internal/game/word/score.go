package word

import (
	"strings"

	"github.com/cory-johannsen/wordgrid/internal/game/grid"
)

// Score sums the letter values of w. Characters without a value add nothing.
func Score(w string) int {
	total := 0
	for _, r := range strings.ToUpper(w) {
		if v, ok := grid.Value(string(r)); ok {
			total += v
		}
	}
	return total
}
