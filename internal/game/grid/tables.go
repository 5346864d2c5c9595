package grid

// LetterWeight is one row of the letter frequency table.
type LetterWeight struct {
	Letter  string
	Percent float64
}

// frequencies holds the relative frequency (percent) of letters in English
// text, in A..Z order. Pool construction iterates it in this order.
var frequencies = []LetterWeight{
	{"A", 8.2}, {"B", 1.5}, {"C", 2.8}, {"D", 4.3}, {"E", 12.7}, {"F", 2.2},
	{"G", 2.0}, {"H", 6.1}, {"I", 7.0}, {"J", 0.15}, {"K", 0.77}, {"L", 4.0},
	{"M", 2.4}, {"N", 6.7}, {"O", 7.5}, {"P", 1.9}, {"Q", 0.095}, {"R", 6.0},
	{"S", 6.3}, {"T", 9.1}, {"U", 2.8}, {"V", 0.98}, {"W", 2.4}, {"X", 0.15},
	{"Y", 2.0}, {"Z", 0.074},
}

// values holds the standard Scrabble point value of each letter.
var values = map[string]int{
	"A": 1, "B": 3, "C": 3, "D": 2, "E": 1, "F": 4, "G": 2, "H": 4,
	"I": 1, "J": 8, "K": 5, "L": 1, "M": 3, "N": 1, "O": 1, "P": 3,
	"Q": 10, "R": 1, "S": 1, "T": 1, "U": 1, "V": 4, "W": 4, "X": 8,
	"Y": 4, "Z": 10,
}

// vowels is the fixed vowel set, in draw order.
var vowels = []string{"A", "E", "I", "O", "U"}

// Frequencies returns a copy of the letter frequency table in A..Z order.
func Frequencies() []LetterWeight {
	out := make([]LetterWeight, len(frequencies))
	copy(out, frequencies)
	return out
}

// Value returns the point value of an uppercase letter and whether the letter
// is in the table.
func Value(letter string) (int, bool) {
	v, ok := values[letter]
	return v, ok
}

// Vowels returns a copy of the vowel set.
func Vowels() []string {
	out := make([]string, len(vowels))
	copy(out, vowels)
	return out
}

// IsVowel reports whether letter is one of A, E, I, O, U.
func IsVowel(letter string) bool {
	switch letter {
	case "A", "E", "I", "O", "U":
		return true
	}
	return false
}
