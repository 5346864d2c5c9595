// Package seed derives the numeric game seed from free-form player input.
package seed

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"
)

// integerLiteral matches inputs that are used verbatim as the seed.
var integerLiteral = regexp.MustCompile(`^-?[0-9]+$`)

// FromString converts input into a seed.
//
// A trimmed input that is a decimal integer literal (optionally negative) is
// parsed exactly, at arbitrary precision. Any other input is folded through
// Hash; a negative hash is lifted into the unsigned 33-bit range by setting
// bit 32 on its unsigned 32-bit representation.
//
// Postcondition: Returns a non-nil seed. Identical inputs yield equal seeds.
func FromString(input string) *big.Int {
	trimmed := strings.TrimFunc(input, isTrimSpace)
	if integerLiteral.MatchString(trimmed) {
		n, ok := new(big.Int).SetString(trimmed, 10)
		if ok {
			return n
		}
	}

	h := Hash(input)
	if h >= 0 {
		return big.NewInt(int64(h))
	}
	return new(big.Int).SetUint64(uint64(uint32(h)) | 1<<32)
}

// isTrimSpace reports whether r is trimmed from seed input: the Unicode
// space separators plus tab, the line terminators, VT, FF and the BOM.
// U+0085 is not trimmed.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Hash computes the 31-multiplier polynomial hash of input over its UTF-16
// code units, wrapping with 32-bit two's-complement overflow.
func Hash(input string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(input)) {
		h = 31*h + int32(unit)
	}
	return h
}

// FromTime returns the millisecond Unix timestamp of t as a seed input.
// New games started without an explicit seed use it.
func FromTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
