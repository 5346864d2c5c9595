// Package word validates submitted words and scores them.
package word

import (
	"unicode/utf8"

	"github.com/cory-johannsen/wordgrid/internal/game/dictionary"
)

// Reasons reported by Validate and by sessions rejecting a repeat word.
const (
	ReasonEmpty         = "empty"
	ReasonTooShort      = "too short"
	ReasonBlocked       = "profane/inappropriate"
	ReasonUnknown       = "not a valid word"
	ReasonValid         = "valid word"
	ReasonAlreadyScored = "already scored"
)

// DefaultMinLength is the shortest word accepted when no option overrides it.
const DefaultMinLength = 3

// Result is the outcome of validating one word. Reason is always set.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Lookup is the subset of dictionary.Store the validator consults.
type Lookup interface {
	Contains(word string, set dictionary.Set) bool
}

// Validator checks candidate words against the loaded dictionary.
type Validator struct {
	lookup         Lookup
	minLength      int
	allowRudeWords bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithMinLength sets the minimum word length in characters. Values below 1
// are ignored.
func WithMinLength(n int) Option {
	return func(v *Validator) {
		if n >= 1 {
			v.minLength = n
		}
	}
}

// WithAllowRudeWords disables the blocklist check when allow is true.
func WithAllowRudeWords(allow bool) Option {
	return func(v *Validator) {
		v.allowRudeWords = allow
	}
}

// NewValidator creates a Validator backed by lookup.
//
// Precondition: lookup must be non-nil.
func NewValidator(lookup Lookup, opts ...Option) *Validator {
	v := &Validator{lookup: lookup, minLength: DefaultMinLength}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MinLength returns the configured minimum word length.
func (v *Validator) MinLength() int { return v.minLength }

// Validate applies the checks in order: empty, too short, blocklisted, then
// dictionary membership. Lookups are case-insensitive.
//
// Postcondition: Result.Reason is one of the Reason constants other than ReasonAlreadyScored.
func (v *Validator) Validate(w string) Result {
	switch {
	case w == "":
		return Result{Reason: ReasonEmpty}
	case utf8.RuneCountInString(w) < v.minLength:
		return Result{Reason: ReasonTooShort}
	case !v.allowRudeWords && v.lookup.Contains(w, dictionary.Blocklist):
		return Result{Reason: ReasonBlocked}
	case v.lookup.Contains(w, dictionary.Words):
		return Result{Valid: true, Reason: ReasonValid}
	default:
		return Result{Reason: ReasonUnknown}
	}
}
