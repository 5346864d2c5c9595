// Package session tracks individual games: the board, the player's current
// selection path and the words scored so far.
package session

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/seed"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
)

// SelectOutcome reports what a call to Select did.
type SelectOutcome int

const (
	// Selected means the tile was appended to the path.
	Selected SelectOutcome = iota
	// Deselected means the tile was the last one on the path and was removed.
	Deselected
	// OutOfRange means the index is not on the board.
	OutOfRange
	// NotAdjacent means the tile does not touch the last selected tile.
	NotAdjacent
)

// String returns a short description of the outcome.
func (o SelectOutcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case OutOfRange:
		return "out of range"
	case NotAdjacent:
		return "not adjacent"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Accepted reports whether the path changed.
func (o SelectOutcome) Accepted() bool {
	return o == Selected || o == Deselected
}

// ScoredWord is one accepted word and its points.
type ScoredWord struct {
	Word  string `json:"word" yaml:"word"`
	Score int    `json:"score" yaml:"score"`
}

// SubmitResult is the outcome of submitting the current path.
type SubmitResult struct {
	Word   string `json:"word"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
	Score  int    `json:"score"`
}

// View is a point-in-time copy of a session's state.
type View struct {
	ID          string       `json:"id"`
	SeedInput   string       `json:"seed_input"`
	Seed        string       `json:"seed"`
	Grid        grid.Grid    `json:"grid"`
	Path        []int        `json:"path"`
	Counts      []int        `json:"counts"`
	Word        string       `json:"word"`
	ScoredWords []ScoredWord `json:"scored_words"`
	TotalScore  int          `json:"total_score"`
}

// Session is a single game. All methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	params    grid.Params
	validator *word.Validator
	now       func() time.Time

	seedInput string
	seed      *big.Int
	board     grid.Grid
	path      []int
	counts    []int
	scored    []ScoredWord
}

// New creates a session and generates its board from seedInput. An empty
// seedInput is replaced by the current time in milliseconds.
//
// Precondition: validator must be non-nil.
// Postcondition: Returns a session with an empty path and no scored words, or
// an error if params are invalid.
func New(id, seedInput string, params grid.Params, validator *word.Validator) (*Session, error) {
	return newSession(id, seedInput, params, validator, time.Now)
}

func newSession(id, seedInput string, params grid.Params, validator *word.Validator, now func() time.Time) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:        id,
		params:    params,
		validator: validator,
		now:       now,
	}
	if err := s.reset(seedInput); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Select applies a tile selection.
//
// Choosing the last tile on the path again removes it. Otherwise the tile is
// appended when the path is empty or the tile touches the last selected
// tile, including diagonally. A tile may appear on the path more than once as
// long as the repeats are not consecutive.
//
// Postcondition: The path changes only when the outcome is Selected or Deselected.
func (s *Session) Select(i int) SelectOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.board.InRange(i) {
		return OutOfRange
	}
	if n := len(s.path); n > 0 {
		last := s.path[n-1]
		if i == last {
			s.popLocked()
			return Deselected
		}
		if !s.board.Adjacent(last, i) {
			return NotAdjacent
		}
	}
	s.path = append(s.path, i)
	s.counts[i]++
	return Selected
}

// Deselect removes the last tile from the path.
//
// Postcondition: Returns false when the path was already empty.
func (s *Session) Deselect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.path) == 0 {
		return false
	}
	s.popLocked()
	return true
}

// Clear empties the path.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearPathLocked()
}

// Submit validates the word spelled by the path and scores it.
//
// Postcondition: The path is empty. On success the word is appended to the
// scored words.
func (s *Session) Submit() SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.clearPathLocked()

	w := s.board.Word(s.path)
	if w != "" && s.hasScoredLocked(w) {
		return SubmitResult{Word: w, Reason: word.ReasonAlreadyScored}
	}
	res := s.validator.Validate(w)
	out := SubmitResult{Word: w, Valid: res.Valid, Reason: res.Reason}
	if res.Valid {
		out.Score = word.Score(w)
		s.scored = append(s.scored, ScoredWord{Word: w, Score: out.Score})
	}
	return out
}

// Reset starts a new game on the same session. An empty seedInput is replaced
// by the current time in milliseconds.
//
// Postcondition: On success the board is regenerated and the path and scored
// words are cleared. On error the session is unchanged.
func (s *Session) Reset(seedInput string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(seedInput)
}

func (s *Session) reset(seedInput string) error {
	if seedInput == "" {
		seedInput = seed.FromTime(s.now())
	}
	n := seed.FromString(seedInput)
	board, err := grid.GenerateFromSeed(s.params, n)
	if err != nil {
		return fmt.Errorf("generating board for seed %q: %w", seedInput, err)
	}
	s.seedInput = seedInput
	s.seed = n
	s.board = board
	s.path = nil
	s.counts = make([]int, board.TileCount())
	s.scored = nil
	return nil
}

// Grid returns a copy of the current board.
func (s *Session) Grid() grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Path returns a copy of the selected indices in order.
func (s *Session) Path() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.path...)
}

// Counts returns a copy of how many times each tile appears on the path.
func (s *Session) Counts() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.counts...)
}

// Word returns the word spelled by the current path.
func (s *Session) Word() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Word(s.path)
}

// ScoredWords returns a copy of the accepted words in the order scored.
func (s *Session) ScoredWords() []ScoredWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScoredWord(nil), s.scored...)
}

// TotalScore returns the sum of all scored words.
func (s *Session) TotalScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// SeedInput returns the seed text the board was generated from.
func (s *Session) SeedInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedInput
}

// Seed returns the numeric seed the board was generated from.
func (s *Session) Seed() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.seed)
}

// Snapshot returns a consistent copy of the whole session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:          s.id,
		SeedInput:   s.seedInput,
		Seed:        s.seed.String(),
		Grid:        s.board.Clone(),
		Path:        append([]int{}, s.path...),
		Counts:      append([]int{}, s.counts...),
		Word:        s.board.Word(s.path),
		ScoredWords: append([]ScoredWord{}, s.scored...),
		TotalScore:  s.totalLocked(),
	}
}

func (s *Session) popLocked() {
	last := s.path[len(s.path)-1]
	s.path = s.path[:len(s.path)-1]
	s.counts[last]--
}

func (s *Session) clearPathLocked() {
	s.path = nil
	for i := range s.counts {
		s.counts[i] = 0
	}
}

func (s *Session) hasScoredLocked(w string) bool {
	return lo.ContainsBy(s.scored, func(sw ScoredWord) bool {
		return strings.EqualFold(sw.Word, w)
	})
}

func (s *Session) totalLocked() int {
	return lo.SumBy(s.scored, func(sw ScoredWord) int { return sw.Score })
}
