// Package dictionary holds the word sets consulted when validating words.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wordgrid/internal/config"
)

// Set selects one of the store's word sets.
type Set int

const (
	// Words is the set of playable words.
	Words Set = iota
	// Blocklist is the set of words rejected regardless of Words.
	Blocklist
)

// String returns the set name used in logs.
func (s Set) String() string {
	switch s {
	case Words:
		return "words"
	case Blocklist:
		return "blocklist"
	default:
		return fmt.Sprintf("set(%d)", int(s))
	}
}

// Store owns the playable-word and blocklist sets.
//
// Words are stored lowercased and trimmed. All methods are safe for
// concurrent use, so queries may run while a load is still in progress;
// words not yet loaded are simply reported as absent.
type Store struct {
	mu     sync.RWMutex
	sets   map[Set]map[string]struct{}
	logger *zap.Logger
}

// NewStore creates an empty Store.
//
// Precondition: logger must be non-nil.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		sets: map[Set]map[string]struct{}{
			Words:     make(map[string]struct{}),
			Blocklist: make(map[string]struct{}),
		},
		logger: logger,
	}
}

// Add inserts words into set after normalising them. Blank entries are
// skipped.
//
// Postcondition: Returns the number of non-blank entries processed.
func (s *Store) Add(set Set, words ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.target(set)
	n := 0
	for _, w := range words {
		w = normalize(w)
		if w == "" {
			continue
		}
		target[w] = struct{}{}
		n++
	}
	return n
}

// Contains reports whether word, case-insensitively, is in set.
func (s *Store) Contains(word string, set Set) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[set][normalize(word)]
	return ok
}

// Size returns the number of distinct words in set.
func (s *Store) Size(set Set) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets[set])
}

// Load reads every source into set, one word per line. A source that cannot
// be opened or read is logged and skipped; words read before a mid-stream
// failure are kept.
//
// Postcondition: Returns the number of words read across all sources.
func (s *Store) Load(ctx context.Context, set Set, sources ...Source) int {
	total := 0
	for _, src := range sources {
		if src == nil {
			continue
		}
		start := time.Now()
		words, err := readWords(ctx, src)
		n := s.Add(set, words...)
		total += n
		if err != nil {
			s.logger.Warn("word list failed to load",
				zap.String("source", src.Name()),
				zap.Stringer("set", set),
				zap.Int("words", n),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("word list loaded",
			zap.String("source", src.Name()),
			zap.Stringer("set", set),
			zap.Int("words", n),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return total
}

// LoadConfig loads the standard dictionary and custom additions into Words,
// then the blocklist into Blocklist. Sources are fetched one after another.
//
// Postcondition: The store holds whatever could be loaded; failures are logged only.
func (s *Store) LoadConfig(ctx context.Context, cfg config.DictionaryConfig) {
	opts := SourceOptions{
		Attempts: cfg.FetchAttempts,
		Delay:    cfg.FetchDelay,
		Logger:   s.logger,
	}
	if cfg.FetchTimeout > 0 {
		opts.Client = &http.Client{Timeout: cfg.FetchTimeout}
	}

	s.Load(ctx, Words, NewSource(cfg.Standard, opts), NewSource(cfg.Custom, opts))
	s.Load(ctx, Blocklist, NewSource(cfg.Blocklist, opts))

	s.logger.Info("dictionary ready",
		zap.Int("words", s.Size(Words)),
		zap.Int("blocklist", s.Size(Blocklist)),
	)
}

func (s *Store) target(set Set) map[string]struct{} {
	m, ok := s.sets[set]
	if !ok {
		m = make(map[string]struct{})
		s.sets[set] = m
	}
	return m
}

func readWords(ctx context.Context, src Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var words []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		if w := normalize(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return words, fmt.Errorf("reading word list %s: %w", src.Name(), err)
	}
	return words, nil
}

func normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
