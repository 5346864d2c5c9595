package dictionary_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wordgrid/internal/config"
	"github.com/cory-johannsen/wordgrid/internal/game/dictionary"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_LoadNormalizesLines(t *testing.T) {
	store := dictionary.NewStore(zaptest.NewLogger(t))
	src := dictionary.ReaderSource{Label: "inline", Text: "  Cat\nDOG \n\n\t\nbird\r\ncat\n"}

	n := store.Load(context.Background(), dictionary.Words, src)

	assert.Equal(t, 4, n, "blank lines are skipped, duplicates still counted as read")
	assert.Equal(t, 3, store.Size(dictionary.Words))
	assert.True(t, store.Contains("cat", dictionary.Words))
	assert.True(t, store.Contains("CAT", dictionary.Words))
	assert.True(t, store.Contains(" dog ", dictionary.Words))
	assert.True(t, store.Contains("bird", dictionary.Words), "CRLF line endings are trimmed")
	assert.False(t, store.Contains("cat", dictionary.Blocklist))
}

func TestStore_LoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	words := writeFile(t, dir, "dictionary.txt", "cat\ndog\n")
	custom := writeFile(t, dir, "custom.txt", "zyx\n")

	store := dictionary.NewStore(zaptest.NewLogger(t))
	n := store.Load(context.Background(), dictionary.Words,
		dictionary.FileSource{Path: words},
		dictionary.FileSource{Path: custom},
	)

	assert.Equal(t, 3, n)
	assert.True(t, store.Contains("zyx", dictionary.Words))
}

func TestStore_MissingSourceIsLoggedAndSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := dictionary.NewStore(zap.New(core))

	n := store.Load(context.Background(), dictionary.Words,
		dictionary.FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")},
		dictionary.ReaderSource{Label: "fallback", Text: "cat"},
	)

	assert.Equal(t, 1, n)
	assert.True(t, store.Contains("cat", dictionary.Words))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "word list failed to load", logs.All()[0].Message)
}

// failingSource yields a few lines and then a read error.
type failingSource struct{}

func (failingSource) Name() string { return "flaky" }

func (failingSource) Open(context.Context) (io.ReadCloser, error) {
	r := io.MultiReader(strings.NewReader("cat\ndog\n"), errReader{})
	return io.NopCloser(r), nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStore_PartialSourceKeepsWordsRead(t *testing.T) {
	store := dictionary.NewStore(zap.NewNop())
	n := store.Load(context.Background(), dictionary.Words, failingSource{})

	assert.Equal(t, 2, n)
	assert.True(t, store.Contains("dog", dictionary.Words))
}

func TestStore_NilSourceIsSkipped(t *testing.T) {
	store := dictionary.NewStore(zap.NewNop())
	assert.Equal(t, 0, store.Load(context.Background(), dictionary.Words, nil))
}

func TestStore_EmptyStoreFindsNothing(t *testing.T) {
	store := dictionary.NewStore(zap.NewNop())
	assert.False(t, store.Contains("cat", dictionary.Words))
	assert.False(t, store.Contains("", dictionary.Blocklist))
	assert.Equal(t, 0, store.Size(dictionary.Words))
}

func TestStore_Add(t *testing.T) {
	store := dictionary.NewStore(zap.NewNop())
	assert.Equal(t, 2, store.Add(dictionary.Blocklist, "Rude", "", "  ", "crude"))
	assert.True(t, store.Contains("RUDE", dictionary.Blocklist))
	assert.Equal(t, 2, store.Size(dictionary.Blocklist))
}

func TestStore_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DictionaryConfig{
		Standard:      writeFile(t, dir, "dictionary.txt", "cat\ndog\n"),
		Custom:        writeFile(t, dir, "custom.txt", "quiz\n"),
		Blocklist:     writeFile(t, dir, "blocklist.txt", "darn\n"),
		FetchAttempts: 1,
	}

	store := dictionary.NewStore(zaptest.NewLogger(t))
	store.LoadConfig(context.Background(), cfg)

	assert.Equal(t, 3, store.Size(dictionary.Words))
	assert.True(t, store.Contains("quiz", dictionary.Words))
	assert.True(t, store.Contains("darn", dictionary.Blocklist))
	assert.False(t, store.Contains("darn", dictionary.Words))
}

func TestStore_LoadConfigSkipsEmptyLocations(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DictionaryConfig{
		Standard:      writeFile(t, dir, "dictionary.txt", "cat\n"),
		FetchAttempts: 1,
	}

	store := dictionary.NewStore(zaptest.NewLogger(t))
	store.LoadConfig(context.Background(), cfg)

	assert.Equal(t, 1, store.Size(dictionary.Words))
	assert.Equal(t, 0, store.Size(dictionary.Blocklist))
}

func TestStore_ConcurrentReadsDuringLoad(t *testing.T) {
	store := dictionary.NewStore(zap.NewNop())
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		b.WriteString("word")
		b.WriteString(strings.Repeat("a", i%7))
		b.WriteString("\n")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		store.Load(context.Background(), dictionary.Words, dictionary.ReaderSource{Label: "big", Text: b.String()})
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = store.Contains("word", dictionary.Words)
		}
	}()
	wg.Wait()

	assert.True(t, store.Contains("wordaaa", dictionary.Words))
}

func TestSet_String(t *testing.T) {
	assert.Equal(t, "words", dictionary.Words.String())
	assert.Equal(t, "blocklist", dictionary.Blocklist.String())
	assert.Equal(t, "set(7)", dictionary.Set(7).String())
}

func TestStore_ContainsIsCaseInsensitive_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.StringMatching(`[a-zA-Z]{1,12}`).Draw(rt, "word")
		store := dictionary.NewStore(zap.NewNop())
		store.Add(dictionary.Words, w)

		assert.True(rt, store.Contains(strings.ToUpper(w), dictionary.Words))
		assert.True(rt, store.Contains(strings.ToLower(w), dictionary.Words))
		assert.False(rt, store.Contains(w, dictionary.Blocklist))
	})
}

func TestStore_LoadBundledContent(t *testing.T) {
	content := filepath.Join("..", "..", "..", "content")
	cfg := config.DictionaryConfig{
		Standard:      filepath.Join(content, "dictionary.txt"),
		Custom:        filepath.Join(content, "custom_words.txt"),
		Blocklist:     filepath.Join(content, "blocklist.txt"),
		FetchAttempts: 1,
	}

	store := dictionary.NewStore(zaptest.NewLogger(t))
	store.LoadConfig(context.Background(), cfg)

	for _, w := range []string{"fan", "sea", "but", "tub", "wordgrid"} {
		assert.True(t, store.Contains(w, dictionary.Words), w)
	}
	assert.True(t, store.Contains("damn", dictionary.Blocklist))
	assert.Greater(t, store.Size(dictionary.Words), 500)
}
