package handlers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/wordgrid/internal/config"
	"github.com/cory-johannsen/wordgrid/internal/frontend/handlers"
	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/dictionary"
	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
	"github.com/cory-johannsen/wordgrid/internal/testutil"
)

// TestAllCommandHandlersAreWired asserts that every Handler constant
// registered in BuiltinCommands has a corresponding entry in the dispatch
// map.
func TestAllCommandHandlersAreWired(t *testing.T) {
	registered := handlers.GameHandlers()
	for _, cmd := range command.BuiltinCommands() {
		if _, ok := registered[cmd.Handler]; !ok {
			t.Errorf("handler %q is in BuiltinCommands() but missing from GameHandlers()", cmd.Handler)
		}
	}
}

// startServer runs a Telnet acceptor backed by a GameHandler whose games
// start from the "default" board:
//
//	  a b c d
//	1 H I F E
//	2 H F A N
//	3 S E R S
//	4 T B U T
func startServer(t *testing.T) (*telnet.Acceptor, *session.Manager) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	store := dictionary.NewStore(logger)
	store.Add(dictionary.Words, "fan", "sea", "but", "tub")
	store.Add(dictionary.Blocklist, "tub")
	sessions := session.NewManager(grid.DefaultParams(4), word.NewValidator(store))

	cfg := config.TelnetConfig{Host: "127.0.0.1", ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	acc := telnet.NewAcceptor(cfg, handlers.NewGameHandler(sessions, "default", logger), logger)
	go func() {
		_ = acc.ListenAndServe()
	}()
	select {
	case <-acc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("acceptor did not start in time")
	}
	t.Cleanup(acc.Stop)
	return acc, sessions
}

func TestGameHandler_PlaysAGame(t *testing.T) {
	acc, sessions := startServer(t)
	client := testutil.NewTelnetClient(t, acc.Addr())

	welcome := client.ReadUntil("]> ", 5*time.Second)
	assert.Contains(t, welcome, "W O R D G R I D")
	assert.Contains(t, welcome, " 1   H   I   F   E")
	require.Eventually(t, func() bool { return sessions.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	out := client.Command("select b2 c2 d2")
	assert.Contains(t, out, "Word: FAN (6)")
	assert.Contains(t, out, "[0 FAN]> ")

	out = client.Command("submit")
	assert.Contains(t, out, "FAN scores 6!")
	assert.Contains(t, out, "Score: 6  Words: 1")

	out = client.Command("enter")
	assert.Contains(t, out, "Nothing selected.")

	out = client.Command("s b2 c2 d2")
	assert.Contains(t, out, "Word: FAN")
	out = client.Command("submit")
	assert.Contains(t, out, "FAN: already scored.")

	out = client.Command("s d4,c4,b4")
	assert.Contains(t, out, "Word: TUB")
	out = client.Command("submit")
	assert.Contains(t, out, "TUB: profane/inappropriate.")

	out = client.Command("words")
	assert.Contains(t, out, "FAN")
	assert.Contains(t, out, "Total")

	client.Send("quit")
	client.ReadUntil("Final score: 6. Goodbye.", 5*time.Second)
	require.Eventually(t, func() bool { return sessions.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestGameHandler_SelectionErrors(t *testing.T) {
	acc, _ := startServer(t)
	client := testutil.NewTelnetClient(t, acc.Addr())
	client.ReadUntil("]> ", 5*time.Second)

	out := client.Command("select a1 d4")
	assert.Contains(t, out, "Cannot select d4: not adjacent.")
	assert.Contains(t, out, "[0 H]> ")

	out = client.Command("select a1")
	assert.Contains(t, out, "[0]> ", "re-selecting the last tile removes it")

	out = client.Command("select z9")
	assert.Contains(t, out, "invalid tile")

	out = client.Command("select")
	assert.Contains(t, out, "Select which tile?")

	out = client.Command("back")
	assert.Contains(t, out, "Nothing selected.")

	client.Command("s a1 b2")
	out = client.Command("b")
	assert.Contains(t, out, "[0 H]> ")

	out = client.Command("clear")
	assert.Contains(t, out, "[0]> ")

	out = client.Command("dance")
	assert.Contains(t, out, `Unknown command "dance"`)
}

func TestGameHandler_NewGameAndSeed(t *testing.T) {
	acc, _ := startServer(t)
	client := testutil.NewTelnetClient(t, acc.Addr())
	client.ReadUntil("]> ", 5*time.Second)

	out := client.Command("seed")
	assert.Contains(t, out, "Seed: default (1544803905)")

	out = client.Command("new hello")
	assert.Contains(t, out, "Seed: hello (99162322)")
	assert.NotContains(t, out, " 1   H   I   F   E")

	out = client.Command("new default")
	assert.Contains(t, out, " 1   H   I   F   E")

	out = client.Command("help")
	assert.Contains(t, out, "select <tile>...")

	out = client.Command("")
	assert.Contains(t, out, "[0]> ")
}

func TestGameHandler_DisconnectRemovesSession(t *testing.T) {
	acc, sessions := startServer(t)
	client := testutil.NewTelnetClient(t, acc.Addr())
	client.ReadUntil("]> ", 5*time.Second)
	require.Equal(t, 1, sessions.Count())

	client.Close()
	require.Eventually(t, func() bool { return sessions.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
