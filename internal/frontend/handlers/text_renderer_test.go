package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/seed"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
)

func defaultBoard(t *testing.T) grid.Grid {
	t.Helper()
	g, err := grid.GenerateFromSeed(grid.DefaultParams(4), seed.FromString("default"))
	require.NoError(t, err)
	return g
}

func TestRenderBoard_Layout(t *testing.T) {
	v := session.View{Grid: defaultBoard(t), Counts: make([]int, 16)}

	stripped := telnet.StripANSI(RenderBoard(v))
	lines := strings.Split(strings.Trim(stripped, "\r\n"), "\r\n")

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "     a   b   c   d", strings.TrimRight(lines[0], " "))
	assert.Equal(t, " 1   H   I   F   E", strings.TrimRight(lines[1], " "))
	assert.Equal(t, " 4   T   B   U   T", strings.TrimRight(lines[4], " "))
	assert.Contains(t, stripped, "Score: 0  Words: 0")
	assert.NotContains(t, stripped, "Word:")
}

func TestRenderBoard_ShowsSelection(t *testing.T) {
	counts := make([]int, 16)
	counts[6] = 1
	counts[7] = 2
	v := session.View{
		Grid:        defaultBoard(t),
		Path:        []int{7, 6, 7},
		Counts:      counts,
		Word:        "NAN",
		ScoredWords: []session.ScoredWord{{Word: "FAN", Score: 6}},
		TotalScore:  6,
	}

	rendered := RenderBoard(v)
	stripped := telnet.StripANSI(rendered)

	assert.Contains(t, stripped, " 2   H   F   A   N2")
	assert.Contains(t, stripped, "Word: NAN (3)")
	assert.Contains(t, stripped, "Score: 6  Words: 1")
	assert.Contains(t, rendered, telnet.BgYellow, "last tile is highlighted")
	assert.Contains(t, rendered, telnet.BgBlue, "earlier tiles are highlighted")
}

func TestRenderSubmitResult(t *testing.T) {
	tests := []struct {
		res  session.SubmitResult
		want string
	}{
		{session.SubmitResult{Word: "FAN", Valid: true, Reason: word.ReasonValid, Score: 6}, "FAN scores 6!"},
		{session.SubmitResult{Reason: word.ReasonEmpty}, "Nothing selected."},
		{session.SubmitResult{Word: "FA", Reason: word.ReasonTooShort}, "FA: too short."},
		{session.SubmitResult{Word: "FAN", Reason: word.ReasonAlreadyScored}, "FAN: already scored."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, telnet.StripANSI(RenderSubmitResult(tt.res)))
	}
}

func TestRenderSelectRejection(t *testing.T) {
	got := telnet.StripANSI(RenderSelectRejection("d4", session.NotAdjacent))
	assert.Equal(t, "Cannot select d4: not adjacent.", got)
}

func TestRenderScoredWords(t *testing.T) {
	assert.Equal(t, "No words scored yet.", telnet.StripANSI(RenderScoredWords(nil, 0)))

	got := telnet.StripANSI(RenderScoredWords([]session.ScoredWord{{Word: "FAN", Score: 6}, {Word: "SEA", Score: 3}}, 9))
	assert.Contains(t, got, "Scored words:")
	assert.Contains(t, got, "FAN")
	assert.Contains(t, got, "SEA")
	assert.Contains(t, got, "Total")
	assert.True(t, strings.HasSuffix(got, "  9"))
}

func TestRenderSeed(t *testing.T) {
	got := telnet.StripANSI(RenderSeed(session.View{SeedInput: "default", Seed: "1544803905"}))
	assert.Equal(t, "Seed: default (1544803905)", got)
}

func TestRenderHelp(t *testing.T) {
	got := telnet.StripANSI(RenderHelp(command.DefaultRegistry()))

	assert.Contains(t, got, "Board:")
	assert.Contains(t, got, "Words:")
	assert.Contains(t, got, "System:")
	assert.Contains(t, got, "select <tile>... (s)")
	assert.Contains(t, got, "quit (q, exit)")
	assert.Less(t, strings.Index(got, "Board:"), strings.Index(got, "System:"))
}

func TestPrompt(t *testing.T) {
	assert.Equal(t, "[0]> ", telnet.StripANSI(prompt(session.View{})))
	assert.Equal(t, "[6 NA]> ", telnet.StripANSI(prompt(session.View{Word: "NA", TotalScore: 6})))
	assert.Equal(t, "\033[96m[0]> \033[0m", prompt(session.View{}))
}

func TestPropertyRenderBoardHasOneRowPerSide(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		side := rapid.SampledFrom(grid.Sides).Draw(t, "side")
		g, err := grid.Generate(grid.DefaultParams(side), fixedSource(rapid.IntRange(0, 1000).Draw(t, "n")))
		if err != nil {
			t.Fatalf("generating: %v", err)
		}
		stripped := telnet.StripANSI(RenderBoard(session.View{Grid: g, Counts: make([]int, g.TileCount())}))
		for row := 0; row < side; row++ {
			if !strings.Contains(stripped, strings.Join(g.Row(row), "   ")) {
				t.Fatalf("row %d %v missing from\n%s", row, g.Row(row), stripped)
			}
		}
	})
}

type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }
