package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
	"github.com/cory-johannsen/wordgrid/internal/game/word"
)

const welcomeBanner = `
` + telnet.Bold + telnet.BrightYellow + `  W O R D G R I D` + telnet.Reset + `

  Chain adjacent letters, including diagonals, to spell words.
  Type ` + telnet.Green + `select b2 c3` + telnet.Reset + ` to pick tiles, ` + telnet.Green + `submit` + telnet.Reset + ` to score,
  ` + telnet.Green + `help` + telnet.Reset + ` for every command and ` + telnet.Green + `quit` + telnet.Reset + ` to leave.
`

// RenderBoard formats the board with column letters and row numbers. Tiles
// on the current path are highlighted; a tile used more than once shows its
// count. The current word and score follow the board.
func RenderBoard(v session.View) string {
	g := v.Grid
	last := -1
	if len(v.Path) > 0 {
		last = v.Path[len(v.Path)-1]
	}

	var b strings.Builder
	b.WriteString("\r\n    ")
	for col := 0; col < g.Side; col++ {
		b.WriteString(telnet.Colorf(telnet.BrightBlack, " %s  ", command.ColumnLetter(col)))
	}
	b.WriteString("\r\n")

	for row := 0; row < g.Side; row++ {
		b.WriteString(telnet.Colorf(telnet.BrightBlack, " %d  ", row+1))
		for col := 0; col < g.Side; col++ {
			i := g.Index(row, col)
			b.WriteString(renderTile(g.Letter(i), count(v.Counts, i), i == last))
			b.WriteString(" ")
		}
		b.WriteString("\r\n")
	}

	b.WriteString("\r\n")
	if v.Word != "" {
		b.WriteString(fmt.Sprintf("  Word: %s (%d)\r\n", telnet.Colorize(telnet.BrightWhite, v.Word, telnet.Bold), word.Score(v.Word)))
	}
	b.WriteString(telnet.Colorf(telnet.Cyan, "  Score: %d  Words: %d", v.TotalScore, len(v.ScoredWords)))
	b.WriteString("\r\n")
	return b.String()
}

func renderTile(letter string, n int, isLast bool) string {
	suffix := " "
	if n > 1 {
		suffix = fmt.Sprintf("%d", n)
	}
	cell := " " + letter + suffix
	switch {
	case isLast:
		return telnet.Colorize(telnet.Bold, cell, telnet.BgYellow)
	case n > 0:
		return telnet.Colorize(telnet.Bold, cell, telnet.BgBlue)
	case grid.IsVowel(letter):
		return telnet.Colorize(telnet.Yellow, cell)
	default:
		return telnet.Colorize(telnet.White, cell)
	}
}

func count(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

// RenderSubmitResult formats the outcome of a submit.
func RenderSubmitResult(res session.SubmitResult) string {
	switch {
	case res.Valid:
		return telnet.Colorf(telnet.Green, "%s scores %d!", res.Word, res.Score)
	case res.Reason == word.ReasonEmpty:
		return telnet.Colorize(telnet.Red, "Nothing selected.")
	default:
		return telnet.Colorf(telnet.Red, "%s: %s.", res.Word, res.Reason)
	}
}

// RenderSelectRejection explains why a tile could not be selected.
func RenderSelectRejection(label string, outcome session.SelectOutcome) string {
	return telnet.Colorf(telnet.Red, "Cannot select %s: %s.", label, outcome)
}

// RenderScoredWords lists the scored words in order with the total.
func RenderScoredWords(words []session.ScoredWord, total int) string {
	if len(words) == 0 {
		return telnet.Colorize(telnet.Dim, "No words scored yet.")
	}
	var b strings.Builder
	b.WriteString(telnet.Colorize(telnet.BrightYellow, "Scored words:"))
	b.WriteString("\r\n")
	for _, w := range words {
		b.WriteString(fmt.Sprintf("  %-12s %3d\r\n", w.Word, w.Score))
	}
	b.WriteString(telnet.Colorf(telnet.Cyan, "  %-12s %3d", "Total", total))
	return b.String()
}

// RenderSeed shows the seed text and the number derived from it.
func RenderSeed(v session.View) string {
	return fmt.Sprintf("Seed: %s (%s)", telnet.Colorize(telnet.BrightWhite, v.SeedInput), v.Seed)
}

// RenderHelp lists every command grouped by category.
func RenderHelp(r *command.Registry) string {
	var b strings.Builder
	byCategory := r.CommandsByCategory()
	for _, cat := range []string{command.CategoryBoard, command.CategoryWords, command.CategorySystem} {
		cmds := byCategory[cat]
		if len(cmds) == 0 {
			continue
		}
		b.WriteString(telnet.Colorize(telnet.BrightYellow, strings.ToUpper(cat[:1])+cat[1:]+":"))
		b.WriteString("\r\n")
		for _, cmd := range cmds {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			if len(cmd.Aliases) > 0 {
				usage += " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			b.WriteString(fmt.Sprintf("  %s%-28s%s %s\r\n", telnet.Green, usage, telnet.Reset, cmd.Help))
		}
	}
	return b.String()
}

// prompt shows the word being built and the running score.
func prompt(v session.View) string {
	if v.Word == "" {
		return telnet.Colorf(telnet.BrightCyan, "[%d]> ", v.TotalScore)
	}
	return telnet.Colorf(telnet.BrightCyan, "[%d %s]> ", v.TotalScore, v.Word)
}
