// Package main prints the grid a seed produces.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wordgrid/internal/game/grid"
	"github.com/cory-johannsen/wordgrid/internal/game/seed"
)

// output is the json and yaml document printed for a grid.
type output struct {
	SeedInput string    `json:"seed_input" yaml:"seed_input"`
	Seed      string    `json:"seed" yaml:"seed"`
	Params    outParams `json:"params" yaml:"params"`
	Grid      grid.Grid `json:"grid" yaml:"grid"`
}

type outParams struct {
	Side          int `json:"side" yaml:"side"`
	Vowels        int `json:"vowels" yaml:"vowels"`
	MaxDuplicates int `json:"max_duplicates" yaml:"max_duplicates"`
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("gridgen: %v", err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "gridgen",
		Usage: "print the letter grid generated from a seed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed", Value: "default", Usage: "seed text or integer"},
			&cli.IntFlag{Name: "side", Value: 4, Usage: "grid side length (4, 5 or 6)"},
			&cli.IntFlag{Name: "vowels", Value: 0, Usage: "vowel count; 0 derives 2*side-3"},
			&cli.IntFlag{Name: "max-duplicates", Value: 2, Usage: "soft cap on repeats of one letter"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text, json or yaml"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := cmd.Writer
			if w == nil {
				w = os.Stdout
			}
			return run(w, cmd.String("seed"), grid.Params{
				Side:          cmd.Int("side"),
				Vowels:        cmd.Int("vowels"),
				MaxDuplicates: cmd.Int("max-duplicates"),
			}, cmd.String("format"))
		},
	}
}

// run generates the grid for seedInput and writes it to w in format.
//
// Precondition: format is "text", "json" or "yaml".
// Postcondition: Returns an error for invalid params or an unknown format.
func run(w io.Writer, seedInput string, p grid.Params, format string) error {
	if p.Vowels == 0 {
		p.Vowels = grid.DefaultVowels(p.Side)
	}
	s := seed.FromString(seedInput)
	g, err := grid.GenerateFromSeed(p, s)
	if err != nil {
		return fmt.Errorf("generating grid: %w", err)
	}

	out := output{
		SeedInput: seedInput,
		Seed:      s.String(),
		Params:    outParams{Side: p.Side, Vowels: p.Vowels, MaxDuplicates: p.MaxDuplicates},
		Grid:      g,
	}

	switch format {
	case "text":
		_, err = fmt.Fprintf(w, "Seed: %s (%s)\n%s\n", out.SeedInput, out.Seed, g.String())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
