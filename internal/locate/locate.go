// Package locate finds where dictionary phrases can be read in the grid.
package locate

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"xuanji/internal/grid"
	"xuanji/internal/phrase"
	"xuanji/internal/selection"
	"xuanji/internal/worker"
)

// Occurrence is one straight run of cells that spells a dictionary phrase.
type Occurrence struct {
	Phrase    string              `json:"phrase"`
	English   string              `json:"english"`
	Start     grid.Position       `json:"start"`
	End       grid.Position       `json:"end"`
	Direction selection.Direction `json:"direction"`
	// Reversed is set for right-to-left and bottom-to-top readings.
	Reversed bool `json:"reversed"`
}

type step struct{ dr, dc int }

// Reading directions: → ← ↓ ↑.
var steps = []step{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Find scans every cell in all four reading directions for every phrase in dict.
// Runs stop at empty cells. Results are ordered by start cell, then phrase.
func Find(ctx context.Context, g *grid.Grid, dict *phrase.Dictionary, workers int) ([]Occurrence, error) {
	pool := worker.NewPool("locate", workers, func(ctx context.Context, key string) ([]Occurrence, error) {
		en, _ := dict.Lookup(key)
		return findPhrase(g, key, en), nil
	})

	var out []Occurrence
	for _, job := range pool.Execute(ctx, dict.Keys()) {
		out = append(out, job.Result...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b Occurrence) int {
		return cmp.Or(
			cmp.Compare(a.Start.Row, b.Start.Row),
			cmp.Compare(a.Start.Col, b.Start.Col),
			strings.Compare(a.Phrase, b.Phrase),
			cmp.Compare(a.End.Row, b.End.Row),
			cmp.Compare(a.End.Col, b.End.Col),
		)
	})

	log.Debug().Int("phrases", dict.Len()).Int("occurrences", len(out)).Msg("Located phrases")
	return out, nil
}

// At returns the occurrences that pass through p.
func At(occs []Occurrence, p grid.Position) []Occurrence {
	var out []Occurrence
	for _, o := range occs {
		if slices.Contains(selection.Path(o.Start, o.End), p) {
			out = append(out, o)
		}
	}
	return out
}

func findPhrase(g *grid.Grid, key, en string) []Occurrence {
	var out []Occurrence
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			start := grid.Position{Row: r, Col: c}
			first := g.At(start)
			if first == "" || !strings.HasPrefix(key, first) {
				continue
			}
			if first == key {
				out = append(out, Occurrence{Phrase: key, English: en, Start: start, End: start})
				continue
			}
			for _, s := range steps {
				end, ok := walk(g, start, s, key)
				if !ok {
					continue
				}
				// Confirm against the selection engine so matches read exactly as a drag would.
				if selection.OrderedString(g, selection.Path(start, end), start, end) != key {
					continue
				}
				out = append(out, Occurrence{
					Phrase:    key,
					English:   en,
					Start:     start,
					End:       end,
					Direction: selection.DirectionOf(start, end),
					Reversed:  s.dr < 0 || s.dc < 0,
				})
			}
		}
	}
	return out
}

// walk follows s from start while the accumulated characters remain a prefix of key.
func walk(g *grid.Grid, start grid.Position, s step, key string) (grid.Position, bool) {
	acc := g.At(start)
	p := start
	for {
		p = grid.Position{Row: p.Row + s.dr, Col: p.Col + s.dc}
		ch := g.At(p)
		if !g.Contains(p) || ch == "" {
			return grid.Position{}, false
		}
		acc += ch
		switch {
		case acc == key:
			return p, true
		case !strings.HasPrefix(key, acc):
			return grid.Position{}, false
		}
	}
}
