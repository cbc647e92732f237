package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"xuanji/internal/colormap"
	"xuanji/internal/config"
	"xuanji/internal/grid"
	"xuanji/internal/selection"
	"xuanji/internal/translation"
)

func showCmd() *cobra.Command {
	var colors bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			b, err := loadBundle(ctx, config.Load())
			if err != nil {
				return err
			}
			if colors {
				return printColors(cmd.OutOrStdout(), b.Grid, b.Colors)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), b.Grid.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&colors, "colors", false, "Print the color category initial of each cell instead of its character")
	return cmd
}

var colorInitials = map[colormap.Category]string{
	colormap.Red:    "R",
	colormap.Black:  "K",
	colormap.Blue:   "B",
	colormap.Purple: "P",
	colormap.Yellow: "Y",
}

func printColors(w io.Writer, g *grid.Grid, colors *colormap.Map) error {
	for r := 0; r < g.Rows(); r++ {
		var sb strings.Builder
		for c := 0; c < g.Cols(); c++ {
			sb.WriteString(runewidth.FillRight(colorInitials[colors.ColorFor(r, c)], 2))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

type selectionResult struct {
	Text      string   `json:"text"`
	Direction string   `json:"direction"`
	Cells     []string `json:"cells"`
	English   string   `json:"english,omitempty"`
	Source    string   `json:"source"`
}

func selectCmd() *cobra.Command {
	var (
		fallback bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "select <start> <end>",
		Short: "Read the characters between two cells in drag order",
		Long: `Positions are cell ids (r03c12) or 1-based row,col pairs. Only horizontal and vertical
runs are supported; a diagonal pair selects just the start cell.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			end, err := parsePosition(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			b, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}
			if !b.Grid.Contains(start) || !b.Grid.Contains(end) {
				return fmt.Errorf("positions must lie within the %d×%d grid", b.Grid.Rows(), b.Grid.Cols())
			}

			var sel selection.State
			sel.Begin(start)
			sel.Finish(end)

			res := selectionResult{
				Text:      sel.Text(b.Grid),
				Direction: sel.Direction().String(),
			}
			for _, p := range selection.Ordered(sel.Path, start, end) {
				res.Cells = append(res.Cells, colormap.CellID(p.Row, p.Col))
			}

			tr, closeFn, err := newTranslator(ctx, cfg, b.Phrases, fallback)
			if err != nil {
				return err
			}
			defer closeFn()

			en, src, err := tr.Translate(ctx, res.Text)
			if err != nil {
				return err
			}
			res.English, res.Source = en, string(src)

			return writeSelection(cmd.OutOrStdout(), res, asJSON)
		},
	}

	cmd.Flags().BoolVar(&fallback, "fallback", false, "Ask the translation model when the dictionary has no entry")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func writeSelection(w io.Writer, res selectionResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "%s\t%s\t%s\n", res.Text, res.Direction, strings.Join(res.Cells, " "))
	if res.Source == string(translation.SourceNone) {
		_, err := fmt.Fprintln(w, "(no entry)")
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t[%s]\n", res.English, res.Source)
	return err
}

func lookupCmd() *cobra.Command {
	var fallback, fromDB bool

	cmd := &cobra.Command{
		Use:   "lookup <chinese>",
		Short: "Look a phrase up in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			b, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}

			dict := b.Phrases
			if fromDB {
				dict = withStoredPhrases(ctx, cfg, dict)
			}

			tr, closeFn, err := newTranslator(ctx, cfg, dict, fallback)
			if err != nil {
				return err
			}
			defer closeFn()

			text := strings.TrimSpace(args[0])
			en, src, err := tr.Translate(ctx, text)
			if err != nil {
				return err
			}
			if src == translation.SourceNone {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(no entry)\n", text)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t[%s]\n", text, en, src)
			return err
		},
	}

	cmd.Flags().BoolVar(&fallback, "fallback", false, "Ask the translation model when the dictionary has no entry")
	cmd.Flags().BoolVar(&fromDB, "db", false, "Include phrases stored in PostgreSQL")
	return cmd
}

func colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Summarize the color map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			b, err := loadBundle(ctx, config.Load())
			if err != nil {
				return err
			}

			counts := make(map[colormap.Category]int, len(colormap.Categories))
			for r := 0; r < b.Grid.Rows(); r++ {
				for c := 0; c < b.Grid.Cols(); c++ {
					counts[b.Colors.ColorFor(r, c)]++
				}
			}
			for _, c := range colormap.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%-7s %4d\n", c, counts[c])
			}
			log.Debug().Int("mapped", b.Colors.Len()).Interface("entries", b.Colors.Counts()).Msg("Color map")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "default: %s\n", b.Colors.Default())
			return err
		},
	}
}
