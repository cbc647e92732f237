package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"xuanji/internal/colormap"
	"xuanji/internal/config"
	"xuanji/internal/locate"
	"xuanji/internal/selection"
	"xuanji/internal/viewer"
)

func locateCmd() *cobra.Command {
	var (
		asJSON bool
		cell   string
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find every dictionary phrase that reads straight through the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			b, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}

			occs, err := locate.Find(ctx, b.Grid, b.Phrases, cfg.WorkerCount)
			if err != nil {
				return fmt.Errorf("locate phrases: %w", err)
			}
			if cell != "" {
				p, err := parsePosition(cell)
				if err != nil {
					return err
				}
				occs = locate.At(occs, p)
			}

			log.Debug().Int("occurrences", len(occs)).Int("phrases", b.Phrases.Len()).Msg("Located phrases")

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(occs)
			}
			for _, o := range occs {
				arrow := "→"
				switch {
				case o.Direction == selection.Vertical && o.Reversed:
					arrow = "↑"
				case o.Direction == selection.Vertical:
					arrow = "↓"
				case o.Reversed:
					arrow = "←"
				}
				fmt.Fprintf(w, "%s %s %s\t%s\t%s\n",
					colormap.CellID(o.Start.Row, o.Start.Col), arrow,
					colormap.CellID(o.End.Row, o.End.Col), o.Phrase, o.English)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringVar(&cell, "cell", "", "Only phrases passing through this cell")
	return cmd
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive grid viewer",
		Long: `Drag with the left mouse button to select a row or column run. Arrow keys or hjkl pan,
+ and - zoom, 0 resets the view, Esc clears the selection and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			b, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}

			occs, err := locate.Find(ctx, b.Grid, b.Phrases, cfg.WorkerCount)
			if err != nil {
				log.Warn().Err(err).Msg("Phrase locator failed, continuing without highlights")
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init screen: %w", err)
			}
			defer screen.Fini()

			go func() {
				<-ctx.Done()
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			}()

			return viewer.New(screen, b.Grid, b.Colors, b.Phrases, occs).Run()
		},
	}
}
