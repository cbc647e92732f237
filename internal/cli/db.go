package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"xuanji/internal/colormap"
	"xuanji/internal/config"
	"xuanji/internal/graph"
	"xuanji/internal/locate"
	"xuanji/internal/phrase"
	"xuanji/internal/store"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func phrasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Manage the shared phrase dictionary in PostgreSQL",
	}
	cmd.AddCommand(phrasesPushCmd())
	cmd.AddCommand(phrasesPullCmd())
	return cmd
}

func phrasesPushCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upsert the local phrase dictionary into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			b, err := loadBundle(ctx, cfg)
			if err != nil {
				return err
			}

			pool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.EnsureSchema(ctx, pool); err != nil {
				return err
			}

			n, err := store.NewPhraseStore(pool).Upsert(ctx, b.Phrases, batchSize)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pushed %d phrases\n", n)
			return err
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Rows per round trip")
	return cmd
}

func phrasesPullCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Write the PostgreSQL phrase dictionary as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}

			pool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			stored, err := store.NewPhraseStore(pool).All(ctx)
			if err != nil {
				return err
			}
			dict := phrase.FromMap(stored)

			if out == "" {
				return store.WriteCSV(cmd.OutOrStdout(), dict)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			if err := store.WriteCSV(f, dict); err != nil {
				return err
			}
			log.Info().Str("path", out).Int("phrases", dict.Len()).Msg("Exported phrases to CSV")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

// withStoredPhrases overlays the PostgreSQL dictionary onto the local one. Failures keep
// the local dictionary.
func withStoredPhrases(ctx context.Context, cfg *config.Config, dict *phrase.Dictionary) *phrase.Dictionary {
	if cfg.DatabaseURL == "" {
		log.Warn().Err(errNoDatabase).Msg("Using local phrases only")
		return dict
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Using local phrases only")
		return dict
	}
	defer pool.Close()

	stored, err := store.NewPhraseStore(pool).All(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Using local phrases only")
		return dict
	}
	log.Debug().Int("stored", len(stored)).Msg("Merged stored phrases")
	return dict.Merge(stored)
}

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the grid and its phrase readings to Neo4j",
	}
	cmd.AddCommand(graphExportCmd())
	cmd.AddCommand(graphPhrasesAtCmd())
	return cmd
}

func graphExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write cells, adjacency and located phrases to the graph",
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

			driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
			if err != nil {
				return err
			}
			defer driver.Close(ctx)

			builder := graph.NewBuilder(driver)
			if err := builder.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := builder.ExportGrid(ctx, b.Grid, b.Colors); err != nil {
				return err
			}
			if err := builder.ExportOccurrences(ctx, occs); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d cells and %d readings\n",
				b.Grid.Rows()*b.Grid.Cols(), len(occs))
			return err
		},
	}
}

func graphPhrasesAtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases-at <cell>",
		Short: "List the exported readings that pass through a cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
			if err != nil {
				return err
			}
			defer driver.Close(ctx)

			readings, err := graph.NewQuerier(driver).PhrasesAt(ctx, colormap.CellID(p.Row, p.Col))
			if err != nil {
				return err
			}
			for _, r := range readings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\t%s\t%s\t%s\n", r.Start, r.End, r.Direction, r.Chinese, r.English)
			}
			return nil
		},
	}
}
