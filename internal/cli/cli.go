package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"xuanji/internal/colormap"
	"xuanji/internal/config"
	"xuanji/internal/grid"
	"xuanji/internal/resource"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xuanji",
		Short: "Explore the Xuanji Tu (璇玑图) palindrome grid",
		Long: `Loads the 29×29 Xuanji Tu grid, its phrase dictionary and color map, and lets you
read straight runs of characters in any direction.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setLogLevel(config.Load().LogLevel)
		},
	}

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(selectCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(locateCmd())
	rootCmd.AddCommand(colorsCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(phrasesCmd())
	rootCmd.AddCommand(graphCmd())

	return rootCmd
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func newLoader(cfg *config.Config) *resource.Loader {
	locator := resource.NewLocator(cfg.ResourceDir).
		WithFile(resource.KindGrid, cfg.GridFile).
		WithFile(resource.KindPhrases, cfg.PhraseFile).
		WithFile(resource.KindColors, cfg.ColorFile)
	return resource.NewLoader(locator, cfg.GridSize, cfg.DefaultColor, cfg.WorkerCount)
}

func loadBundle(ctx context.Context, cfg *config.Config) (*resource.Bundle, error) {
	b, err := newLoader(cfg).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load resources from %s: %w", cfg.ResourceDir, err)
	}
	return b, nil
}

// parsePosition accepts a cell id (r03c12) or a 1-based "row,col" pair.
func parsePosition(arg string) (grid.Position, error) {
	if r, c, ok := colormap.ParseCellID(arg); ok {
		return grid.Position{Row: r, Col: c}, nil
	}

	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return grid.Position{}, fmt.Errorf("invalid position %q: want r03c12 or 3,12", arg)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid row in %q: %w", arg, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid column in %q: %w", arg, err)
	}
	return grid.Position{Row: r - 1, Col: c - 1}, nil
}
