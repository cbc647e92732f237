package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
	"xuanji/internal/parser"
	"xuanji/internal/phrase"
	"xuanji/internal/worker"
)

// Bundle is everything the viewer and CLI need, loaded once at startup.
type Bundle struct {
	Grid    *grid.Grid
	Phrases *phrase.Dictionary
	Colors  *colormap.Map
	// Sources records the file each resource was read from; absent when it could not be found.
	Sources map[Kind]string
}

// Loader reads a resource directory into a Bundle.
type Loader struct {
	locator      *Locator
	size         int
	defaultColor colormap.Category
	workers      int
}

func NewLoader(locator *Locator, size int, defaultColor colormap.Category, workers int) *Loader {
	return &Loader{
		locator:      locator,
		size:         size,
		defaultColor: defaultColor,
		workers:      workers,
	}
}

type rawResource struct {
	path string
	data []byte
}

// Load reads all three resources. Only grid failures are returned; a missing or broken
// phrase or color file degrades to an empty dictionary or color map.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	kinds := []Kind{KindGrid, KindPhrases, KindColors}
	pool := worker.NewPool("resources", l.workers, func(ctx context.Context, kind Kind) (rawResource, error) {
		return l.read(kind)
	})
	jobs := pool.Execute(ctx, kinds)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &Bundle{Sources: make(map[Kind]string)}
	for _, job := range jobs {
		if job.Err == nil {
			b.Sources[job.Input] = job.Result.path
		}
	}

	gridJob := jobs[0]
	if gridJob.Err != nil {
		return nil, fmt.Errorf("load grid: %w", gridJob.Err)
	}
	g, err := grid.Build(parser.ParseCSV(decodeText(gridJob.Result.data)), l.size)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", gridJob.Result.path, err)
	}
	b.Grid = g

	if job := jobs[1]; job.Err != nil {
		log.Warn().Err(job.Err).Msg("Phrase dictionary unavailable, lookups disabled")
		b.Phrases = phrase.FromMap(nil)
	} else {
		b.Phrases = phrase.Build(parser.ParseCSV(decodeText(job.Result.data)))
	}

	if job := jobs[2]; job.Err != nil {
		log.Warn().Err(job.Err).Msg("Color map unavailable, using default color")
		b.Colors = colormap.Build(nil, l.defaultColor)
	} else {
		b.Colors = colormap.Decode(job.Result.data, l.defaultColor)
	}

	log.Info().
		Int("rows", g.Rows()).
		Int("filled", g.Filled()).
		Int("phrases", b.Phrases.Len()).
		Int("colors", b.Colors.Len()).
		Msg("Resources loaded")

	return b, nil
}

// LoadGrid reads only the grid.
func (l *Loader) LoadGrid() (*grid.Grid, error) {
	res, err := l.read(KindGrid)
	if err != nil {
		return nil, fmt.Errorf("load grid: %w", err)
	}
	g, err := grid.Build(parser.ParseCSV(decodeText(res.data)), l.size)
	if err != nil {
		return nil, fmt.Errorf("load grid %s: %w", res.path, err)
	}
	return g, nil
}

func (l *Loader) read(kind Kind) (rawResource, error) {
	path, err := l.locator.Find(kind)
	if err != nil {
		return rawResource{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rawResource{}, fmt.Errorf("%w: %s", ErrResourceNotFound, path)
		}
		return rawResource{}, fmt.Errorf("read %s: %w", kind, err)
	}
	return rawResource{path: path, data: data}, nil
}

// decodeText strips a UTF-8 byte order mark left by spreadsheet exports.
func decodeText(data []byte) string {
	return strings.TrimPrefix(string(data), "\ufeff")
}
