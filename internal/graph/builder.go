// Package graph mirrors the grid and its located phrases into Neo4j, so reading paths
// can be explored as a graph of adjacent cells.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
	"xuanji/internal/locate"
	"xuanji/internal/selection"
	"xuanji/internal/worker"
)

const batchSize = 200

// Builder writes cells, adjacency and phrases.
type Builder struct {
	driver neo4j.DriverWithContext
}

func NewBuilder(driver neo4j.DriverWithContext) *Builder {
	return &Builder{driver: driver}
}

// Connect creates a driver and verifies it can reach the server.
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}

// EnsureSchema creates uniqueness constraints.
func (b *Builder) EnsureSchema(ctx context.Context) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Cell) REQUIRE c.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Phrase) REQUIRE p.zh IS UNIQUE",
	}
	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// ExportGrid upserts one :Cell per grid position and links neighbours with
// :RIGHT and :DOWN relationships.
func (b *Builder) ExportGrid(ctx context.Context, g *grid.Grid, colors *colormap.Map) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, chunk := range worker.Batch(cellRows(g, colors), batchSize) {
		_, err := session.Run(ctx, `
			UNWIND $cells AS cell
			MERGE (c:Cell {id: cell.id})
			SET c.row = cell.row, c.col = cell.col, c.char = cell.char, c.color = cell.color
		`, map[string]any{"cells": params(chunk)})
		if err != nil {
			return fmt.Errorf("upsert cells: %w", err)
		}
	}

	right, down := edgeRows(g)
	edges := []struct {
		relType string
		rows    []map[string]any
	}{
		{"RIGHT", right},
		{"DOWN", down},
	}
	for _, e := range edges {
		// Relationship types cannot be parameters.
		query := fmt.Sprintf(`
			UNWIND $edges AS edge
			MATCH (a:Cell {id: edge.from}), (b:Cell {id: edge.to})
			MERGE (a)-[:%s]->(b)
		`, e.relType)
		for _, chunk := range worker.Batch(e.rows, batchSize) {
			if _, err := session.Run(ctx, query, map[string]any{"edges": params(chunk)}); err != nil {
				return fmt.Errorf("link %s: %w", e.relType, err)
			}
		}
	}

	log.Info().
		Int("cells", g.Rows()*g.Cols()).
		Int("edges", len(right)+len(down)).
		Msg("Exported grid to graph")
	return nil
}

// ExportOccurrences links each located phrase to its first cell. The relationship
// records every cell id along the reading so PhrasesAt can match interior cells.
func (b *Builder) ExportOccurrences(ctx context.Context, occs []locate.Occurrence) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, chunk := range worker.Batch(occurrenceRows(occs), batchSize) {
		_, err := session.Run(ctx, `
			UNWIND $occs AS o
			MERGE (p:Phrase {zh: o.zh})
			SET p.en = o.en
			WITH p, o
			MATCH (s:Cell {id: o.start})
			MERGE (p)-[r:READS {end: o.end}]->(s)
			SET r.direction = o.direction, r.reversed = o.reversed, r.cells = o.cells
		`, map[string]any{"occs": params(chunk)})
		if err != nil {
			return fmt.Errorf("upsert phrases: %w", err)
		}
	}

	log.Info().Int("occurrences", len(occs)).Msg("Exported phrase readings to graph")
	return nil
}

func cellRows(g *grid.Grid, colors *colormap.Map) []map[string]any {
	rows := make([]map[string]any, 0, g.Rows()*g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			rows = append(rows, map[string]any{
				"id":    colormap.CellID(r, c),
				"row":   r + 1,
				"col":   c + 1,
				"char":  g.Char(r, c),
				"color": string(colors.ColorFor(r, c)),
			})
		}
	}
	return rows
}

func edgeRows(g *grid.Grid) (right, down []map[string]any) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if c+1 < g.Cols() {
				right = append(right, map[string]any{"from": colormap.CellID(r, c), "to": colormap.CellID(r, c+1)})
			}
			if r+1 < g.Rows() {
				down = append(down, map[string]any{"from": colormap.CellID(r, c), "to": colormap.CellID(r+1, c)})
			}
		}
	}
	return right, down
}

func occurrenceRows(occs []locate.Occurrence) []map[string]any {
	rows := make([]map[string]any, 0, len(occs))
	for _, o := range occs {
		path := selection.Ordered(selection.Path(o.Start, o.End), o.Start, o.End)
		cells := make([]string, len(path))
		for i, p := range path {
			cells[i] = colormap.CellID(p.Row, p.Col)
		}
		rows = append(rows, map[string]any{
			"zh":        o.Phrase,
			"en":        o.English,
			"start":     colormap.CellID(o.Start.Row, o.Start.Col),
			"end":       colormap.CellID(o.End.Row, o.End.Col),
			"direction": o.Direction.String(),
			"reversed":  o.Reversed,
			"cells":     cells,
		})
	}
	return rows
}

// params converts rows to the []any shape the driver packs as a Cypher list.
func params(rows []map[string]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
