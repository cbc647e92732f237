package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Reading is a phrase that can be read through a cell.
type Reading struct {
	Chinese   string
	English   string
	Start     string
	End       string
	Direction string
	Reversed  bool
}

// Querier reads phrase readings back out of the graph.
type Querier struct {
	driver neo4j.DriverWithContext
}

func NewQuerier(driver neo4j.DriverWithContext) *Querier {
	return &Querier{driver: driver}
}

// PhrasesAt returns every reading that passes through the cell with the given id.
func (q *Querier) PhrasesAt(ctx context.Context, cellID string) ([]Reading, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (p:Phrase)-[r:READS]->(s:Cell)
		WHERE $id IN r.cells
		RETURN p.zh AS zh, p.en AS en, s.id AS start, r.end AS end,
		       r.direction AS direction, r.reversed AS reversed
		ORDER BY size(p.zh) DESC, p.zh
	`, map[string]any{"id": cellID})
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}

	var readings []Reading
	for result.Next(ctx) {
		record := result.Record()
		zh, _ := record.Get("zh")
		en, _ := record.Get("en")
		start, _ := record.Get("start")
		end, _ := record.Get("end")
		direction, _ := record.Get("direction")
		reversed, _ := record.Get("reversed")

		r := Reading{
			Chinese:   fmt.Sprintf("%v", zh),
			English:   fmt.Sprintf("%v", en),
			Start:     fmt.Sprintf("%v", start),
			End:       fmt.Sprintf("%v", end),
			Direction: fmt.Sprintf("%v", direction),
		}
		r.Reversed, _ = reversed.(bool)
		readings = append(readings, r)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read readings: %w", err)
	}

	log.Debug().Str("cell", cellID).Int("readings", len(readings)).Msg("Graph query complete")
	return readings, nil
}
