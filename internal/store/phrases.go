package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"xuanji/internal/phrase"
	"xuanji/internal/worker"
)

// PhraseStore keeps a shared copy of the phrase dictionary.
type PhraseStore struct {
	db DB
}

func NewPhraseStore(db DB) *PhraseStore {
	return &PhraseStore{db: db}
}

// Upsert writes every dictionary entry, batchSize rows per round trip.
func (ps *PhraseStore) Upsert(ctx context.Context, dict *phrase.Dictionary, batchSize int) (int, error) {
	entries := dict.Entries()
	written := 0

	for _, keys := range worker.Batch(dict.Keys(), batchSize) {
		batch := &pgx.Batch{}
		for _, zh := range keys {
			batch.Queue(`
				INSERT INTO phrases (zh, en) VALUES ($1, $2)
				ON CONFLICT (zh) DO UPDATE SET en = EXCLUDED.en, updated_at = now()
			`, zh, entries[zh])
		}

		results := ps.db.SendBatch(ctx, batch)
		for range keys {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return written, fmt.Errorf("upsert phrase: %w", err)
			}
			written++
		}
		if err := results.Close(); err != nil {
			return written, fmt.Errorf("close phrase batch: %w", err)
		}
	}

	log.Info().Int("phrases", written).Msg("Upserted phrases")
	return written, nil
}

// All returns every stored phrase.
func (ps *PhraseStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := ps.db.Query(ctx, `SELECT zh, en FROM phrases`)
	if err != nil {
		return nil, fmt.Errorf("query phrases: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var zh, en string
		if err := rows.Scan(&zh, &en); err != nil {
			return nil, fmt.Errorf("scan phrase: %w", err)
		}
		out[zh] = en
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phrases: %w", err)
	}
	return out, nil
}

// WriteCSV writes a zh,en dictionary file that the resource loader can read back.
func WriteCSV(w io.Writer, dict *phrase.Dictionary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"zh", "en"}); err != nil {
		return fmt.Errorf("write phrase header: %w", err)
	}

	entries := dict.Entries()
	for _, zh := range dict.Keys() {
		if err := cw.Write([]string{zh, entries[zh]}); err != nil {
			return fmt.Errorf("write phrase %s: %w", zh, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
