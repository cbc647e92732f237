package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"xuanji/internal/textutil"
)

// TranslationCache keeps fallback translations in memory, backed by PostgreSQL when a
// database is configured.
type TranslationCache struct {
	db     DB // nil for memory only
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
}

// NewTranslationCache creates a cache. A nil db keeps everything in memory.
func NewTranslationCache(db DB) *TranslationCache {
	return &TranslationCache{
		db:     db,
		memory: make(map[string]string),
	}
}

// Get retrieves a cached translation.
func (c *TranslationCache) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	if c.db == nil {
		return "", false
	}

	var translated string
	err := c.db.QueryRow(ctx, `SELECT translated FROM translation_cache WHERE hash = $1`, hash).Scan(&translated)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Err(err).Str("text", textutil.Truncate(sourceText, 10)).Msg("Cache lookup failed")
		}
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in memory and, when configured, in PostgreSQL.
func (c *TranslationCache) Set(ctx context.Context, sourceText, translated string) error {
	hash := textutil.Hash(sourceText)

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	_, err := c.db.Exec(ctx, `
		INSERT INTO translation_cache (hash, source, translated) VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO UPDATE SET translated = EXCLUDED.translated
	`, hash, sourceText, translated)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Preload loads all cached translations into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	if c.db == nil {
		return nil
	}

	rows, err := c.db.Query(ctx, `SELECT hash, translated FROM translation_cache`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash, translated string
		if err := rows.Scan(&hash, &translated); err != nil {
			return fmt.Errorf("scan cached translation: %w", err)
		}
		c.memory[hash] = translated
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded translation cache")
	return nil
}
