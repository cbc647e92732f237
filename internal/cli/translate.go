package cli

import (
	"context"

	"github.com/rs/zerolog/log"

	"xuanji/internal/config"
	"xuanji/internal/phrase"
	"xuanji/internal/store"
	"xuanji/internal/translation"
)

// newTranslator builds a dictionary-first translator. With fallback enabled and an API key
// configured, misses go to the model and are cached in PostgreSQL when DATABASE_URL is set.
func newTranslator(ctx context.Context, cfg *config.Config, dict *phrase.Dictionary, fallback bool) (*translation.Translator, func(), error) {
	noop := func() {}
	if !fallback {
		return translation.NewTranslator(dict, nil, nil), noop, nil
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set, translating from the dictionary only")
		return translation.NewTranslator(dict, nil, nil), noop, nil
	}

	model := translation.NewGeminiClient(cfg.GeminiAPIKey, cfg.TranslationModel)
	if cfg.DatabaseURL == "" {
		return translation.NewTranslator(dict, model, store.NewTranslationCache(nil)), noop, nil
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Translation cache unavailable, keeping it in memory")
		return translation.NewTranslator(dict, model, store.NewTranslationCache(nil)), noop, nil
	}
	if err := store.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cache := store.NewTranslationCache(pool)
	if err := cache.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload translation cache")
	}
	return translation.NewTranslator(dict, model, cache), pool.Close, nil
}
