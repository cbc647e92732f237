// Package translation renders selections in English, from the phrase dictionary first
// and from a language model when the dictionary has no entry.
package translation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"xuanji/internal/phrase"
	"xuanji/internal/textutil"
)

// Source says where a rendering came from.
type Source string

const (
	SourceDictionary Source = "dictionary"
	SourceCache      Source = "cache"
	SourceModel      Source = "model"
	SourceNone       Source = "none"
)

// Model turns a prompt into text.
type Model interface {
	Translate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Cache stores model output between runs.
type Cache interface {
	Get(ctx context.Context, source string) (string, bool)
	Set(ctx context.Context, source, translated string) error
}

// Translator looks a selection up in the dictionary and, when a model is configured,
// asks it for anything the dictionary lacks.
type Translator struct {
	dict  *phrase.Dictionary
	model Model // nil disables the fallback
	cache Cache
}

func NewTranslator(dict *phrase.Dictionary, model Model, cache Cache) *Translator {
	return &Translator{dict: dict, model: model, cache: cache}
}

// Translate returns the English for text and where it came from. A missing entry with
// no model configured yields SourceNone and no error.
func (t *Translator) Translate(ctx context.Context, text string) (string, Source, error) {
	if text == "" {
		return "", SourceNone, nil
	}
	if en, ok := t.dict.Lookup(text); ok {
		return en, SourceDictionary, nil
	}
	if t.model == nil || !textutil.ContainsChinese(text) {
		return "", SourceNone, nil
	}
	if t.cache != nil {
		if en, ok := t.cache.Get(ctx, text); ok {
			return en, SourceCache, nil
		}
	}

	en, err := t.model.Translate(ctx, systemPrompt, BuildUserPrompt(text, t.dict))
	if err != nil {
		return "", SourceNone, fmt.Errorf("translate %q: %w", textutil.Truncate(text, 10), err)
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, text, en); err != nil {
			log.Warn().Err(err).Str("text", textutil.Truncate(text, 10)).Msg("Failed to cache translation")
		}
	}
	return en, SourceModel, nil
}
