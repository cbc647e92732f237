// Package resource finds and loads the bundled grid, phrase and color files.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Kind identifies which resource a file provides.
type Kind int

const (
	KindGrid Kind = iota
	KindPhrases
	KindColors
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "grid"
	case KindPhrases:
		return "phrases"
	case KindColors:
		return "colors"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var phraseHints = []string{"phrase", "dict", "glossary"}

// Locator maps each resource kind to a file under a resource directory.
// Explicitly configured names win over files discovered by walking the directory.
type Locator struct {
	dir        string
	explicit   map[Kind]string
	discovered map[Kind]string
	walked     bool
}

// NewLocator creates a Locator rooted at dir.
func NewLocator(dir string) *Locator {
	return &Locator{
		dir:      dir,
		explicit: make(map[Kind]string),
	}
}

// WithFile pins kind to name. Relative names resolve against the resource directory.
// An empty name leaves discovery in charge.
func (l *Locator) WithFile(kind Kind, name string) *Locator {
	if name != "" {
		l.explicit[kind] = name
	}
	return l
}

// Find returns the path of the file providing kind.
func (l *Locator) Find(kind Kind) (string, error) {
	if name, ok := l.explicit[kind]; ok {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.dir, name)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s %s", ErrResourceNotFound, kind, path)
		}
		return path, nil
	}

	if !l.walked {
		if err := l.walk(); err != nil {
			return "", err
		}
	}

	path, ok := l.discovered[kind]
	if !ok {
		return "", fmt.Errorf("%w: no %s file under %s", ErrResourceNotFound, kind, l.dir)
	}
	return path, nil
}

func (l *Locator) walk() error {
	l.walked = true
	l.discovered = make(map[Kind]string)

	info, err := os.Stat(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: directory %s", ErrResourceNotFound, l.dir)
		}
		return fmt.Errorf("stat resource dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resource path is not a directory: %s", l.dir)
	}

	// WalkDir visits entries in lexical order, so the first match per kind is deterministic.
	err = filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		kind, ok := classify(path)
		if !ok {
			return nil
		}
		if prev, taken := l.discovered[kind]; taken {
			log.Debug().Str("kind", kind.String()).Str("kept", prev).Str("ignored", path).Msg("Duplicate resource")
			return nil
		}
		l.discovered[kind] = path
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk resource dir: %w", err)
	}

	log.Debug().Int("count", len(l.discovered)).Str("root", l.dir).Msg("Discovered resources")
	return nil
}

func classify(path string) (Kind, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(base) {
	case ".json":
		return KindColors, true
	case ".csv":
		for _, hint := range phraseHints {
			if strings.Contains(base, hint) {
				return KindPhrases, true
			}
		}
		return KindGrid, true
	default:
		return 0, false
	}
}
