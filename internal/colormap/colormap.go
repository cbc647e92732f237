// Package colormap assigns a color category to each grid cell.
package colormap

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Category is one of the inks the poem is written in.
type Category string

const (
	Red    Category = "red"
	Black  Category = "black"
	Blue   Category = "blue"
	Purple Category = "purple"
	Yellow Category = "yellow"
)

// Categories lists every recognized category in display order.
var Categories = []Category{Red, Black, Blue, Purple, Yellow}

// ParseCategory matches a category name, ignoring case and surrounding space.
func ParseCategory(name string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// CellID formats a zero-based position as r{row}c{col}, 1-based and zero-padded.
func CellID(row0, col0 int) string {
	return fmt.Sprintf("r%02dc%02d", row0+1, col0+1)
}

// ParseCellID is the inverse of CellID.
func ParseCellID(id string) (row0, col0 int, ok bool) {
	var r, c int
	if n, err := fmt.Sscanf(id, "r%dc%d", &r, &c); err != nil || n != 2 {
		return 0, 0, false
	}
	if r < 1 || c < 1 || CellID(r-1, c-1) != id {
		return 0, 0, false
	}
	return r - 1, c - 1, true
}

// Map is a read-only cell → category table with a fallback category.
type Map struct {
	colors map[string]Category
	def    Category
}

// Build keeps the entries whose category is recognized.
func Build(raw map[string]string, def Category) *Map {
	m := &Map{colors: make(map[string]Category, len(raw)), def: def}
	dropped := 0
	for id, name := range raw {
		c, ok := ParseCategory(name)
		if !ok {
			dropped++
			continue
		}
		m.colors[id] = c
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("Ignored unknown color categories")
	}
	return m
}

// Decode parses a flat JSON object of cell id → category name. Any decode failure
// yields an empty map; the caller still gets the default color for every cell.
func Decode(data []byte, def Category) *Map {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Msg("Failed to decode color map, using defaults")
		return Build(nil, def)
	}
	return Build(raw, def)
}

// Default returns the category used for cells absent from the map.
func (m *Map) Default() Category { return m.def }

func (m *Map) Len() int { return len(m.colors) }

// ColorFor returns the category of the cell at (row0, col0).
func (m *Map) ColorFor(row0, col0 int) Category {
	if c, ok := m.colors[CellID(row0, col0)]; ok {
		return c
	}
	return m.def
}

// Counts tallies mapped cells per category.
func (m *Map) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range m.colors {
		out[c]++
	}
	return out
}
