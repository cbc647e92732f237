// Package phrase holds the Chinese → English phrase dictionary.
package phrase

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	zhHeaders = []string{"zh", "cn", "chinese"}
	enHeaders = []string{"en", "english"}
)

// Dictionary maps a Chinese phrase to its English rendering. It is read-only once built.
type Dictionary struct {
	entries map[string]string
}

// Build reads a two-column phrase table. The first row is always a header; it names the
// Chinese and English columns, which default to the first two columns.
func Build(rows [][]string) *Dictionary {
	d := &Dictionary{entries: make(map[string]string)}
	if len(rows) < 2 {
		return d
	}

	zhIdx, enIdx := 0, 1
	for i, f := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(f))
		switch {
		case slices.Contains(zhHeaders, name):
			zhIdx = i
		case slices.Contains(enHeaders, name):
			enIdx = i
		}
	}

	need := max(zhIdx, enIdx) + 1
	for _, row := range rows[1:] {
		if len(row) < need {
			continue
		}
		zh := strings.TrimSpace(row[zhIdx])
		en := strings.TrimSpace(row[enIdx])
		if zh == "" || en == "" {
			continue
		}
		d.entries[zh] = en
	}

	return d
}

// FromMap copies entries into a new dictionary, skipping blank keys or values.
func FromMap(entries map[string]string) *Dictionary {
	d := &Dictionary{entries: make(map[string]string, len(entries))}
	for zh, en := range entries {
		zh, en = strings.TrimSpace(zh), strings.TrimSpace(en)
		if zh != "" && en != "" {
			d.entries[zh] = en
		}
	}
	return d
}

// Lookup returns the English rendering of key. A missing key is not an error.
func (d *Dictionary) Lookup(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	en, ok := d.entries[key]
	return en, ok
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns every phrase, longest first, then lexically.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	keys := slices.Collect(maps.Keys(d.entries))
	slices.SortFunc(keys, func(a, b string) int {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return lb - la
		}
		return strings.Compare(a, b)
	})
	return keys
}

// Entries returns a snapshot of the dictionary.
func (d *Dictionary) Entries() map[string]string {
	if d == nil {
		return map[string]string{}
	}
	return maps.Clone(d.entries)
}

// Merge returns a new dictionary where entries from other override d.
func (d *Dictionary) Merge(other map[string]string) *Dictionary {
	merged := FromMap(d.Entries())
	for zh, en := range FromMap(other).entries {
		merged.entries[zh] = en
	}
	return merged
}
