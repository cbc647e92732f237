package grid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	rowHeaders  = []string{"row", "r", "行"}
	colHeaders  = []string{"col", "c", "列"}
	charHeaders = []string{"char", "ch", "zi", "字"}
)

// Layout is the detected shape of a grid table: either CellList or RowGrid.
type Layout interface {
	Name() string
	// Materialize builds a size×size grid from the table.
	Materialize(rows [][]string, size int) (*Grid, error)
}

// CellList lists one (row, col, char) triple per non-empty cell, 1-based.
type CellList struct {
	RowIndex  int
	ColIndex  int
	CharIndex int
	// HeaderIsData is set when the first table row already holds coordinates.
	HeaderIsData bool
}

// RowGrid lists one full grid row per table row.
type RowGrid struct{}

func (CellList) Name() string { return "cell-list" }
func (RowGrid) Name() string  { return "row-grid" }

// Detect sniffs the table layout from its header and first data row.
func Detect(rows [][]string) Layout {
	if len(rows) == 0 {
		return RowGrid{}
	}

	header := make([]string, len(rows[0]))
	for i, f := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(f))
	}

	rowIdx := indexOfAny(header, rowHeaders)
	colIdx := indexOfAny(header, colHeaders)
	charIdx := indexOfAny(header, charHeaders)

	named := rowIdx >= 0 && colIdx >= 0 && charIdx >= 0
	inferred := len(rows) > 1 && len(rows[1]) >= 3 && leadingInts(rows[1])
	if !named && !inferred {
		return RowGrid{}
	}

	if rowIdx < 0 {
		rowIdx = 0
	}
	if colIdx < 0 {
		colIdx = 1
	}
	if charIdx < 0 {
		charIdx = 2
	}

	return CellList{
		RowIndex:     rowIdx,
		ColIndex:     colIdx,
		CharIndex:    charIdx,
		HeaderIsData: len(rows[0]) >= 2 && leadingInts(rows[0]),
	}
}

// Build detects the layout of rows and materializes a size×size grid.
func Build(rows [][]string, size int) (*Grid, error) {
	if size <= 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid grid size %d", size)}
	}
	if len(rows) < 2 {
		return nil, &FormatError{Reason: fmt.Sprintf("table has %d rows, need at least 2", len(rows))}
	}
	return Detect(rows).Materialize(rows, size)
}

func (l CellList) Materialize(rows [][]string, size int) (*Grid, error) {
	g := newGrid(size, size)

	data := rows
	if !l.HeaderIsData && len(data) > 0 {
		data = data[1:]
	}

	need := max(l.RowIndex, l.ColIndex, l.CharIndex) + 1
	for _, row := range data {
		if len(row) < need {
			continue
		}
		// Unparsable coordinates are skipped rather than defaulted.
		r, err := strconv.Atoi(strings.TrimSpace(row[l.RowIndex]))
		if err != nil {
			continue
		}
		c, err := strconv.Atoi(strings.TrimSpace(row[l.ColIndex]))
		if err != nil {
			continue
		}
		r, c = r-1, c-1
		if r < 0 || r >= size || c < 0 || c >= size {
			continue
		}
		g.cells[r][c] = strings.TrimSpace(row[l.CharIndex])
	}

	return g, nil
}

func (RowGrid) Materialize(rows [][]string, size int) (*Grid, error) {
	if len(rows) < size {
		return nil, &FormatError{
			Layout: RowGrid{}.Name(),
			Reason: fmt.Sprintf("found %d rows, need %d", len(rows), size),
		}
	}

	g := newGrid(size, size)
	for r := 0; r < size; r++ {
		row := rows[r]
		if len(row) < size {
			continue
		}
		for c := 0; c < size; c++ {
			g.cells[r][c] = strings.TrimSpace(row[c])
		}
	}

	return g, nil
}

func indexOfAny(fields, names []string) int {
	for i, f := range fields {
		if slices.Contains(names, f) {
			return i
		}
	}
	return -1
}

func leadingInts(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	for _, f := range fields[:2] {
		if _, err := strconv.Atoi(strings.TrimSpace(f)); err != nil {
			return false
		}
	}
	return true
}
