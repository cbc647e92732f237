// Package grid materializes the poem grid from parsed CSV rows.
package grid

import (
	"fmt"
	"strings"
)

// DefaultSize is the side length of the Xuanji Tu.
const DefaultSize = 29

// Position is a zero-based (row, column) cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a dense, immutable table of single-character strings.
// An empty string means no character is assigned to the cell.
type Grid struct {
	rows  int
	cols  int
	cells [][]string
}

func newGrid(rows, cols int) *Grid {
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// FromLines builds a grid directly from a table of cell values. Short rows are padded
// with empty cells; the input is copied.
func FromLines(lines [][]string, cols int) *Grid {
	g := newGrid(len(lines), cols)
	for r, line := range lines {
		for c := 0; c < cols && c < len(line); c++ {
			g.cells[r][c] = line[c]
		}
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Char returns the character at (row, col), or "" when out of range.
func (g *Grid) Char(row, col int) string {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return ""
	}
	return g.cells[row][col]
}

func (g *Grid) At(p Position) string {
	return g.Char(p.Row, p.Col)
}

// Lines returns a copy of the cell table.
func (g *Grid) Lines() [][]string {
	out := make([][]string, g.rows)
	for r := range g.cells {
		out[r] = append([]string(nil), g.cells[r]...)
	}
	return out
}

// Filled counts cells that hold a character.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.cells {
		for _, ch := range row {
			if ch != "" {
				n++
			}
		}
	}
	return n
}

// String renders the grid one line per row, with a full-width space for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r, row := range g.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, ch := range row {
			if ch == "" {
				ch = "　"
			}
			sb.WriteString(ch)
		}
	}
	return sb.String()
}
