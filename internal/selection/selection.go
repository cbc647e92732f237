// Package selection computes straight-line runs of cells between two grid positions
// and the text they spell in the direction the user dragged.
package selection

import (
	"fmt"
	"slices"
	"strings"

	"xuanji/internal/grid"
)

// Direction is the axis a selection runs along.
type Direction int

const (
	None Direction = iota
	Horizontal
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*d = Horizontal
	case "vertical":
		*d = Vertical
	case "none", "":
		*d = None
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}

// CharSource is anything that can report the character at a position.
type CharSource interface {
	At(p grid.Position) string
}

// Path returns the cells between start and end inclusive, in ascending order.
// Diagonal or disjoint endpoints select only start.
func Path(start, end grid.Position) []grid.Position {
	switch {
	case start.Row == end.Row:
		lo, hi := min(start.Col, end.Col), max(start.Col, end.Col)
		path := make([]grid.Position, 0, hi-lo+1)
		for c := lo; c <= hi; c++ {
			path = append(path, grid.Position{Row: start.Row, Col: c})
		}
		return path
	case start.Col == end.Col:
		lo, hi := min(start.Row, end.Row), max(start.Row, end.Row)
		path := make([]grid.Position, 0, hi-lo+1)
		for r := lo; r <= hi; r++ {
			path = append(path, grid.Position{Row: r, Col: start.Col})
		}
		return path
	default:
		return []grid.Position{start}
	}
}

// DirectionOf classifies the drag from start to end.
func DirectionOf(start, end grid.Position) Direction {
	switch {
	case start == end:
		return None
	case start.Row == end.Row:
		return Horizontal
	case start.Col == end.Col:
		return Vertical
	default:
		return None
	}
}

// Ordered returns path sorted in the direction of the drag from start to end.
// The input is not modified.
func Ordered(path []grid.Position, start, end grid.Position) []grid.Position {
	out := slices.Clone(path)
	switch DirectionOf(start, end) {
	case Horizontal:
		slices.SortFunc(out, func(a, b grid.Position) int { return a.Col - b.Col })
		if start.Col > end.Col {
			slices.Reverse(out)
		}
	case Vertical:
		slices.SortFunc(out, func(a, b grid.Position) int { return a.Row - b.Row })
		if start.Row > end.Row {
			slices.Reverse(out)
		}
	}
	return out
}

// OrderedString concatenates the characters along path in drag order, so a right-to-left
// or bottom-to-top drag reads the poem backwards. Empty cells contribute nothing.
func OrderedString(src CharSource, path []grid.Position, start, end grid.Position) string {
	var sb strings.Builder
	for _, p := range Ordered(path, start, end) {
		sb.WriteString(src.At(p))
	}
	return sb.String()
}
