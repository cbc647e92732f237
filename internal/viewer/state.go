package viewer

import "xuanji/internal/selection"

const (
	minZoom = 1
	maxZoom = 3
)

// State is everything the viewer shows that the user can change. It is plain data so
// it can be saved and restored.
type State struct {
	Zoom      int             `json:"zoom"`
	OffsetRow int             `json:"offset_row"`
	OffsetCol int             `json:"offset_col"`
	Selection selection.State `json:"selection"`
}

// DefaultState shows the top-left corner at the smallest zoom with nothing selected.
func DefaultState() State {
	return State{Zoom: minZoom}
}

// ZoomBy changes the zoom level within bounds.
func (s *State) ZoomBy(delta int) {
	s.Zoom = min(max(s.Zoom+delta, minZoom), maxZoom)
}

// PanBy moves the viewport, clamped so it never starts outside the grid.
func (s *State) PanBy(dRow, dCol, rows, cols int) {
	s.OffsetRow = min(max(s.OffsetRow+dRow, 0), max(rows-1, 0))
	s.OffsetCol = min(max(s.OffsetCol+dCol, 0), max(cols-1, 0))
}

// ResetView restores zoom and pan, keeping the selection.
func (s *State) ResetView() {
	s.Zoom = minZoom
	s.OffsetRow, s.OffsetCol = 0, 0
}
