package selection

import "xuanji/internal/grid"

// State is the selection owned by the presentation layer. Start is fixed when a gesture
// begins; End follows the pointer until the gesture finishes.
type State struct {
	Start  *grid.Position  `json:"start,omitempty"`
	End    *grid.Position  `json:"end,omitempty"`
	Path   []grid.Position `json:"path,omitempty"`
	Active bool            `json:"active"`
}

// Begin starts a new gesture at p, discarding any previous selection.
func (s *State) Begin(p grid.Position) {
	start, end := p, p
	s.Start, s.End = &start, &end
	s.Path = Path(start, end)
	s.Active = true
}

// Move updates the end of an active gesture. It is a no-op when no gesture is active.
func (s *State) Move(p grid.Position) {
	if !s.Active || s.Start == nil {
		return
	}
	end := p
	s.End = &end
	s.Path = Path(*s.Start, end)
}

// Finish ends the gesture, keeping the selection.
func (s *State) Finish(p grid.Position) {
	s.Move(p)
	s.Active = false
}

// Reset clears the selection.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) Empty() bool {
	return s.Start == nil
}

func (s *State) Direction() Direction {
	if s.Start == nil || s.End == nil {
		return None
	}
	return DirectionOf(*s.Start, *s.End)
}

// Contains reports whether p is part of the selected path.
func (s *State) Contains(p grid.Position) bool {
	for _, q := range s.Path {
		if q == p {
			return true
		}
	}
	return false
}

// Text returns the selected characters in drag order.
func (s *State) Text(src CharSource) string {
	if s.Start == nil || s.End == nil {
		return ""
	}
	return OrderedString(src, s.Path, *s.Start, *s.End)
}
