package grid

import "fmt"

// FormatError reports a grid table that cannot be materialized.
type FormatError struct {
	Layout string // "cell-list", "row-grid" or "" when detection never ran
	Reason string
}

func (e *FormatError) Error() string {
	if e.Layout == "" {
		return fmt.Sprintf("grid format error: %s", e.Reason)
	}
	return fmt.Sprintf("grid format error (%s): %s", e.Layout, e.Reason)
}
