package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
	"xuanji/internal/locate"
	"xuanji/internal/selection"
)

func TestCellRows(t *testing.T) {
	g := grid.FromLines([][]string{{"琴", "清"}, {"流", ""}}, 2)
	colors := colormap.Build(map[string]string{"r01c02": "red"}, colormap.Black)

	rows := cellRows(g, colors)
	require.Len(t, rows, 4)
	assert.Equal(t, map[string]any{"id": "r01c02", "row": 1, "col": 2, "char": "清", "color": "red"}, rows[1])
	assert.Equal(t, map[string]any{"id": "r02c02", "row": 2, "col": 2, "char": "", "color": "black"}, rows[3])
}

func TestEdgeRows(t *testing.T) {
	g := grid.FromLines([][]string{{"", "", ""}, {"", "", ""}}, 3)

	right, down := edgeRows(g)
	assert.Len(t, right, 4)
	assert.Len(t, down, 3)
	assert.Equal(t, map[string]any{"from": "r01c01", "to": "r01c02"}, right[0])
	assert.Equal(t, map[string]any{"from": "r01c03", "to": "r02c03"}, down[2])
}

func TestOccurrenceRowsFollowReadingOrder(t *testing.T) {
	occs := []locate.Occurrence{{
		Phrase:    "流清",
		English:   "stream clear",
		Start:     grid.Position{Row: 0, Col: 2},
		End:       grid.Position{Row: 0, Col: 1},
		Direction: selection.Horizontal,
		Reversed:  true,
	}}

	rows := occurrenceRows(occs)
	require.Len(t, rows, 1)
	assert.Equal(t, "r01c03", rows[0]["start"])
	assert.Equal(t, "r01c02", rows[0]["end"])
	assert.Equal(t, "horizontal", rows[0]["direction"])
	assert.Equal(t, true, rows[0]["reversed"])
	assert.Equal(t, []string{"r01c03", "r01c02"}, rows[0]["cells"])
}
