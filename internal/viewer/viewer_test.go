package viewer

import (
	"encoding/json"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
	"xuanji/internal/locate"
	"xuanji/internal/phrase"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)

	g := grid.FromLines([][]string{
		{"琴", "清", "流"},
		{"楚", "激", "弦"},
		{"商", "秦", "曲"},
	}, 3)
	colors := colormap.Build(map[string]string{"r01c01": "red"}, colormap.Black)
	dict := phrase.FromMap(map[string]string{"琴清流": "the zither's clear stream"})
	found := []locate.Occurrence{{Phrase: "琴清流", Start: grid.Position{}, End: grid.Position{Row: 0, Col: 2}}}

	return New(screen, g, colors, dict, found), screen
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestCellAt(t *testing.T) {
	v, _ := newTestViewer(t)

	tests := []struct {
		name string
		x, y int
		pos  grid.Position
		ok   bool
	}{
		{name: "First cell", x: 0, y: 1, pos: grid.Position{Row: 0, Col: 0}, ok: true},
		{name: "Right half of wide cell", x: 3, y: 2, pos: grid.Position{Row: 1, Col: 1}, ok: true},
		{name: "Header", x: 0, y: 0},
		{name: "Panel", x: 0, y: 8},
		{name: "Past last column", x: 6, y: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := v.CellAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.pos, p)
			}
		})
	}
}

func TestCellAtFollowsZoomAndPan(t *testing.T) {
	v, _ := newTestViewer(t)
	v.HandleEvent(key('+'))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))

	assert.Equal(t, 2, v.State().Zoom)
	p, ok := v.CellAt(4, 3)
	require.True(t, ok)
	assert.Equal(t, grid.Position{Row: 1, Col: 2}, p)
}

func TestDragSelectsInDragOrder(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(mouse(4, 1, tcell.Button1))
	v.HandleEvent(mouse(2, 1, tcell.Button1))
	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(0, 1, tcell.ButtonNone))

	assert.Equal(t, "流清琴", v.SelectionText())
	sel := v.Selection()
	assert.False(t, sel.Active)
	assert.Len(t, sel.Path, 3)

	// Releasing outside the grid keeps the last cell inside it.
	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(0, 3, tcell.Button1))
	v.HandleEvent(mouse(0, 10, tcell.Button1))
	v.HandleEvent(mouse(0, 10, tcell.ButtonNone))
	assert.Equal(t, "琴楚商", v.SelectionText())
}

func TestDiagonalDragSelectsStartOnly(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(4, 3, tcell.Button1))
	v.HandleEvent(mouse(4, 3, tcell.ButtonNone))

	assert.Equal(t, "琴", v.SelectionText())
}

func TestPressOutsideGridIgnored(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(mouse(0, 0, tcell.Button1))
	v.HandleEvent(mouse(0, 0, tcell.ButtonNone))

	sel := v.Selection()
	assert.True(t, sel.Empty())
}

func TestKeys(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(0, 1, tcell.ButtonNone))
	require.Equal(t, "琴", v.SelectionText())

	assert.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Empty(t, v.SelectionText())

	for range 5 {
		v.HandleEvent(key('+'))
	}
	assert.Equal(t, maxZoom, v.State().Zoom)

	v.HandleEvent(key('j'))
	v.HandleEvent(key('l'))
	assert.Equal(t, 1, v.State().OffsetRow)
	assert.Equal(t, 1, v.State().OffsetCol)

	v.HandleEvent(key('0'))
	assert.Equal(t, DefaultState(), v.State())

	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestDraw(t *testing.T) {
	v, screen := newTestViewer(t)

	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(4, 1, tcell.Button1))
	v.HandleEvent(mouse(4, 1, tcell.ButtonNone))
	v.Draw()

	r, _, style, _ := screen.GetContent(0, 1)
	assert.Equal(t, '琴', r)
	fg, _, attrs := style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.NotZero(t, attrs&tcell.AttrReverse)

	r, _, style, _ = screen.GetContent(0, 2)
	assert.Equal(t, '楚', r)
	_, _, attrs = style.Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)

	r, _, _, _ = screen.GetContent(0, 9)
	assert.Equal(t, '琴', r)
	r, _, _, _ = screen.GetContent(0, 10)
	assert.Equal(t, 't', r)
}

func TestStateSerializes(t *testing.T) {
	v, _ := newTestViewer(t)
	v.HandleEvent(mouse(0, 1, tcell.Button1))
	v.HandleEvent(mouse(0, 3, tcell.Button1))
	v.HandleEvent(mouse(0, 3, tcell.ButtonNone))

	data, err := json.Marshal(v.State())
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v.State(), back)
}

func TestPanClamps(t *testing.T) {
	s := DefaultState()
	s.PanBy(-3, 10, 29, 29)
	assert.Equal(t, 0, s.OffsetRow)
	assert.Equal(t, 10, s.OffsetCol)
	s.PanBy(100, 100, 29, 29)
	assert.Equal(t, 28, s.OffsetRow)
	assert.Equal(t, 28, s.OffsetCol)
}
