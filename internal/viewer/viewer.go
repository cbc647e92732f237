// Package viewer is an interactive terminal view of the grid: drag with the mouse to
// select a run of characters and see its dictionary rendering.
package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"

	"xuanji/internal/colormap"
	"xuanji/internal/grid"
	"xuanji/internal/locate"
	"xuanji/internal/phrase"
	"xuanji/internal/selection"
)

const (
	headerHeight = 1
	panelHeight  = 4
)

var categoryColors = map[colormap.Category]tcell.Color{
	colormap.Red:    tcell.ColorRed,
	colormap.Black:  tcell.ColorDefault,
	colormap.Blue:   tcell.ColorBlue,
	colormap.Purple: tcell.ColorPurple,
	colormap.Yellow: tcell.ColorYellow,
}

// Viewer draws a grid on a tcell screen and turns input events into State changes.
type Viewer struct {
	screen  tcell.Screen
	grid    *grid.Grid
	colors  *colormap.Map
	phrases *phrase.Dictionary
	found   []locate.Occurrence

	state    State
	dragging bool
	last     grid.Position
}

// New creates a viewer over an initialized screen.
func New(screen tcell.Screen, g *grid.Grid, colors *colormap.Map, phrases *phrase.Dictionary, found []locate.Occurrence) *Viewer {
	return &Viewer{
		screen:  screen,
		grid:    g,
		colors:  colors,
		phrases: phrases,
		found:   found,
		state:   DefaultState(),
	}
}

// State returns a copy of the current view state.
func (v *Viewer) State() State {
	return v.state
}

// Run polls events until the user quits.
func (v *Viewer) Run() error {
	v.screen.EnableMouse()
	v.Draw()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one input event. It returns false when the viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		return false
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	rows, cols := v.grid.Rows(), v.grid.Cols()

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		v.state.Selection.Reset()
		v.dragging = false
	case tcell.KeyUp:
		v.state.PanBy(-1, 0, rows, cols)
	case tcell.KeyDown:
		v.state.PanBy(1, 0, rows, cols)
	case tcell.KeyLeft:
		v.state.PanBy(0, -1, rows, cols)
	case tcell.KeyRight:
		v.state.PanBy(0, 1, rows, cols)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			v.state.PanBy(-1, 0, rows, cols)
		case 'j':
			v.state.PanBy(1, 0, rows, cols)
		case 'h':
			v.state.PanBy(0, -1, rows, cols)
		case 'l':
			v.state.PanBy(0, 1, rows, cols)
		case '+', '=':
			v.state.ZoomBy(1)
		case '-':
			v.state.ZoomBy(-1)
		case '0':
			v.state.ResetView()
		case 'c':
			v.state.Selection.Reset()
			v.dragging = false
		}
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		v.state.ZoomBy(1)
		return
	case buttons&tcell.WheelDown != 0:
		v.state.ZoomBy(-1)
		return
	}

	if buttons&tcell.Button1 != 0 {
		p, ok := v.CellAt(x, y)
		if !v.dragging {
			if !ok {
				return
			}
			v.state.Selection.Begin(p)
			v.dragging = true
			v.last = p
			return
		}
		if ok {
			v.state.Selection.Move(p)
			v.last = p
		}
		return
	}

	if buttons == tcell.ButtonNone && v.dragging {
		v.state.Selection.Finish(v.last)
		v.dragging = false
		log.Debug().
			Str("text", v.state.Selection.Text(v.grid)).
			Str("direction", v.state.Selection.Direction().String()).
			Msg("Selection finished")
	}
}

func (v *Viewer) cellSize() (w, h int) {
	return 2 * v.state.Zoom, v.state.Zoom
}

// CellAt maps a screen coordinate to the grid position drawn there.
func (v *Viewer) CellAt(x, y int) (grid.Position, bool) {
	cw, ch := v.cellSize()
	_, height := v.screen.Size()
	if x < 0 || y < headerHeight || y >= height-panelHeight {
		return grid.Position{}, false
	}
	p := grid.Position{
		Row: (y-headerHeight)/ch + v.state.OffsetRow,
		Col: x/cw + v.state.OffsetCol,
	}
	return p, v.grid.Contains(p)
}

// Draw renders the header, the visible part of the grid and the selection panel.
func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	v.drawText(0, 0, width, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("璇玑图  zoom %d  [drag] select  [arrows] pan  [+/-] zoom  [esc] clear  [q] quit", v.state.Zoom))

	cw, ch := v.cellSize()
	visibleRows := max((height-headerHeight-panelHeight)/ch, 0)
	visibleCols := width / cw

	for vr := 0; vr < visibleRows; vr++ {
		for vc := 0; vc < visibleCols; vc++ {
			p := grid.Position{Row: vr + v.state.OffsetRow, Col: vc + v.state.OffsetCol}
			if !v.grid.Contains(p) {
				continue
			}
			v.drawCell(vc*cw, headerHeight+vr*ch, cw, ch, p)
		}
	}

	v.drawPanel(width, height)
	v.screen.Show()
}

func (v *Viewer) drawCell(x, y, w, h int, p grid.Position) {
	style := tcell.StyleDefault.Foreground(categoryColors[v.colors.ColorFor(p.Row, p.Col)])
	if v.state.Selection.Contains(p) {
		style = style.Reverse(true)
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			v.screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}

	text := v.grid.At(p)
	if text == "" {
		return
	}
	runes := []rune(text)
	pad := max((w-runewidth.StringWidth(text))/2, 0)
	v.screen.SetContent(x+pad, y+(h-1)/2, runes[0], runes[1:], style)
}

func (v *Viewer) drawPanel(width, height int) {
	top := height - panelHeight
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, top, '─', nil, tcell.StyleDefault)
	}

	sel := &v.state.Selection
	if sel.Empty() {
		v.drawText(0, top+1, width, tcell.StyleDefault.Dim(true), "Drag across a row or column to select.")
		return
	}

	text := sel.Text(v.grid)
	v.drawText(0, top+1, width, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("%s  (%s, %d cells)", text, sel.Direction(), len(sel.Path)))

	if en, ok := v.phrases.Lookup(text); ok {
		v.drawText(0, top+2, width, tcell.StyleDefault, en)
	} else {
		v.drawText(0, top+2, width, tcell.StyleDefault.Dim(true), "No dictionary entry.")
	}

	if sel.Start != nil {
		if hits := locate.At(v.found, *sel.Start); len(hits) > 0 {
			v.drawText(0, top+3, width, tcell.StyleDefault.Dim(true),
				fmt.Sprintf("%d known phrase readings pass through %s", len(hits), colormap.CellID(sel.Start.Row, sel.Start.Col)))
		}
	}
}

func (v *Viewer) drawText(x, y, maxWidth int, style tcell.Style, s string) {
	s = runewidth.Truncate(s, maxWidth-x, "…")
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// SelectionText is the current selection read in drag order.
func (v *Viewer) SelectionText() string {
	return v.state.Selection.Text(v.grid)
}

// Selection exposes the selection state for callers that persist it.
func (v *Viewer) Selection() selection.State {
	return v.state.Selection
}
