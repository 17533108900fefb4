// Package render draws the simulation on a terminal through tcell.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dungeoncore/server/internal/anim"
	"github.com/dungeoncore/server/internal/world"
)

type glyph struct {
	r     rune
	style tcell.Style
}

// Glyphs by asset key prefix. First match wins.
var glyphs = []struct {
	prefix string
	glyph  glyph
}{
	{"floor_ladder", glyph{'H', tcell.StyleDefault.Foreground(tcell.ColorYellow)}},
	{"floor", glyph{'.', tcell.StyleDefault.Foreground(tcell.ColorGray)}},
	{"wall_fountain", glyph{'~', tcell.StyleDefault.Foreground(tcell.ColorAqua)}},
	{"wall", glyph{'#', tcell.StyleDefault.Foreground(tcell.ColorWhite)}},
	{"crate", glyph{'>', tcell.StyleDefault.Foreground(tcell.ColorGreen)}},
	{"weapon", glyph{'*', tcell.StyleDefault.Foreground(tcell.ColorOrange)}},
	{"big_zombie", glyph{'Z', tcell.StyleDefault.Foreground(tcell.ColorRed)}},
	{"wizzard", glyph{'@', tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)}},
	{"explosion", glyph{'%', tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)}},
}

var unknownGlyph = glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorPurple)}

func lookup(f anim.Frame) glyph {
	for _, g := range glyphs {
		if strings.HasPrefix(string(f), g.prefix) {
			return g.glyph
		}
	}
	return unknownGlyph
}

// Terminal maps world coordinates onto screen cells. The bottom row of the
// screen is the status line; everything drawn below the viewport lands there.
type Terminal struct {
	screen   tcell.Screen
	viewport world.Size
}

func NewTerminal(screen tcell.Screen, viewport world.Size) *Terminal {
	return &Terminal{screen: screen, viewport: viewport}
}

// Clear wipes the screen before a frame.
func (t *Terminal) Clear() { t.screen.Clear() }

// Show flushes the frame to the terminal.
func (t *Terminal) Show() { t.screen.Show() }

// field returns the size of the play area in cells.
func (t *Terminal) field() (cols, rows int) {
	w, h := t.screen.Size()
	return w, max(h-1, 0)
}

func (t *Terminal) cell(x, y float64) (int, int) {
	cols, rows := t.field()
	return int(x / t.viewport.W * float64(cols)), int(y / t.viewport.H * float64(rows))
}

// DrawFrame fills the cells covered by the box with the frame's glyph.
func (t *Terminal) DrawFrame(f anim.Frame, x, y, w, h float64) {
	g := lookup(f)
	cols, rows := t.field()
	x0, y0 := t.cell(x, y)
	x1, y1 := t.cell(x+w, y+h)
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for cy := max(y0, 0); cy < min(y1, rows); cy++ {
		for cx := max(x0, 0); cx < min(x1, cols); cx++ {
			t.screen.SetContent(cx, cy, g.r, nil, g.style)
		}
	}
}

// DrawText writes text starting at the cell of (x, y).
func (t *Terminal) DrawText(x, y float64, text string) {
	cols, rows := t.field()
	cx, cy := t.cell(x, y)
	if y >= t.viewport.H {
		cy = rows
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range []rune(text) {
		if cx+i >= cols {
			break
		}
		t.screen.SetContent(cx+i, cy, r, nil, style)
	}
}

// Banner writes a centred message on the middle row, used for the end
// screens.
func (t *Terminal) Banner(text string) {
	cols, rows := t.field()
	runes := []rune(text)
	x := max((cols-len(runes))/2, 0)
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for i, r := range runes {
		if x+i >= cols {
			break
		}
		t.screen.SetContent(x+i, rows/2, r, nil, style)
	}
}
