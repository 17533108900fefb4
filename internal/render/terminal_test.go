package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/world"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(40, 31)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawFrameFillsTile(t *testing.T) {
	s := newScreen(t)
	term := NewTerminal(s, world.Size{W: 400, H: 300})

	term.DrawFrame(entity.AssetWall, 0, 0, 100, 100)
	term.DrawFrame(entity.AssetLadder, 100, 0, 100, 100)

	if r := runeAt(s, 5, 5); r != '#' {
		t.Fatalf("wall cell = %q", r)
	}
	if r := runeAt(s, 10, 0); r != 'H' {
		t.Fatalf("ladder cell = %q", r)
	}
	if r := runeAt(s, 20, 5); r == '#' || r == 'H' {
		t.Fatalf("drawing leaked to %q", r)
	}
}

func TestDrawFrameClipsToField(t *testing.T) {
	s := newScreen(t)
	term := NewTerminal(s, world.Size{W: 400, H: 300})

	term.DrawFrame(entity.AssetWall, 350, 250, 200, 200)
	if r := runeAt(s, 0, 30); r == '#' {
		t.Fatal("frame drawn over the status row")
	}
}

func TestStatusTextOnLastRow(t *testing.T) {
	s := newScreen(t)
	term := NewTerminal(s, world.Size{W: 400, H: 300})

	term.DrawText(0, 300, "HP: 90")
	if r := runeAt(s, 0, 30); r != 'H' {
		t.Fatalf("status row starts with %q", r)
	}
	if r := runeAt(s, 4, 30); r != '9' {
		t.Fatalf("status row = %q", r)
	}
}

func TestLookupUnknownAsset(t *testing.T) {
	if g := lookup("mystery"); g.r != '?' {
		t.Fatalf("glyph = %q", g.r)
	}
	if g := lookup("big_zombie_idle_anim_f0"); g.r != 'Z' {
		t.Fatalf("glyph = %q", g.r)
	}
}
