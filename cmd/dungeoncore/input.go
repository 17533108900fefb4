package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dungeoncore/server/internal/game"
)

// Terminals report key presses but no releases. A direction counts as held
// while its key keeps auto-repeating; holdWindow without a repeat releases it.
const holdWindow = 150 * time.Millisecond

type input struct {
	cmd  game.Command
	quit bool
}

// pollInput forwards key presses as commands until the screen is finalised.
func pollInput(screen tcell.Screen, out chan<- input) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if in, ok := translate(key); ok {
			out <- in
		}
	}
}

func translate(ev *tcell.EventKey) (input, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input{quit: true}, true
	case tcell.KeyLeft:
		return input{cmd: game.MoveLeft}, true
	case tcell.KeyRight:
		return input{cmd: game.MoveRight}, true
	case tcell.KeyUp:
		return input{cmd: game.MoveUp}, true
	case tcell.KeyDown:
		return input{cmd: game.MoveDown}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return input{quit: true}, true
		case 'a':
			return input{cmd: game.MoveLeft}, true
		case 'd':
			return input{cmd: game.MoveRight}, true
		case 'w':
			return input{cmd: game.MoveUp}, true
		case 's':
			return input{cmd: game.MoveDown}, true
		case ' ':
			return input{cmd: game.Attack}, true
		}
	}
	return input{}, false
}

// release commands for each movement command.
var stopFor = map[game.Command]game.Command{
	game.MoveLeft:  game.StopLeft,
	game.MoveRight: game.StopRight,
	game.MoveUp:    game.StopUp,
	game.MoveDown:  game.StopDown,
}

type commandSink interface {
	Apply(cmd game.Command)
}

// heldKeys turns key repeats into move/stop pairs.
type heldKeys struct {
	window time.Duration
	last   map[game.Command]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{window: window, last: make(map[game.Command]time.Time)}
}

func (h *heldKeys) press(g commandSink, cmd game.Command, now time.Time) {
	if _, move := stopFor[cmd]; move {
		h.last[cmd] = now
	}
	g.Apply(cmd)
}

// release stops every direction whose key has not repeated within the
// window.
func (h *heldKeys) release(g commandSink, now time.Time) {
	for cmd, at := range h.last {
		if now.Sub(at) >= h.window {
			g.Apply(stopFor[cmd])
			delete(h.last, cmd)
		}
	}
}
