package entity

import "github.com/dungeoncore/server/internal/anim"

// tile is the shared shape of the static level pieces.
type tile struct {
	base
	sprite *anim.Sprite
}

func newTile(x, y, w, h float64, frame anim.Frame) tile {
	return tile{base: newBase(x, y, w, h), sprite: anim.NewSprite(staticFrameTime, frame)}
}

func (t *tile) Render(s anim.Surface) {
	t.sprite.Render(s, t.body.X, t.body.Y, t.body.W, t.body.H)
}

// Floor is decoration; it lives in the floor collection and never collides.
type Floor struct{ tile }

func NewFloor(x, y, w, h float64) *Floor {
	return &Floor{newTile(x, y, w, h, AssetFloor)}
}

func (f *Floor) Kind() Kind             { return KindFloor }
func (f *Floor) Occupying() bool        { return false }
func (f *Floor) Interact(Entity) Result { return Result{} }

// Wall blocks movement and has no other effect.
type Wall struct{ tile }

func NewWall(x, y, w, h float64) *Wall {
	return &Wall{newTile(x, y, w, h, AssetWall)}
}

func (w *Wall) Kind() Kind             { return KindWall }
func (w *Wall) Occupying() bool        { return true }
func (w *Wall) Interact(Entity) Result { return Result{} }

// Ladder leads to the next level when level transitions are enabled. It
// fires once; a failed reload must not retrigger it every tick.
type Ladder struct {
	tile
	advances bool
	used     bool // touched only by the player collision pass
}

func NewLadder(x, y, w, h float64, st LadderStats) *Ladder {
	return &Ladder{tile: newTile(x, y, w, h, AssetLadder), advances: st.AdvancesLevel}
}

func (l *Ladder) Kind() Kind      { return KindLadder }
func (l *Ladder) Occupying() bool { return false }

func (l *Ladder) Interact(other Entity) Result {
	p, ok := other.(*Player)
	if !ok || !l.advances || l.used {
		return Result{}
	}
	l.used = true
	return NewResult(p, l, FlagLevelUp)
}

// Exit ends the run in victory when enabled.
type Exit struct {
	tile
	wins bool
}

func NewExit(x, y, w, h float64, st ExitStats) *Exit {
	return &Exit{tile: newTile(x, y, w, h, AssetExit), wins: st.WinsGame}
}

func (e *Exit) Kind() Kind      { return KindExit }
func (e *Exit) Occupying() bool { return false }

func (e *Exit) Interact(other Entity) Result {
	p, ok := other.(*Player)
	if !ok || !e.wins {
		return Result{}
	}
	return NewResult(p, e, FlagGameWon)
}
