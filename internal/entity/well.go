package entity

import "github.com/dungeoncore/server/internal/anim"

// Well heals the player once, the first time the player touches it while
// hurt.
type Well struct {
	base

	healAmount int
	// Only the worker that owns this well in the player collision pass
	// reads or writes it.
	activated bool

	sprite *anim.Sprite
}

func NewWell(x, y, w, h float64, st WellStats) *Well {
	return &Well{
		base:       newBase(x, y, w, h),
		healAmount: st.HealAmount,
		sprite:     anim.NewSprite(st.FrameTime, wellFrames...),
	}
}

func (w *Well) Kind() Kind { return KindWell }

func (w *Well) Occupying() bool { return true }

func (w *Well) Interact(other Entity) Result {
	p, ok := other.(*Player)
	if !ok || w.activated || p.Health() >= p.MaxHealth() {
		return Result{}
	}
	w.activated = true
	return NewResult(p, w, FlagHeal)
}

func (w *Well) Activated() bool { return w.activated }

func (w *Well) HealAmount() int { return w.healAmount }

// Update advances the well's sprite by dt seconds.
func (w *Well) Update(dt float64) error {
	return w.sprite.Update(dt)
}

func (w *Well) Render(s anim.Surface) {
	w.sprite.Render(s, w.body.X, w.body.Y, w.body.W, w.body.H)
}
