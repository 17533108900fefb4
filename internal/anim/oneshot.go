package anim

import (
	"errors"
	"fmt"
)

// OneShot plays a sprite at a fixed spot for a fixed duration (explosions).
type OneShot struct {
	sprite     *Sprite
	duration   float64
	elapsed    float64
	x, y, w, h float64
}

func NewOneShot(duration, timePerFrame float64, frames []Frame, x, y, w, h float64) (*OneShot, error) {
	switch {
	case duration <= 0:
		return nil, errors.New("one-shot duration must be positive")
	case len(frames) == 0:
		return nil, errors.New("one-shot needs at least one frame")
	case timePerFrame <= 0:
		return nil, errors.New("one-shot time per frame must be positive")
	case w < 0 || h < 0:
		return nil, fmt.Errorf("one-shot size %vx%v must be non-negative", w, h)
	}
	return &OneShot{
		sprite:   NewSprite(timePerFrame, frames...),
		duration: duration,
		x:        x,
		y:        y,
		w:        w,
		h:        h,
	}, nil
}

func (o *OneShot) Update(dt float64) error {
	if dt < 0 {
		return fmt.Errorf("one-shot update %v: %w", dt, ErrNegativeDelta)
	}
	o.elapsed += dt
	return o.sprite.Update(dt)
}

func (o *OneShot) Active() bool { return o.elapsed < o.duration }

func (o *OneShot) Position() (x, y float64) { return o.x, o.y }

func (o *OneShot) Render(surface Surface) {
	o.sprite.Render(surface, o.x, o.y, o.w, o.h)
}

// Set owns transient one-shot animations. Not safe for concurrent use; the
// pipeline adds to it and the render pass advances it, both on the tick
// goroutine.
type Set struct {
	items []*OneShot
}

func (s *Set) Add(o *OneShot) { s.items = append(s.items, o) }

func (s *Set) Len() int { return len(s.items) }

// Items returns a copy of the live animations.
func (s *Set) Items() []*OneShot {
	out := make([]*OneShot, len(s.items))
	copy(out, s.items)
	return out
}

// Advance updates every animation by dt seconds, renders the ones still
// active and drops the rest.
func (s *Set) Advance(surface Surface, dt float64) error {
	if dt < 0 {
		return fmt.Errorf("advance animations %v: %w", dt, ErrNegativeDelta)
	}
	kept := s.items[:0]
	for _, o := range s.items {
		_ = o.Update(dt) // dt already validated
		if !o.Active() {
			continue
		}
		if surface != nil {
			o.Render(surface)
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return nil
}

func (s *Set) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
