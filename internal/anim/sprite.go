// Package anim holds the frame timers used by every renderable entity.
package anim

import (
	"errors"
	"fmt"
)

// ErrNegativeDelta is returned when an animation is advanced by a negative
// amount of time.
var ErrNegativeDelta = errors.New("anim: negative delta time")

// Frame is an opaque visual handle (an asset key). The simulation never
// looks inside it; surfaces decide how to draw it.
type Frame string

// Surface is whatever the frames end up drawn on.
type Surface interface {
	DrawFrame(f Frame, x, y, w, h float64)
	DrawText(x, y float64, text string)
}

// Sprite cycles through frames at a fixed time per frame.
type Sprite struct {
	frames       []Frame
	timePerFrame float64
	elapsed      float64
	index        int
}

func NewSprite(timePerFrame float64, frames ...Frame) *Sprite {
	return &Sprite{
		frames:       frames,
		timePerFrame: timePerFrame,
	}
}

// Update advances the sprite by dt seconds. Several frames may be skipped
// in one call when dt spans more than one frame period.
func (s *Sprite) Update(dt float64) error {
	if dt < 0 {
		return fmt.Errorf("sprite update %v: %w", dt, ErrNegativeDelta)
	}
	if len(s.frames) == 0 || s.timePerFrame <= 0 {
		return nil
	}
	s.elapsed += dt
	for s.elapsed >= s.timePerFrame {
		s.index = (s.index + 1) % len(s.frames)
		s.elapsed -= s.timePerFrame
	}
	return nil
}

func (s *Sprite) Index() int { return s.index }

func (s *Sprite) Len() int { return len(s.frames) }

// Current returns the frame at the current index, if there is one.
func (s *Sprite) Current() (Frame, bool) {
	if s.index < 0 || s.index >= len(s.frames) || s.frames[s.index] == "" {
		return "", false
	}
	return s.frames[s.index], true
}

func (s *Sprite) Render(surface Surface, x, y, w, h float64) {
	f, ok := s.Current()
	if !ok {
		return
	}
	surface.DrawFrame(f, x, y, w, h)
}
