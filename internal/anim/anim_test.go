package anim

import (
	"errors"
	"testing"
)

type drawCall struct {
	frame      Frame
	x, y, w, h float64
}

type recordingSurface struct {
	draws []drawCall
	texts []string
}

func (r *recordingSurface) DrawFrame(f Frame, x, y, w, h float64) {
	r.draws = append(r.draws, drawCall{f, x, y, w, h})
}

func (r *recordingSurface) DrawText(_, _ float64, text string) {
	r.texts = append(r.texts, text)
}

func TestSpriteRejectsNegativeDelta(t *testing.T) {
	s := NewSprite(0.2, "a", "b")
	if err := s.Update(-0.01); !errors.Is(err, ErrNegativeDelta) {
		t.Fatalf("Update(-0.01) = %v, want ErrNegativeDelta", err)
	}
	if s.Index() != 0 {
		t.Fatalf("index moved to %d on rejected update", s.Index())
	}
}

func TestSpriteAdvances(t *testing.T) {
	tests := []struct {
		name    string
		updates []float64
		want    int
	}{
		{"below one frame", []float64{0.1}, 0},
		{"exactly one frame", []float64{0.2}, 1},
		{"accumulates", []float64{0.1, 0.1, 0.1}, 1},
		{"skips several frames", []float64{0.65}, 3},
		{"wraps", []float64{0.8}, 0},
		{"wraps past end", []float64{1.05}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSprite(0.2, "f0", "f1", "f2", "f3")
			for _, dt := range tt.updates {
				if err := s.Update(dt); err != nil {
					t.Fatal(err)
				}
			}
			if s.Index() != tt.want {
				t.Fatalf("index = %d, want %d", s.Index(), tt.want)
			}
		})
	}
}

func TestSpriteRenderSkipsMissingFrames(t *testing.T) {
	surf := &recordingSurface{}

	NewSprite(0.2).Render(surf, 0, 0, 10, 10)
	NewSprite(0.2, "").Render(surf, 0, 0, 10, 10)
	if len(surf.draws) != 0 {
		t.Fatalf("drew %v for empty sprites", surf.draws)
	}

	NewSprite(0.2, "wall").Render(surf, 3, 4, 10, 20)
	want := drawCall{"wall", 3, 4, 10, 20}
	if len(surf.draws) != 1 || surf.draws[0] != want {
		t.Fatalf("draws = %v, want [%v]", surf.draws, want)
	}
}

func TestOneShotLifetime(t *testing.T) {
	o, err := NewOneShot(1.0, 0.2, []Frame{"x0", "x1", "x2", "x3"}, 5, 6, 7, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Active() {
		t.Fatal("new one-shot should be active")
	}
	if err := o.Update(0.99); err != nil {
		t.Fatal(err)
	}
	if !o.Active() {
		t.Fatal("one-shot inactive before its duration")
	}
	if err := o.Update(0.02); err != nil {
		t.Fatal(err)
	}
	if o.Active() {
		t.Fatal("one-shot still active past its duration")
	}
}

func TestOneShotValidation(t *testing.T) {
	frames := []Frame{"x"}
	if _, err := NewOneShot(0, 0.2, frames, 0, 0, 1, 1); err == nil {
		t.Error("zero duration accepted")
	}
	if _, err := NewOneShot(1, 0.2, nil, 0, 0, 1, 1); err == nil {
		t.Error("empty frames accepted")
	}
	if _, err := NewOneShot(1, 0, frames, 0, 0, 1, 1); err == nil {
		t.Error("zero frame time accepted")
	}
	if _, err := NewOneShot(1, 0.2, frames, 0, 0, -1, 1); err == nil {
		t.Error("negative width accepted")
	}
}

func TestSetDropsFinishedAnimations(t *testing.T) {
	var set Set
	short, _ := NewOneShot(0.5, 0.1, []Frame{"a"}, 0, 0, 1, 1)
	long, _ := NewOneShot(2.0, 0.1, []Frame{"b"}, 9, 9, 1, 1)
	set.Add(short)
	set.Add(long)

	surf := &recordingSurface{}
	if err := set.Advance(surf, 0.6); err != nil {
		t.Fatal(err)
	}
	if set.Len() != 1 {
		t.Fatalf("Len = %d after first pass, want 1", set.Len())
	}
	if len(surf.draws) != 1 || surf.draws[0].frame != "b" {
		t.Fatalf("draws = %v, want only the long animation", surf.draws)
	}

	if err := set.Advance(nil, -1); !errors.Is(err, ErrNegativeDelta) {
		t.Fatalf("Advance(-1) = %v, want ErrNegativeDelta", err)
	}
	if err := set.Advance(nil, 5); err != nil {
		t.Fatal(err)
	}
	if set.Len() != 0 {
		t.Fatalf("Len = %d, want 0", set.Len())
	}
}
