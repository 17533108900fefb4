package physics

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dungeoncore/server/internal/entity"
)

func box(x, y, w, h float64) *entity.Body {
	return &entity.Body{X: x, Y: y, W: w, H: h}
}

var field = Rect{MinX: 40, MinY: 30, MaxX: 760, MaxY: 570}

func TestAabb(t *testing.T) {
	base := box(100, 100, 50, 50)
	tests := []struct {
		name  string
		other *entity.Body
		want  bool
	}{
		{"overlapping", box(125, 125, 50, 50), true},
		{"separate", box(200, 200, 50, 50), false},
		{"touching right edge", box(150, 100, 50, 50), false},
		{"touching bottom edge", box(100, 150, 50, 50), false},
		{"inside", box(110, 110, 20, 20), true},
		{"containing", box(80, 80, 100, 100), true},
		{"zero size", box(100, 100, 0, 0), false},
		{"separated on x only", box(151, 120, 50, 50), false},
		{"separated on y only", box(120, 151, 50, 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aabb(base, tt.other)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("Aabb = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAabbEdgeTouchingIsNotOverlap(t *testing.T) {
	a := box(0, 0, 50, 50)
	b := box(50, 0, 50, 50)
	if hit, _ := Aabb(a, b); hit {
		t.Fatal("edge-touching boxes collide")
	}
}

func TestAabbSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		a := box(rng.Float64()*200, rng.Float64()*200, rng.Float64()*80, rng.Float64()*80)
		b := box(rng.Float64()*200, rng.Float64()*200, rng.Float64()*80, rng.Float64()*80)
		ab, _ := Aabb(a, b)
		ba, _ := Aabb(b, a)
		if ab != ba {
			t.Fatalf("Aabb(%+v, %+v) = %v but reversed = %v", *a, *b, ab, ba)
		}
	}
}

func TestAabbNil(t *testing.T) {
	if _, err := Aabb(nil, box(0, 0, 1, 1)); !errors.Is(err, ErrNilBody) {
		t.Fatalf("err = %v, want ErrNilBody", err)
	}
	if _, err := Aabb(box(0, 0, 1, 1), nil); !errors.Is(err, ErrNilBody) {
		t.Fatalf("err = %v, want ErrNilBody", err)
	}
	if err := Resolve(nil, entity.Body{}, field); !errors.Is(err, ErrNilBody) {
		t.Fatalf("Resolve err = %v, want ErrNilBody", err)
	}
}

func TestResolvePicksSmallerAxis(t *testing.T) {
	static := entity.Body{X: 100, Y: 100, W: 50, H: 50}

	// 10px into the right side, 40px vertical overlap: push right.
	m := box(140, 110, 50, 50)
	if err := Resolve(m, static, field); err != nil {
		t.Fatal(err)
	}
	if m.X != 150 || m.Y != 110 {
		t.Fatalf("moved to (%v, %v), want (150, 110)", m.X, m.Y)
	}

	// 10px into the top: push up.
	m = box(105, 60, 50, 50)
	if err := Resolve(m, static, field); err != nil {
		t.Fatal(err)
	}
	if m.X != 105 || m.Y != 50 {
		t.Fatalf("moved to (%v, %v), want (105, 50)", m.X, m.Y)
	}

	// 5px into the left side: push left.
	m = box(55, 120, 50, 50)
	if err := Resolve(m, static, field); err != nil {
		t.Fatal(err)
	}
	if m.X != 50 || m.Y != 120 {
		t.Fatalf("moved to (%v, %v), want (50, 120)", m.X, m.Y)
	}
}

func TestResolveIdenticalBoxes(t *testing.T) {
	m := box(100, 100, 50, 50)
	if err := Resolve(m, *box(100, 100, 50, 50), field); err != nil {
		t.Fatal(err)
	}
	if hit, _ := Aabb(m, box(100, 100, 50, 50)); hit {
		t.Fatalf("still overlapping after resolve: %+v", *m)
	}
}

func TestResolveClampsIntoBounds(t *testing.T) {
	tests := []struct {
		name   string
		moving *entity.Body
	}{
		{"far left", box(-500, 300, 20, 20)},
		{"far right", box(5000, 300, 20, 20)},
		{"above", box(300, -500, 20, 20)},
		{"below", box(300, 9000, 20, 20)},
		{"corner", box(-100, 9000, 20, 20)},
		{"straddling the right edge", box(750, 300, 20, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			static := entity.Body{X: tt.moving.X + 5, Y: tt.moving.Y + 5, W: 20, H: 20}
			if err := Resolve(tt.moving, static, field); err != nil {
				t.Fatal(err)
			}
			if !field.Contains(*tt.moving) {
				t.Fatalf("body %+v outside %+v", *tt.moving, field)
			}
		})
	}
}
