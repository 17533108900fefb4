// Package physics holds the collision geometry: the broad-phase overlap
// test and the minimum-translation push-out.
package physics

import (
	"errors"
	"math"

	"github.com/dungeoncore/server/internal/entity"
)

// ErrNilBody is returned when a collision operand is missing.
var ErrNilBody = errors.New("physics: nil body")

// Rect is an axis-aligned region, used for the play-field bounds.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Clamp moves b inside r so that no part of it leaves the region. When b is
// larger than r the minimum edge wins.
func (r Rect) Clamp(b *entity.Body) {
	b.X = math.Max(r.MinX, math.Min(b.X, r.MaxX-b.W))
	b.Y = math.Max(r.MinY, math.Min(b.Y, r.MaxY-b.H))
}

// Contains reports whether b lies entirely inside r.
func (r Rect) Contains(b entity.Body) bool {
	return b.X >= r.MinX && b.Y >= r.MinY && b.X+b.W <= r.MaxX && b.Y+b.H <= r.MaxY
}

// Aabb reports whether the open boxes of a and b overlap on both axes.
// Boxes that only share an edge do not collide.
func Aabb(a, b *entity.Body) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilBody
	}
	return overlaps(*a, *b), nil
}

func overlaps(a, b entity.Body) bool {
	return a.X+a.W > b.X &&
		b.X+b.W > a.X &&
		a.Y+a.H > b.Y &&
		b.Y+b.H > a.Y
}

// Resolve pushes moving out of static along the axis that needs the least
// movement, then clamps moving into bounds. static is taken by value: the
// collision engine resolves against boxes frozen at the start of a pass.
func Resolve(moving *entity.Body, static entity.Body, bounds Rect) error {
	if moving == nil {
		return ErrNilBody
	}
	dx := horizontalOverlap(*moving, static)
	dy := verticalOverlap(*moving, static)
	if math.Abs(dx) < math.Abs(dy) {
		moving.X += dx
	} else {
		moving.Y += dy
	}
	bounds.Clamp(moving)
	return nil
}

// horizontalOverlap returns the signed shift along x that separates a from
// b: negative pushes a left, positive pushes it right.
func horizontalOverlap(a, b entity.Body) float64 {
	left := a.X + a.W - b.X
	right := b.X + b.W - a.X
	if left < right {
		return -left
	}
	return right
}

func verticalOverlap(a, b entity.Body) float64 {
	top := a.Y + a.H - b.Y
	bottom := b.Y + b.H - a.Y
	if top < bottom {
		return -top
	}
	return bottom
}
