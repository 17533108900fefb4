// Package entity defines every simulated object of a dungeon level and the
// interaction results they produce when they touch.
package entity

import (
	"github.com/dungeoncore/server/internal/anim"
	"github.com/dungeoncore/server/internal/core/ecs"
)

// Kind tags the closed set of entity variants.
type Kind uint8

const (
	KindFloor Kind = iota
	KindWall
	KindPlayer
	KindEnemy
	KindProjectile
	KindLadder
	KindExit
	KindWell
)

func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindLadder:
		return "ladder"
	case KindExit:
		return "exit"
	case KindWell:
		return "well"
	}
	return "unknown"
}

// Body is the axis-aligned envelope of an entity: top-left corner and size.
type Body struct {
	X, Y float64
	W, H float64
}

// Center returns the midpoint of the box.
func (b Body) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Entity is implemented only by the variants in this package.
type Entity interface {
	ID() ecs.EntityID
	Kind() Kind
	Body() *Body
	Render(s anim.Surface)
	core() *base
}

// Element is an entity that takes part in collisions: it may block movement
// and it reacts when something overlaps it.
type Element interface {
	Entity
	// Occupying reports whether the element pushes overlapping movers out.
	Occupying() bool
	// Interact returns the effect of other overlapping this element. The
	// zero Result means no effect.
	Interact(other Entity) Result
}

type base struct {
	id   ecs.EntityID
	body Body
}

func (b *base) ID() ecs.EntityID { return b.id }
func (b *base) Body() *Body      { return &b.body }
func (b *base) core() *base      { return b }

// BindID attaches a store-assigned identity to e.
func BindID(e Entity, id ecs.EntityID) {
	e.core().id = id
}

func newBase(x, y, w, h float64) base {
	return base{body: Body{X: x, Y: y, W: w, H: h}}
}
