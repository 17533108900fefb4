package entity

import (
	"sync/atomic"

	"github.com/dungeoncore/server/internal/anim"
)

// Projectile flies in a fixed direction and is spent by the first enemy it
// hits.
type Projectile struct {
	base

	dirX, dirY float64
	speed      float64
	damage     int

	// Set from collision workers, read by the reaper.
	spent atomic.Bool

	sprite *anim.Sprite
}

// NewProjectile creates a projectile travelling along (dirX, dirY), which is
// normalised; a zero direction becomes +x.
func NewProjectile(x, y, w, h, dirX, dirY, speed float64, damage int) *Projectile {
	ux, uy := unit(dirX, dirY)
	if ux == 0 && uy == 0 {
		ux = 1
	}
	return &Projectile{
		base:   newBase(x, y, w, h),
		dirX:   ux,
		dirY:   uy,
		speed:  speed,
		damage: damage,
		sprite: anim.NewSprite(staticFrameTime, AssetProjectile),
	}
}

func (p *Projectile) Kind() Kind { return KindProjectile }

func (p *Projectile) Occupying() bool { return false }

// Interact damages the first enemy to touch the projectile and spends it.
func (p *Projectile) Interact(other Entity) Result {
	e, ok := other.(*Enemy)
	if !ok {
		return Result{}
	}
	if !p.spent.CompareAndSwap(false, true) {
		return Result{}
	}
	return NewResult(e, p, FlagTakeDamage)
}

// Advance moves the projectile along its direction over elapsedMs.
func (p *Projectile) Advance(elapsedMs float64) {
	p.body.X += p.dirX * p.speed * elapsedMs
	p.body.Y += p.dirY * p.speed * elapsedMs
}

func (p *Projectile) Direction() (float64, float64) { return p.dirX, p.dirY }

func (p *Projectile) Damage() int { return p.damage }

func (p *Projectile) MarkSpent() { p.spent.Store(true) }

// Spent reports whether the projectile should be reaped.
func (p *Projectile) Spent() bool { return p.spent.Load() }

func (p *Projectile) Render(s anim.Surface) {
	p.sprite.Render(s, p.body.X, p.body.Y, p.body.W, p.body.H)
}
