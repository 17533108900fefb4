package entity

import (
	"math"
	"math/rand"
	"time"

	"github.com/dungeoncore/server/internal/anim"
)

// Enemy chases the player once inside its detection radius and wanders
// otherwise.
type Enemy struct {
	base

	health          int
	damage          int
	speed           float64
	detectionRadius float64
	wanderChance    float64
	velX, velY      float64

	hit   Cooldown
	clock Clock

	sprite *anim.Sprite
}

func NewEnemy(x, y, w, h float64, st EnemyStats, clock Clock) *Enemy {
	if clock == nil {
		clock = time.Now
	}
	return &Enemy{
		base:            newBase(x, y, w, h),
		health:          st.Health,
		damage:          st.Damage,
		speed:           st.Speed,
		detectionRadius: st.DetectionRadius,
		wanderChance:    st.WanderChance,
		hit:             NewCooldown(st.HitCooldown),
		clock:           clock,
		sprite:          anim.NewSprite(st.FrameTime, enemyFrames...),
	}
}

func (e *Enemy) Kind() Kind { return KindEnemy }

func (e *Enemy) Occupying() bool { return true }

// Interact hurts the player when it touches this enemy.
func (e *Enemy) Interact(other Entity) Result {
	if p, ok := other.(*Player); ok {
		return NewResult(p, e, FlagTakeDamage)
	}
	return Result{}
}

// Move steers toward (playerX, playerY) when it is within the detection
// radius, otherwise occasionally picks a random heading, then advances by
// the current velocity over elapsedMs.
func (e *Enemy) Move(elapsedMs, playerX, playerY float64, rng *rand.Rand) {
	dx := playerX - e.body.X
	dy := playerY - e.body.Y
	if math.Hypot(dx, dy) <= e.detectionRadius {
		ux, uy := unit(dx, dy)
		e.velX, e.velY = ux*e.speed, uy*e.speed
	} else if rng.Float64() < e.wanderChance {
		angle := rng.Float64() * 2 * math.Pi
		e.velX, e.velY = math.Cos(angle)*e.speed, math.Sin(angle)*e.speed
	}
	e.body.X += e.velX * elapsedMs
	e.body.Y += e.velY * elapsedMs
}

// Update advances the enemy's sprite by dt seconds.
func (e *Enemy) Update(dt float64) error {
	return e.sprite.Update(dt)
}

// TakeDamage applies amount unless this enemy was hit less than one hit
// cooldown ago. It reports whether the hit landed.
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.hit.Try(e.clock()) {
		return false
	}
	e.health -= amount
	return true
}

func (e *Enemy) Dead() bool { return e.health <= 0 }

func (e *Enemy) Health() int { return e.health }
func (e *Enemy) Damage() int { return e.damage }

func (e *Enemy) Velocity() (float64, float64) { return e.velX, e.velY }

func (e *Enemy) DetectionRadius() float64 { return e.detectionRadius }

func (e *Enemy) Render(s anim.Surface) {
	e.sprite.Render(s, e.body.X, e.body.Y, e.body.W, e.body.H)
}
