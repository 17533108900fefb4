package entity

import (
	"math"
	"time"

	"github.com/dungeoncore/server/internal/anim"
)

// Player is the single user-controlled entity. It is not an Element: it
// never appears in the dynamic entity collection and every collision pass
// treats it as the moving party.
type Player struct {
	base

	health    int
	maxHealth int
	damage    int
	speed     float64

	velX, velY       float64
	facingX, facingY float64
	inventory        []string

	hit    Cooldown
	attack Cooldown
	clock  Clock

	idle, moving *anim.Sprite
	current      *anim.Sprite

	projectile ProjectileStats
}

func NewPlayer(x, y, w, h float64, st PlayerStats, proj ProjectileStats, clock Clock) *Player {
	if clock == nil {
		clock = time.Now
	}
	p := &Player{
		base:       newBase(x, y, w, h),
		health:     st.MaxHealth,
		maxHealth:  st.MaxHealth,
		damage:     st.Damage,
		speed:      st.Speed,
		facingX:    1,
		hit:        NewCooldown(st.HitCooldown),
		attack:     NewCooldown(st.AttackCooldown),
		clock:      clock,
		idle:       anim.NewSprite(st.IdleFrameTime, playerIdleFrames...),
		moving:     anim.NewSprite(st.MovingFrameTime, playerRunFrames...),
		projectile: proj,
	}
	p.current = p.idle
	return p
}

func (p *Player) Kind() Kind { return KindPlayer }

// Move advances the player by its velocity over elapsedMs and swaps between
// the idle and moving sprites.
func (p *Player) Move(elapsedMs float64) error {
	if p.velX != 0 || p.velY != 0 {
		p.body.X += p.velX * elapsedMs
		p.body.Y += p.velY * elapsedMs
		p.current = p.moving
	} else {
		p.current = p.idle
	}
	return p.current.Update(elapsedMs / 1000)
}

func (p *Player) MoveLeft() {
	p.velX = -p.speed
	p.facingX = -1
	if p.velY == 0 {
		p.facingY = 0
	}
}

func (p *Player) MoveRight() {
	p.velX = p.speed
	p.facingX = 1
	if p.velY == 0 {
		p.facingY = 0
	}
}

func (p *Player) MoveUp() {
	p.velY = -p.speed
	p.facingY = -1
	if p.velX == 0 {
		p.facingX = 0
	}
}

func (p *Player) MoveDown() {
	p.velY = p.speed
	p.facingY = 1
	if p.velX == 0 {
		p.facingX = 0
	}
}

func (p *Player) StopLeft()  { p.velX = 0 }
func (p *Player) StopRight() { p.velX = 0 }
func (p *Player) StopUp()    { p.velY = 0 }
func (p *Player) StopDown()  { p.velY = 0 }

func (p *Player) Velocity() (float64, float64) { return p.velX, p.velY }

// Moving reports whether the moving sprite is the one shown.
func (p *Player) Moving() bool { return p.current == p.moving }

// Attack throws a projectile from the player's centre in the direction of
// travel, or the last facing when standing still. It returns false while the
// attack cooldown runs.
func (p *Player) Attack() (*Projectile, bool) {
	if !p.attack.Try(p.clock()) {
		return nil, false
	}
	dirX, dirY := p.facingX, p.facingY
	if p.velX != 0 || p.velY != 0 {
		dirX, dirY = sign(p.velX), sign(p.velY)
		p.facingX, p.facingY = dirX, dirY
	}
	if dirX == 0 && dirY == 0 {
		dirX = 1
	}
	cx, cy := p.body.Center()
	return NewProjectile(cx, cy, p.body.W/2, p.body.H/2, dirX, dirY, p.projectile.Speed, p.damage), true
}

// Heal restores amount health, capped at max health.
func (p *Player) Heal(amount int) {
	p.health = min(p.health+amount, p.maxHealth)
}

// TakeDamage applies amount unless the player was hit less than one hit
// cooldown ago. It reports whether the hit landed.
func (p *Player) TakeDamage(amount int) bool {
	if !p.hit.Try(p.clock()) {
		return false
	}
	p.health -= amount
	return true
}

func (p *Player) Dead() bool { return p.health <= 0 }

func (p *Player) Health() int    { return p.health }
func (p *Player) MaxHealth() int { return p.maxHealth }
func (p *Player) Damage() int    { return p.damage }

// SetHealth sets health, capped at max health. Used to carry health across
// level loads.
func (p *Player) SetHealth(h int) {
	p.health = min(h, p.maxHealth)
}

func (p *Player) AddItem(name string) {
	p.inventory = append(p.inventory, name)
}

// Inventory returns a copy of the carried items.
func (p *Player) Inventory() []string {
	out := make([]string, len(p.inventory))
	copy(out, p.inventory)
	return out
}

func (p *Player) Render(s anim.Surface) {
	p.current.Render(s, p.body.X, p.body.Y, p.body.W, p.body.H)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func unit(x, y float64) (float64, float64) {
	n := math.Hypot(x, y)
	if n == 0 {
		return 0, 0
	}
	return x / n, y / n
}
