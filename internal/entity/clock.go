package entity

import "time"

// Clock returns the current time. Cooldowns read it so tests can drive time.
type Clock func() time.Time

// Cooldown gates an action to at most once per period.
type Cooldown struct {
	period time.Duration
	last   time.Time
	used   bool
}

func NewCooldown(period time.Duration) Cooldown {
	return Cooldown{period: period}
}

// Try reports whether the action may happen at now, and if so starts a new
// period.
func (c *Cooldown) Try(now time.Time) bool {
	if c.used && now.Sub(c.last) < c.period {
		return false
	}
	c.last = now
	c.used = true
	return true
}

// Ready reports whether Try would succeed at now, without consuming it.
func (c *Cooldown) Ready(now time.Time) bool {
	return !c.used || now.Sub(c.last) >= c.period
}
