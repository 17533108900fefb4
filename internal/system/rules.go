package system

import "github.com/dungeoncore/server/internal/entity"

// Rules decides the numbers the interaction pipeline applies.
type Rules interface {
	// Damage returns the damage dealt to a target of the given kind; base is
	// the configured default damage.
	Damage(target entity.Kind, base int) int
	// Heal returns the health restored to a player at health of maxHealth by
	// a source offering amount.
	Heal(amount, health, maxHealth int) int
}

// ConstantRules applies the configured numbers unchanged.
type ConstantRules struct{}

func (ConstantRules) Damage(_ entity.Kind, base int) int { return base }

func (ConstantRules) Heal(amount, _, _ int) int { return amount }
