package entity

// Flag is one effect carried by a Result.
type Flag uint8

const (
	FlagGameWon Flag = 1 << iota
	FlagLevelUp
	FlagHeal
	FlagTakeDamage
)

// Result is the immutable outcome of one Interact call, queued for the
// sequential interaction pipeline.
type Result struct {
	target Entity
	source Entity
	flags  Flag
}

func NewResult(target, source Entity, flags Flag) Result {
	return Result{target: target, source: source, flags: flags}
}

// Target is the entity the effect applies to.
func (r Result) Target() Entity { return r.target }

// Source is the entity that produced the effect; may be nil.
func (r Result) Source() Entity { return r.source }

func (r Result) Flags() Flag { return r.flags }

func (r Result) GameWon() bool    { return r.flags&FlagGameWon != 0 }
func (r Result) LevelUp() bool    { return r.flags&FlagLevelUp != 0 }
func (r Result) Heal() bool       { return r.flags&FlagHeal != 0 }
func (r Result) TakeDamage() bool { return r.flags&FlagTakeDamage != 0 }

// Empty reports a result with no effect.
func (r Result) Empty() bool { return r.flags == 0 }
