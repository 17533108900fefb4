package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/dungeoncore/server/internal/anim"
	"github.com/dungeoncore/server/internal/core/event"
	coresys "github.com/dungeoncore/server/internal/core/system"
	"github.com/dungeoncore/server/internal/entity"
)

// Host carries out the outcomes the pipeline cannot apply to an entity.
type Host interface {
	Win()
	AdvanceLevel()
}

// InteractionSystem drains the result queue in insertion order on the tick
// goroutine. Phase 2 (Interaction).
//
// Per result: a win is reported and draining goes on; a level-up reloads the
// world and drops everything still queued; then heal and damage apply.
type InteractionSystem struct {
	queue *Queue
	host  Host
	rules Rules
	anims *anim.Set
	bus   *event.Bus
	log   *zap.Logger

	damage int
	heal   int
}

// NewInteractionSystem creates the pipeline. damage is the fixed damage of
// every hit; heal is used for wells that offer no amount of their own.
func NewInteractionSystem(queue *Queue, host Host, rules Rules, anims *anim.Set, bus *event.Bus, damage, heal int, log *zap.Logger) *InteractionSystem {
	if rules == nil {
		rules = ConstantRules{}
	}
	return &InteractionSystem{
		queue:  queue,
		host:   host,
		rules:  rules,
		anims:  anims,
		bus:    bus,
		log:    log,
		damage: damage,
		heal:   heal,
	}
}

func (s *InteractionSystem) Phase() coresys.Phase { return coresys.PhaseInteraction }

func (s *InteractionSystem) Update(_ time.Duration) {
	s.Drain()
}

// Drain processes queued results until the queue is empty or a level-up
// ends the tick's processing. It returns the number of results consumed.
func (s *InteractionSystem) Drain() int {
	n := 0
	for {
		r, ok := s.queue.PopFront()
		if !ok {
			return n
		}
		n++
		if r.GameWon() {
			s.host.Win()
		}
		if r.LevelUp() {
			if dropped := s.queue.Discard(); dropped > 0 {
				s.log.Debug("results dropped by level change", zap.Int("count", dropped))
			}
			s.host.AdvanceLevel()
			return n
		}
		if r.Heal() {
			s.applyHeal(r)
		}
		if r.TakeDamage() {
			s.applyDamage(r)
		}
	}
}

func (s *InteractionSystem) applyHeal(r entity.Result) {
	well, ok := r.Source().(*entity.Well)
	if !ok {
		return
	}
	player, ok := r.Target().(*entity.Player)
	if !ok {
		return
	}
	amount := well.HealAmount()
	if amount <= 0 {
		amount = s.heal
	}
	player.Heal(s.rules.Heal(amount, player.Health(), player.MaxHealth()))
}

func (s *InteractionSystem) applyDamage(r entity.Result) {
	switch target := r.Target().(type) {
	case *entity.Player:
		target.TakeDamage(s.rules.Damage(entity.KindPlayer, s.damage))
	case *entity.Enemy:
		wasAlive := !target.Dead()
		if !target.TakeDamage(s.rules.Damage(entity.KindEnemy, s.damage)) {
			return
		}
		if wasAlive && target.Dead() {
			s.explode(target)
		}
	}
}

func (s *InteractionSystem) explode(e *entity.Enemy) {
	b := *e.Body()
	boom, err := anim.NewOneShot(entity.ExplosionDuration, entity.ExplosionFrameTime, entity.ExplosionFrames(), b.X, b.Y, b.W, b.H)
	if err != nil {
		s.log.Error("explosion not created", zap.Error(err))
	} else {
		s.anims.Add(boom)
	}
	event.Emit(s.bus, event.EnemyKilled{EntityID: e.ID(), X: b.X, Y: b.Y})
}
