package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dungeoncore/server/internal/core/pool"
	coresys "github.com/dungeoncore/server/internal/core/system"
	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/world"
)

// MovementSystem advances positions and sprites. Phase 0 (Movement).
//
// Four tasks run in parallel over one snapshot: the player, projectiles,
// enemies and wells. Each task touches only its own kind, so no entity is
// written by two tasks. Enemies steer toward the player position read before
// the tasks start.
type MovementSystem struct {
	store *world.Store
	pool  *pool.Pool
	rng   *rand.Rand // enemy task only
}

func NewMovementSystem(store *world.Store, p *pool.Pool, rng *rand.Rand) *MovementSystem {
	return &MovementSystem{store: store, pool: p, rng: rng}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	elapsedMs := float64(dt) / float64(time.Millisecond)
	seconds := dt.Seconds()

	snapshot := s.store.Entities()
	player := s.store.Player()
	var px, py float64
	if player != nil {
		b := player.Body()
		px, py = b.X, b.Y
	}
	vp := s.store.Viewport()

	s.pool.Join(coresys.PhaseMovement.String(),
		func() error {
			if player == nil {
				return nil
			}
			if err := player.Move(elapsedMs); err != nil {
				return fmt.Errorf("move player: %w", err)
			}
			return nil
		},
		func() error {
			for _, e := range snapshot {
				p, ok := e.(*entity.Projectile)
				if !ok || p.Spent() {
					continue
				}
				p.Advance(elapsedMs)
				if outside(*p.Body(), vp) {
					p.MarkSpent()
				}
			}
			return nil
		},
		func() error {
			for _, e := range snapshot {
				en, ok := e.(*entity.Enemy)
				if !ok {
					continue
				}
				en.Move(elapsedMs, px, py, s.rng)
				if err := en.Update(seconds); err != nil {
					return fmt.Errorf("animate enemy %d: %w", en.ID(), err)
				}
			}
			return nil
		},
		func() error {
			for _, e := range snapshot {
				w, ok := e.(*entity.Well)
				if !ok {
					continue
				}
				if err := w.Update(seconds); err != nil {
					return fmt.Errorf("animate well %d: %w", w.ID(), err)
				}
			}
			return nil
		},
	)
}

// outside reports whether b lies entirely beyond the viewport.
func outside(b entity.Body, vp world.Size) bool {
	return b.X+b.W <= 0 || b.Y+b.H <= 0 || b.X >= vp.W || b.Y >= vp.H
}
