package system

import (
	"fmt"
	"time"

	"github.com/dungeoncore/server/internal/core/pool"
	coresys "github.com/dungeoncore/server/internal/core/system"
	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/physics"
	"github.com/dungeoncore/server/internal/world"
)

// CollisionSystem detects overlaps, collects interaction results and pushes
// movers out of occupying elements. Phase 1 (Collision).
//
// Two passes run over one snapshot, each fanned out in at most workers
// chunks:
//   - player pass: every element is tested against the player box as it was
//     when the pass started. Interact runs in the workers; the push-outs are
//     applied to the player after the join, one at a time in snapshot order.
//   - enemy pass: every enemy is tested against every other element using
//     the boxes frozen when the pass started. A worker only writes the
//     enemies of its own chunk.
type CollisionSystem struct {
	store   *world.Store
	pool    *pool.Pool
	queue   *Queue
	workers int
}

func NewCollisionSystem(store *world.Store, p *pool.Pool, queue *Queue, workers int) *CollisionSystem {
	if workers < 1 {
		workers = 1
	}
	return &CollisionSystem{store: store, pool: p, queue: queue, workers: workers}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	snapshot := s.store.Entities()
	elements := make([]entity.Element, 0, len(snapshot))
	for _, e := range snapshot {
		if el, ok := e.(entity.Element); ok {
			elements = append(elements, el)
		}
	}
	if len(elements) == 0 {
		return
	}
	bounds := s.store.Bounds()
	if player := s.store.Player(); player != nil {
		s.playerPass(elements, player, bounds)
	}
	s.enemyPass(elements, bounds)
}

type playerChunk struct {
	results []entity.Result
	blocks  []entity.Element
}

func (s *CollisionSystem) playerPass(elements []entity.Element, player *entity.Player, bounds physics.Rect) {
	box := *player.Body()
	parts := split(len(elements), s.workers)
	out := make([]playerChunk, len(parts))

	tasks := make([]pool.Task, len(parts))
	for i, part := range parts {
		i, part := i, part
		tasks[i] = func() error {
			c := &out[i]
			for _, el := range elements[part.lo:part.hi] {
				hit, err := physics.Aabb(el.Body(), &box)
				if err != nil {
					return fmt.Errorf("test %s %d: %w", el.Kind(), el.ID(), err)
				}
				if !hit {
					continue
				}
				if r := el.Interact(player); !r.Empty() {
					c.results = append(c.results, r)
				}
				if el.Occupying() {
					c.blocks = append(c.blocks, el)
				}
			}
			return nil
		}
	}
	s.pool.Join("collision/player", tasks...)

	for _, c := range out {
		s.queue.PushAll(c.results)
		for _, el := range c.blocks {
			// An earlier push may already have cleared this one.
			if hit, _ := physics.Aabb(player.Body(), el.Body()); !hit {
				continue
			}
			_ = physics.Resolve(player.Body(), *el.Body(), bounds)
		}
	}
}

func (s *CollisionSystem) enemyPass(elements []entity.Element, bounds physics.Rect) {
	var enemies []int
	frozen := make([]entity.Body, len(elements))
	for i, el := range elements {
		frozen[i] = *el.Body()
		if el.Kind() == entity.KindEnemy {
			enemies = append(enemies, i)
		}
	}
	if len(enemies) == 0 {
		return
	}

	parts := split(len(enemies), s.workers)
	out := make([][]entity.Result, len(parts))
	tasks := make([]pool.Task, len(parts))
	for i, part := range parts {
		i, part := i, part
		tasks[i] = func() error {
			for _, idx := range enemies[part.lo:part.hi] {
				enemy := elements[idx]
				live := enemy.Body()
				for j, other := range elements {
					if j == idx {
						continue
					}
					hit, err := physics.Aabb(live, &frozen[j])
					if err != nil {
						return fmt.Errorf("test enemy %d: %w", enemy.ID(), err)
					}
					if !hit {
						continue
					}
					if r := other.Interact(enemy); !r.Empty() {
						out[i] = append(out[i], r)
					}
					if other.Occupying() {
						if err := physics.Resolve(live, frozen[j], bounds); err != nil {
							return fmt.Errorf("resolve enemy %d: %w", enemy.ID(), err)
						}
					}
				}
			}
			return nil
		}
	}
	s.pool.Join("collision/enemy", tasks...)

	for _, rs := range out {
		s.queue.PushAll(rs)
	}
}

type span struct{ lo, hi int }

// split cuts n items into at most parts contiguous spans of near-equal size.
func split(n, parts int) []span {
	if n == 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	size := (n + parts - 1) / parts
	out := make([]span, 0, parts)
	for lo := 0; lo < n; lo += size {
		out = append(out, span{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
