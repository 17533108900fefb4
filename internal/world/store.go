// Package world owns the live entities of the loaded level and rebuilds them
// from dungeon layouts.
package world

import (
	"sync"

	"github.com/dungeoncore/server/internal/core/ecs"
	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/physics"
)

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Store holds the floor tiles, the dynamic entities and the player of the
// current level.
//
// Each collection has its own lock. Phase workers never iterate the live
// slices: they take a snapshot first, so a reap or reload running between
// phases never changes what a worker is looking at. When more than one lock
// is needed they are taken in the order floors, entities, player.
type Store struct {
	viewport Size

	floorMu sync.RWMutex
	floors  []entity.Entity

	entityMu sync.RWMutex
	entities []entity.Entity

	playerMu sync.RWMutex
	player   *entity.Player
	tile     Size

	idMu sync.Mutex
	ids  *ecs.EntityPool
}

func NewStore(viewport Size) *Store {
	return &Store{
		viewport: viewport,
		floors:   make([]entity.Entity, 0, 256),
		entities: make([]entity.Entity, 0, 64),
		ids:      ecs.NewEntityPool(),
	}
}

func (s *Store) Viewport() Size { return s.viewport }

// Tile returns the tile size of the loaded level.
func (s *Store) Tile() Size {
	s.playerMu.RLock()
	defer s.playerMu.RUnlock()
	return s.tile
}

func (s *Store) SetTile(t Size) {
	s.playerMu.Lock()
	s.tile = t
	s.playerMu.Unlock()
}

// Bounds is the play field: the viewport less one tile on every side.
func (s *Store) Bounds() physics.Rect {
	t := s.Tile()
	return physics.Rect{
		MinX: t.W,
		MinY: t.H,
		MaxX: s.viewport.W - t.W,
		MaxY: s.viewport.H - t.H,
	}
}

func (s *Store) AddFloor(e entity.Entity) ecs.EntityID {
	id := s.bind(e)
	s.floorMu.Lock()
	s.floors = append(s.floors, e)
	s.floorMu.Unlock()
	return id
}

func (s *Store) AddEntity(e entity.Entity) ecs.EntityID {
	id := s.bind(e)
	s.entityMu.Lock()
	s.entities = append(s.entities, e)
	s.entityMu.Unlock()
	return id
}

// SetPlayer installs p as the only player. A nil p removes the player.
func (s *Store) SetPlayer(p *entity.Player) {
	if p != nil {
		s.bind(p)
	}
	s.playerMu.Lock()
	old := s.player
	s.player = p
	s.playerMu.Unlock()
	if old != nil && old != p {
		s.release(old.ID())
	}
}

func (s *Store) Player() *entity.Player {
	s.playerMu.RLock()
	defer s.playerMu.RUnlock()
	return s.player
}

// Clear drops every entity and invalidates all IDs handed out so far.
func (s *Store) Clear() {
	s.floorMu.Lock()
	s.entityMu.Lock()
	s.playerMu.Lock()
	s.floors = s.floors[:0:0]
	s.entities = s.entities[:0:0]
	s.player = nil
	s.playerMu.Unlock()
	s.entityMu.Unlock()
	s.floorMu.Unlock()

	s.idMu.Lock()
	s.ids.Reset()
	s.idMu.Unlock()
}

// Replace swaps in a whole level at once. Readers see either the old level
// or the new one, never a mix.
func (s *Store) Replace(tile Size, floors, entities []entity.Entity, player *entity.Player) {
	s.idMu.Lock()
	s.ids.Reset()
	for _, e := range floors {
		entity.BindID(e, s.ids.Create())
	}
	for _, e := range entities {
		entity.BindID(e, s.ids.Create())
	}
	if player != nil {
		entity.BindID(player, s.ids.Create())
	}
	s.idMu.Unlock()

	s.floorMu.Lock()
	s.entityMu.Lock()
	s.playerMu.Lock()
	s.floors = floors
	s.entities = entities
	s.player = player
	s.tile = tile
	s.playerMu.Unlock()
	s.entityMu.Unlock()
	s.floorMu.Unlock()
}

// Floors returns a snapshot of the floor tiles.
func (s *Store) Floors() []entity.Entity {
	s.floorMu.RLock()
	defer s.floorMu.RUnlock()
	out := make([]entity.Entity, len(s.floors))
	copy(out, s.floors)
	return out
}

// Entities returns a snapshot of the dynamic entities in insertion order.
func (s *Store) Entities() []entity.Entity {
	s.entityMu.RLock()
	defer s.entityMu.RUnlock()
	out := make([]entity.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// WithEntities calls fn with the live slice while holding the read lock.
// fn must not retain the slice or call back into the store.
func (s *Store) WithEntities(fn func([]entity.Entity)) {
	s.entityMu.RLock()
	defer s.entityMu.RUnlock()
	fn(s.entities)
}

// Len returns the number of dynamic entities.
func (s *Store) Len() int {
	s.entityMu.RLock()
	defer s.entityMu.RUnlock()
	return len(s.entities)
}

// RemoveEntities deletes every dynamic entity matching pred, preserving the
// order of the rest, and returns the removed ones.
func (s *Store) RemoveEntities(pred func(entity.Entity) bool) []entity.Entity {
	var removed []entity.Entity
	s.entityMu.Lock()
	kept := s.entities[:0]
	for _, e := range s.entities {
		if pred(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = kept
	s.entityMu.Unlock()

	for _, e := range removed {
		s.release(e.ID())
	}
	return removed
}

// Alive reports whether id belongs to an entity still in the store.
func (s *Store) Alive(id ecs.EntityID) bool {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return s.ids.Alive(id)
}

func (s *Store) bind(e entity.Entity) ecs.EntityID {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	if s.ids.Alive(e.ID()) {
		return e.ID()
	}
	id := s.ids.Create()
	entity.BindID(e, id)
	return id
}

func (s *Store) release(id ecs.EntityID) {
	s.idMu.Lock()
	s.ids.Destroy(id)
	s.idMu.Unlock()
}
