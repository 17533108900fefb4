package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/dungeoncore/server/internal/core/system"
	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/world"
)

// CleanupSystem reaps dead enemies and spent projectiles at tick end.
// Phase 3 (Cleanup).
type CleanupSystem struct {
	store *world.Store
	log   *zap.Logger
}

func NewCleanupSystem(store *world.Store, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{store: store, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	removed := s.store.RemoveEntities(reapable)
	if len(removed) > 0 {
		s.log.Debug("entities reaped", zap.Int("count", len(removed)))
	}
}

func reapable(e entity.Entity) bool {
	switch v := e.(type) {
	case *entity.Enemy:
		return v.Dead()
	case *entity.Player:
		return v.Dead()
	case *entity.Projectile:
		return v.Spent()
	}
	return false
}
