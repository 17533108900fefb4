package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dungeoncore/server/internal/data"
	"github.com/dungeoncore/server/internal/entity"
)

// Fatal layout errors. Both mean the dungeon asset is corrupt.
var (
	ErrMalformedGrid   = errors.New("malformed grid")
	ErrDuplicatePlayer = errors.New("more than one player tile")
)

// Layouts resolves a dungeon level to its tile grid.
type Layouts interface {
	Layout(dungeon string, level int) (data.Grid, error)
}

// Loader rebuilds the store from a dungeon level.
type Loader struct {
	store   *Store
	layouts Layouts
	factory *Factory
	log     *zap.Logger
}

func NewLoader(store *Store, layouts Layouts, factory *Factory, log *zap.Logger) *Loader {
	return &Loader{store: store, layouts: layouts, factory: factory, log: log}
}

// Load replaces the world with the given level. The player keeps its current
// health across the reload.
//
// A level that cannot be found is logged and ignored: Load returns false and
// a nil error and the world is left as it was. A layout that is present but
// corrupt returns an error, also without touching the world.
func (l *Loader) Load(dungeon string, level int) (bool, error) {
	grid, err := l.layouts.Layout(dungeon, level)
	if err != nil {
		l.log.Warn("level not loaded", zap.String("dungeon", dungeon), zap.Int("level", level), zap.Error(err))
		return false, nil
	}
	cols := grid.Cols()
	if cols == 0 {
		l.log.Warn("level not loaded", zap.String("dungeon", dungeon), zap.Int("level", level), zap.Error(data.ErrEmptyLevel))
		return false, nil
	}
	for r, row := range grid {
		if len(row) != cols {
			return false, fmt.Errorf("load %s level %d: row %d has %d columns, want %d: %w",
				dungeon, level, r, len(row), cols, ErrMalformedGrid)
		}
	}

	vp := l.store.Viewport()
	tile := Size{W: vp.W / float64(cols), H: vp.H / float64(grid.Rows())}

	floors := make([]entity.Entity, 0, cols*grid.Rows())
	var dynamic []entity.Entity
	var player *entity.Player
	for r, row := range grid {
		for c, sym := range row {
			x, y := float64(c)*tile.W, float64(r)*tile.H
			floor, err := l.factory.Build(SymbolFloor, x, y, tile.W, tile.H)
			if err != nil {
				return false, err
			}
			floors = append(floors, floor)
			if sym == SymbolFloor {
				continue
			}
			e, err := l.factory.Build(sym, x, y, tile.W, tile.H)
			if err != nil {
				return false, fmt.Errorf("load %s level %d at row %d col %d: %w", dungeon, level, r, c, err)
			}
			if p, ok := e.(*entity.Player); ok {
				if player != nil {
					return false, fmt.Errorf("load %s level %d at row %d col %d: %w", dungeon, level, r, c, ErrDuplicatePlayer)
				}
				player = p
				continue
			}
			dynamic = append(dynamic, e)
		}
	}

	if prev := l.store.Player(); prev != nil && player != nil {
		player.SetHealth(prev.Health())
	}
	if player == nil {
		l.log.Warn("level has no player tile", zap.String("dungeon", dungeon), zap.Int("level", level))
	}
	if dynamic == nil {
		dynamic = make([]entity.Entity, 0)
	}

	l.store.Replace(tile, floors, dynamic, player)
	l.log.Info("level loaded",
		zap.String("dungeon", dungeon),
		zap.Int("level", level),
		zap.Int("rows", grid.Rows()),
		zap.Int("cols", cols),
		zap.Int("entities", len(dynamic)),
	)
	return true, nil
}
