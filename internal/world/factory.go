package world

import (
	"errors"
	"fmt"

	"github.com/dungeoncore/server/internal/entity"
)

// ErrUnknownSymbol means a layout holds a tile symbol with no constructor.
var ErrUnknownSymbol = errors.New("unknown tile symbol")

// Tile symbols understood by the factory.
const (
	SymbolFloor      = ' '
	SymbolWall       = 'W'
	SymbolEnemy      = 'E'
	SymbolLadder     = 'L'
	SymbolWell       = 'w'
	SymbolProjectile = 'p'
	SymbolExit       = 'e'
	SymbolPlayer     = 'P'
)

type constructor func(x, y, w, h float64) entity.Entity

// Factory turns tile symbols into entities using one set of tuning stats.
type Factory struct {
	stats entity.Stats
	ctors map[rune]constructor
}

func NewFactory(stats entity.Stats, clock entity.Clock) *Factory {
	f := &Factory{stats: stats}
	f.ctors = map[rune]constructor{
		SymbolFloor: func(x, y, w, h float64) entity.Entity {
			return entity.NewFloor(x, y, w, h)
		},
		SymbolWall: func(x, y, w, h float64) entity.Entity {
			return entity.NewWall(x, y, w, h)
		},
		SymbolEnemy: func(x, y, w, h float64) entity.Entity {
			return entity.NewEnemy(x, y, w, h, stats.Enemy, clock)
		},
		SymbolLadder: func(x, y, w, h float64) entity.Entity {
			return entity.NewLadder(x, y, w, h, stats.Ladder)
		},
		SymbolWell: func(x, y, w, h float64) entity.Entity {
			return entity.NewWell(x, y, w, h, stats.Well)
		},
		// A placed projectile sits still until something walks into it.
		SymbolProjectile: func(x, y, w, h float64) entity.Entity {
			return entity.NewProjectile(x, y, w, h, 1, 0, 0, stats.Projectile.Damage)
		},
		SymbolExit: func(x, y, w, h float64) entity.Entity {
			return entity.NewExit(x, y, w, h, stats.Exit)
		},
		SymbolPlayer: func(x, y, w, h float64) entity.Entity {
			return entity.NewPlayer(x, y, w, h, stats.Player, stats.Projectile, clock)
		},
	}
	return f
}

// Build constructs the entity for symbol at the given cell.
func (f *Factory) Build(symbol rune, x, y, w, h float64) (entity.Entity, error) {
	ctor, ok := f.ctors[symbol]
	if !ok {
		return nil, fmt.Errorf("build tile %q: %w", symbol, ErrUnknownSymbol)
	}
	return ctor(x, y, w, h), nil
}

// Known reports whether symbol has a constructor.
func (f *Factory) Known(symbol rune) bool {
	_, ok := f.ctors[symbol]
	return ok
}

func (f *Factory) Stats() entity.Stats { return f.stats }
