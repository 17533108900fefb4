// Package game drives the dungeon simulation: it owns the tick loop, the
// level counter and the run outcome.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dungeoncore/server/internal/anim"
	"github.com/dungeoncore/server/internal/core/event"
	"github.com/dungeoncore/server/internal/core/pool"
	coresys "github.com/dungeoncore/server/internal/core/system"
	"github.com/dungeoncore/server/internal/system"
	"github.com/dungeoncore/server/internal/world"
)

// ErrLevelUnavailable is returned by Start when the starting level cannot be
// found.
var ErrLevelUnavailable = errors.New("starting level unavailable")

// State is the run state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateVictory
	StateLoss
	StateFailed // a level asset turned out to be corrupt
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateVictory:
		return "victory"
	case StateLoss:
		return "loss"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Over reports whether the run has ended.
func (s State) Over() bool {
	return s == StateVictory || s == StateLoss || s == StateFailed
}

// Options are the run settings taken from configuration.
type Options struct {
	Dungeon          string
	StartingLevel    int
	CollisionWorkers int
	DefaultDamage    int
	DefaultHeal      int
}

// Game runs one dungeon. All methods are called from the tick goroutine.
type Game struct {
	opts   Options
	store  *world.Store
	loader *world.Loader
	queue  *system.Queue
	runner *coresys.Runner
	bus    *event.Bus
	anims  *anim.Set
	log    *zap.Logger

	level int
	state State
	fatal error
}

func New(opts Options, store *world.Store, loader *world.Loader, p *pool.Pool, rules system.Rules, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *Game {
	g := &Game{
		opts:   opts,
		store:  store,
		loader: loader,
		queue:  system.NewQueue(),
		runner: coresys.NewRunner(),
		bus:    bus,
		anims:  &anim.Set{},
		log:    log,
	}
	g.runner.Register(system.NewMovementSystem(store, p, rng))
	g.runner.Register(system.NewCollisionSystem(store, p, g.queue, opts.CollisionWorkers))
	g.runner.Register(system.NewInteractionSystem(g.queue, g, rules, g.anims, bus, opts.DefaultDamage, opts.DefaultHeal, log))
	g.runner.Register(system.NewCleanupSystem(store, log))
	return g
}

// Start begins a new run on the starting level with a fresh player.
func (g *Game) Start() error {
	g.queue.Discard()
	g.anims.Clear()
	g.store.Clear()
	g.level = g.opts.StartingLevel
	g.fatal = nil

	loaded, err := g.loader.Load(g.opts.Dungeon, g.level)
	if err != nil {
		g.state = StateFailed
		return fmt.Errorf("start %s: %w", g.opts.Dungeon, err)
	}
	if !loaded {
		g.state = StateIdle
		return fmt.Errorf("start %s level %d: %w", g.opts.Dungeon, g.level, ErrLevelUnavailable)
	}
	g.state = StateRunning
	g.emitLoaded()
	return nil
}

// Tick advances the simulation by elapsed. It does nothing unless the run
// is in progress. The returned error is a corrupt level met on a level
// change; the run is over when it is set.
func (g *Game) Tick(elapsed time.Duration) error {
	if g.state != StateRunning {
		return nil
	}
	g.bus.Flush()
	g.runner.Tick(elapsed)

	if g.fatal != nil {
		g.state = StateFailed
		g.bus.Flush()
		return g.fatal
	}
	if p := g.store.Player(); p != nil && p.Dead() && g.state == StateRunning {
		g.state = StateLoss
		g.log.Info("player died", zap.String("dungeon", g.opts.Dungeon), zap.Int("level", g.level))
		event.Emit(g.bus, event.GameLost{Dungeon: g.opts.Dungeon, Level: g.level})
	}
	if g.state.Over() {
		g.bus.Flush()
	}
	return nil
}

// Win ends the run in victory.
func (g *Game) Win() {
	if g.state != StateRunning {
		return
	}
	g.state = StateVictory
	health := 0
	if p := g.store.Player(); p != nil {
		health = p.Health()
	}
	g.log.Info("dungeon cleared", zap.String("dungeon", g.opts.Dungeon), zap.Int("level", g.level), zap.Int("health", health))
	event.Emit(g.bus, event.GameWon{Dungeon: g.opts.Dungeon, Level: g.level, Health: health})
}

// AdvanceLevel reloads the world from the next level. When there is no next
// level the current one stays in place.
func (g *Game) AdvanceLevel() {
	next := g.level + 1
	loaded, err := g.loader.Load(g.opts.Dungeon, next)
	if err != nil {
		g.log.Error("level change failed", zap.Int("level", next), zap.Error(err))
		g.fatal = err
		return
	}
	if !loaded {
		return
	}
	g.level = next
	g.anims.Clear()
	g.emitLoaded()
}

func (g *Game) emitLoaded() {
	event.Emit(g.bus, event.LevelLoaded{Dungeon: g.opts.Dungeon, Level: g.level, Entities: g.store.Len()})
}

func (g *Game) State() State { return g.state }

func (g *Game) Level() int { return g.level }

func (g *Game) Dungeon() string { return g.opts.Dungeon }

func (g *Game) Store() *world.Store { return g.store }

// Animations returns the running one-shot animations.
func (g *Game) Animations() *anim.Set { return g.anims }

// Health returns the player's health, or 0 without a player.
func (g *Game) Health() int {
	if p := g.store.Player(); p != nil {
		return p.Health()
	}
	return 0
}

// Render draws floors, entities, the player and the status overlay, then
// advances and draws the one-shot animations by dt seconds.
func (g *Game) Render(s anim.Surface, dt float64) error {
	for _, f := range g.store.Floors() {
		f.Render(s)
	}
	for _, e := range g.store.Entities() {
		e.Render(s)
	}
	p := g.store.Player()
	if p != nil {
		p.Render(s)
		y := g.store.Viewport().H
		s.DrawText(0, y, fmt.Sprintf("HP: %d", p.Health()))
		s.DrawText(statusColumn, y, fmt.Sprintf("AP: %d", p.Damage()))
		s.DrawText(2*statusColumn, y, "Inventory: "+strings.Join(p.Inventory(), ", "))
	}
	return g.anims.Advance(s, dt)
}

// statusColumn is the spacing of the overlay fields in world units.
const statusColumn = 150
