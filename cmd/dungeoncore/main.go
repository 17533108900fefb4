package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dungeoncore/server/internal/config"
	"github.com/dungeoncore/server/internal/core/event"
	"github.com/dungeoncore/server/internal/core/pool"
	"github.com/dungeoncore/server/internal/data"
	"github.com/dungeoncore/server/internal/game"
	"github.com/dungeoncore/server/internal/persist"
	"github.com/dungeoncore/server/internal/render"
	"github.com/dungeoncore/server/internal/scripting"
	"github.com/dungeoncore/server/internal/system"
	"github.com/dungeoncore/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(dungeon string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             dungeoncore  v0.1.0           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mdungeon:\033[0m %s\n\n", dungeon)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("DUNGEONCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Dungeon)

	// 3. Load data tables
	printSection("data")

	stats, err := data.LoadEntityTable(cfg.Data.Entities)
	if err != nil {
		return fmt.Errorf("load entity table: %w", err)
	}
	stats.Ladder.AdvancesLevel = stats.Ladder.AdvancesLevel || cfg.Rules.LadderAdvancesLevel
	stats.Exit.WinsGame = stats.Exit.WinsGame || cfg.Rules.ExitWinsGame

	dungeons, err := data.LoadDungeonTable(cfg.Data.Dungeons)
	if err != nil {
		return fmt.Errorf("load dungeon table: %w", err)
	}
	printStat("dungeons", dungeons.Count())

	// 4. Optional PostgreSQL: share yaml dungeons, pick up stored ones
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var runRepo *persist.RunRepo
	if cfg.Database.Enabled {
		printSection("database")
		db, err := persist.Open(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printStat("schema version", int(version))

		n, err := syncDungeons(ctx, persist.NewDungeonRepo(db), dungeons, log)
		if err != nil {
			return err
		}
		printStat("dungeons updated", n)
		printStat("dungeons available", dungeons.Count())
		runRepo = persist.NewRunRepo(db)
	}

	// 5. Optional Lua rules
	var rules system.Rules = system.ConstantRules{}
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		rules = engine
		printOK("Lua rules loaded")
	}
	fmt.Println()

	// 6. Build the game
	viewport := world.Size{W: cfg.Viewport.Width, H: cfg.Viewport.Height}
	store := world.NewStore(viewport)
	loader := world.NewLoader(store, dungeons, world.NewFactory(stats, time.Now), log)
	seed := cfg.Game.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bus := event.NewBus()
	g := game.New(game.Options{
		Dungeon:          cfg.Game.Dungeon,
		StartingLevel:    cfg.Game.StartingLevel,
		CollisionWorkers: cfg.Game.CollisionWorkers,
		DefaultDamage:    cfg.Combat.DefaultDamage,
		DefaultHeal:      cfg.Combat.DefaultHeal,
	}, store, loader, pool.New(cfg.Game.WorkerPoolSize, log), rules, rand.New(rand.NewSource(seed)), bus, log)

	kills := 0
	event.Subscribe(bus, func(e event.EnemyKilled) {
		kills++
		log.Debug("enemy killed", zap.Uint64("entity", uint64(e.EntityID)), zap.Float64("x", e.X), zap.Float64("y", e.Y))
	})
	event.Subscribe(bus, func(e event.LevelLoaded) {
		log.Info("level entered", zap.String("dungeon", e.Dungeon), zap.Int("level", e.Level), zap.Int("entities", e.Entities))
	})
	record := func(outcome string) {
		if runRepo == nil {
			return
		}
		rctx, rcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer rcancel()
		run := persist.Run{Dungeon: g.Dungeon(), Level: g.Level(), Outcome: outcome, Health: g.Health()}
		if err := runRepo.Record(rctx, run); err != nil {
			log.Error("run not recorded", zap.Error(err))
		}
	}
	event.Subscribe(bus, func(event.GameWon) { record(persist.OutcomeVictory) })
	event.Subscribe(bus, func(event.GameLost) { record(persist.OutcomeLoss) })

	if err := g.Start(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	// 7. Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	term := render.NewTerminal(screen, viewport)

	inputs := make(chan input, 64)
	go pollInput(screen, inputs)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	// 8. Tick loop
	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	keys := newHeldKeys(holdWindow)
	last := time.Now()
	for {
		select {
		case in := <-inputs:
			if in.quit {
				if !g.State().Over() {
					record(persist.OutcomeAbandoned)
				}
				log.Info("quit", zap.Int("level", g.Level()), zap.Int("kills", kills))
				return nil
			}
			if g.State().Over() {
				// any key leaves the end screen
				log.Info("run finished", zap.String("state", g.State().String()), zap.Int("kills", kills))
				return nil
			}
			keys.press(g, in.cmd, time.Now())

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			keys.release(g, now)
			if err := g.Tick(elapsed); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
			term.Clear()
			if err := g.Render(term, elapsed.Seconds()); err != nil {
				log.Warn("render failed", zap.Error(err))
			}
			switch g.State() {
			case game.StateVictory:
				term.Banner("You escaped the dungeon! Press any key.")
			case game.StateLoss:
				term.Banner("You died. Press any key.")
			}
			term.Show()

		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			if !g.State().Over() {
				record(persist.OutcomeAbandoned)
			}
			return nil
		}
	}
}

// syncDungeons stores the yaml dungeons and adds the stored ones the yaml
// does not know. It returns how many rows were written.
func syncDungeons(ctx context.Context, repo *persist.DungeonRepo, table *data.DungeonTable, log *zap.Logger) (int, error) {
	written := 0
	for _, d := range table.All() {
		changed, err := repo.Save(ctx, d)
		if err != nil {
			return written, fmt.Errorf("sync dungeons: %w", err)
		}
		if changed {
			written++
		}
	}
	stored, err := repo.LoadAll(ctx)
	if err != nil {
		return written, fmt.Errorf("sync dungeons: %w", err)
	}
	for _, d := range stored {
		if _, ok := table.Get(d.Name); !ok {
			table.Add(d)
			log.Info("shared dungeon added", zap.String("dungeon", d.Name), zap.Int("levels", len(d.Levels)))
		}
	}
	return written, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.File != "" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
