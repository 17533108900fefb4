package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[game]
dungeon = "Sewers"
tick_rate = "20ms"

[rules]
ladder_advances_level = true

[logging]
format = "json"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.Dungeon != "Sewers" || cfg.Game.TickRate != 20*time.Millisecond {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if !cfg.Rules.LadderAdvancesLevel || cfg.Rules.ExitWinsGame {
		t.Fatalf("rules = %+v", cfg.Rules)
	}
	if cfg.Game.CollisionWorkers != 4 || cfg.Viewport.Width != 800 || cfg.Combat.DefaultDamage != 10 {
		t.Fatal("defaults lost")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"zero workers":   "[game]\ncollision_workers = 0\n",
		"empty viewport": "[viewport]\nwidth = 0\n",
		"negative level": "[game]\nstarting_level = -1\n",
		"bad toml":       "[game\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("accepted")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
