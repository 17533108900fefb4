package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/world"
)

func TestReadLevelPadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.txt")
	body := "WWWWW\r\nWP\nW   W\nWWWWW\n\n\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	level, err := readLevel(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(level) != 4 {
		t.Fatalf("rows = %d, want 4", len(level))
	}
	if level[0] != "WWWWW" || level[1] != "WP   " {
		t.Fatalf("level = %q", level)
	}
}

func TestCheckLevel(t *testing.T) {
	factory := world.NewFactory(entity.DefaultStats(), time.Now)

	if err := checkLevel([]string{"WPW", "WEW"}, factory); err != nil {
		t.Fatalf("valid level: %v", err)
	}
	if err := checkLevel([]string{"WPW", "WXW"}, factory); !errors.Is(err, world.ErrUnknownSymbol) {
		t.Fatalf("unknown symbol: err = %v", err)
	}
	if err := checkLevel([]string{"WPW", "WPW"}, factory); !errors.Is(err, world.ErrDuplicatePlayer) {
		t.Fatalf("two players: err = %v", err)
	}
}
