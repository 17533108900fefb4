// Command dungeonconv merges plain-text level maps into the dungeon list.
//
// Each input file is one level, one row per line. Rows are right-padded with
// floor tiles to the widest row, since editors tend to strip trailing spaces.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dungeoncore/server/internal/data"
	"github.com/dungeoncore/server/internal/entity"
	"github.com/dungeoncore/server/internal/world"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: dungeonconv <dungeon name> <dungeons.yaml> <level1.txt> [level2.txt ...]")
		os.Exit(1)
	}
	name, out, files := os.Args[1], os.Args[2], os.Args[3:]

	table, err := data.LoadDungeonTable(out)
	switch {
	case errors.Is(err, os.ErrNotExist):
		table = data.NewDungeonTable()
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	factory := world.NewFactory(entity.DefaultStats(), time.Now)
	d := data.Dungeon{Name: name}
	for i, path := range files {
		level, err := readLevel(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := checkLevel(level, factory); err != nil {
			fmt.Fprintf(os.Stderr, "level %d (%s): %v\n", i, path, err)
			os.Exit(1)
		}
		d.Levels = append(d.Levels, level)
	}

	_, existed := table.Get(name)
	table.Add(d)
	if err := data.WriteDungeonTable(out, table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	verb := "Added"
	if existed {
		verb = "Replaced"
	}
	fmt.Printf("%s dungeon %q (%d levels) in %s\n", verb, name, len(d.Levels), out)
}

func readLevel(path string) (data.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows data.Level
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// Trailing blank lines are editor noise, not rows.
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return padLevel(rows), nil
}

func padLevel(rows data.Level) data.Level {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	out := make(data.Level, len(rows))
	for i, row := range rows {
		out[i] = row + strings.Repeat(" ", width-len([]rune(row)))
	}
	return out
}

func checkLevel(level data.Level, factory *world.Factory) error {
	if len(level) == 0 {
		return data.ErrEmptyLevel
	}
	players := 0
	for y, row := range level {
		for x, symbol := range row {
			if !factory.Known(symbol) {
				return fmt.Errorf("row %d col %d: %q: %w", y, x, symbol, world.ErrUnknownSymbol)
			}
			if symbol == world.SymbolPlayer {
				players++
			}
		}
	}
	if players > 1 {
		return world.ErrDuplicatePlayer
	}
	return nil
}
