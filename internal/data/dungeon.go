package data

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Lookup failures. The loader treats all of them as a no-op request.
var (
	ErrDungeonNotFound = errors.New("dungeon not found")
	ErrLevelOutOfRange = errors.New("level out of range")
	ErrEmptyLevel      = errors.New("level has no rows")
)

// Level is one floor of a dungeon, one string per row, one symbol per rune.
type Level []string

// Dungeon is a named stack of levels.
type Dungeon struct {
	Name   string  `yaml:"name"`
	Levels []Level `yaml:"levels"`
}

// Grid is a level as rows of tile symbols.
type Grid [][]rune

func (g Grid) Rows() int { return len(g) }

// Cols returns the width of the first row.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

type dungeonListFile struct {
	Dungeons []Dungeon `yaml:"dungeons"`
}

// DungeonTable holds dungeon layouts indexed by folded name.
type DungeonTable struct {
	dungeons map[string]*Dungeon
	order    []string
}

func NewDungeonTable() *DungeonTable {
	return &DungeonTable{dungeons: make(map[string]*Dungeon)}
}

// LoadDungeonTable loads dungeon layouts from a YAML file.
func LoadDungeonTable(path string) (*DungeonTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dungeon list %s: %w", path, err)
	}
	var f dungeonListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse dungeon list: %w", err)
	}
	t := NewDungeonTable()
	for _, d := range f.Dungeons {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("parse dungeon list: dungeon without a name")
		}
		t.Add(d)
	}
	return t, nil
}

// Add stores d, replacing any dungeon whose name folds to the same key.
func (t *DungeonTable) Add(d Dungeon) {
	key := foldName(d.Name)
	if _, ok := t.dungeons[key]; !ok {
		t.order = append(t.order, key)
	}
	t.dungeons[key] = &d
}

// Get returns the dungeon registered under name.
func (t *DungeonTable) Get(name string) (Dungeon, bool) {
	d, ok := t.dungeons[foldName(name)]
	if !ok {
		return Dungeon{}, false
	}
	return *d, true
}

// Names returns dungeon names in insertion order.
func (t *DungeonTable) Names() []string {
	out := make([]string, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.dungeons[key].Name)
	}
	return out
}

// All returns every dungeon in insertion order.
func (t *DungeonTable) All() []Dungeon {
	out := make([]Dungeon, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.dungeons[key])
	}
	return out
}

func (t *DungeonTable) Count() int {
	return len(t.dungeons)
}

// Layout returns a fresh grid for one level of the named dungeon.
func (t *DungeonTable) Layout(name string, level int) (Grid, error) {
	d, ok := t.dungeons[foldName(name)]
	if !ok {
		return nil, fmt.Errorf("dungeon %q: %w", name, ErrDungeonNotFound)
	}
	if level < 0 || level >= len(d.Levels) {
		return nil, fmt.Errorf("dungeon %q level %d of %d: %w", name, level, len(d.Levels), ErrLevelOutOfRange)
	}
	rows := d.Levels[level]
	if len(rows) == 0 {
		return nil, fmt.Errorf("dungeon %q level %d: %w", name, level, ErrEmptyLevel)
	}
	grid := make(Grid, len(rows))
	for i, row := range rows {
		grid[i] = []rune(row)
	}
	return grid, nil
}

// foldName normalises a dungeon name for lookup so that names typed or
// shared with different case or composition resolve to the same dungeon.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// WriteDungeonTable writes every dungeon in t to path in the format
// LoadDungeonTable reads.
func WriteDungeonTable(path string, t *DungeonTable) error {
	raw, err := yaml.Marshal(dungeonListFile{Dungeons: t.All()})
	if err != nil {
		return fmt.Errorf("encode dungeon list: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write dungeon list %s: %w", path, err)
	}
	return nil
}
