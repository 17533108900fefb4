package world

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dungeoncore/server/internal/data"
	"github.com/dungeoncore/server/internal/entity"
)

func fixedClock() time.Time { return time.Unix(1000, 0) }

func newTestLoader(t *testing.T, dungeons ...data.Dungeon) (*Store, *Loader, *observer.ObservedLogs) {
	t.Helper()
	table := data.NewDungeonTable()
	for _, d := range dungeons {
		table.Add(d)
	}
	core, logs := observer.New(zap.InfoLevel)
	store := NewStore(Size{W: 800, H: 600})
	factory := NewFactory(entity.DefaultStats(), fixedClock)
	return store, NewLoader(store, table, factory, zap.New(core)), logs
}

var crypt = data.Dungeon{
	Name: "crypt",
	Levels: []data.Level{
		{
			"WWWW",
			"WPEW",
			"WwLW",
			"WWWW",
		},
		{
			"WWWWW",
			"W P W",
			"WWWWW",
		},
	},
}

func TestLoaderBuildsLevel(t *testing.T) {
	store, loader, logs := newTestLoader(t, crypt)
	ok, err := loader.Load("crypt", 0)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if got := store.Tile(); got != (Size{W: 200, H: 150}) {
		t.Fatalf("tile = %+v", got)
	}
	if n := len(store.Floors()); n != 16 {
		t.Fatalf("floors = %d, want one per cell", n)
	}
	// 12 walls + enemy + well + ladder
	if n := store.Len(); n != 15 {
		t.Fatalf("entities = %d, want 15", n)
	}
	p := store.Player()
	if p == nil {
		t.Fatal("no player")
	}
	if b := p.Body(); b.X != 200 || b.Y != 150 || b.W != 200 || b.H != 150 {
		t.Fatalf("player body = %+v", *b)
	}
	for _, e := range store.Entities() {
		if e.Kind() == entity.KindPlayer {
			t.Fatal("player stored with dynamic entities")
		}
		if !store.Alive(e.ID()) {
			t.Fatalf("%s has no live id", e.Kind())
		}
	}
	if logs.FilterMessage("level loaded").Len() != 1 {
		t.Fatal("missing load log")
	}
}

func TestLoaderCarriesPlayerHealth(t *testing.T) {
	store, loader, _ := newTestLoader(t, crypt)
	if _, err := loader.Load("crypt", 0); err != nil {
		t.Fatal(err)
	}
	store.Player().TakeDamage(37)
	old := store.Entities()

	if _, err := loader.Load("crypt", 1); err != nil {
		t.Fatal(err)
	}
	if h := store.Player().Health(); h != 63 {
		t.Fatalf("health = %d, want 63", h)
	}
	if store.Tile() != (Size{W: 160, H: 200}) {
		t.Fatalf("tile not recomputed: %+v", store.Tile())
	}
	for _, e := range old {
		if store.Alive(e.ID()) {
			t.Fatalf("stale %s id still alive", e.Kind())
		}
	}
}

func TestLoaderInvalidLevelIsNoop(t *testing.T) {
	store, loader, logs := newTestLoader(t, crypt, data.Dungeon{Name: "hollow", Levels: []data.Level{{}}})
	if _, err := loader.Load("crypt", 0); err != nil {
		t.Fatal(err)
	}
	before := store.Len()
	player := store.Player()

	for _, tc := range []struct {
		dungeon string
		level   int
	}{
		{"crypt", 2},
		{"crypt", -1},
		{"nowhere", 0},
		{"", 0},
		{"hollow", 0},
	} {
		ok, err := loader.Load(tc.dungeon, tc.level)
		if ok || err != nil {
			t.Fatalf("Load(%q, %d) = %v, %v", tc.dungeon, tc.level, ok, err)
		}
	}
	if store.Len() != before || store.Player() != player {
		t.Fatal("world mutated by invalid load")
	}
	if n := logs.FilterMessage("level not loaded").Len(); n != 5 {
		t.Fatalf("warnings = %d, want 5", n)
	}
}

func TestLoaderFatalLayouts(t *testing.T) {
	bad := data.Dungeon{Name: "bad", Levels: []data.Level{
		{"WWW", "WP", "WWW"},
		{"WWW", "WPX", "WWW"},
		{"WPW", "WPW"},
	}}
	store, loader, _ := newTestLoader(t, crypt, bad)
	if _, err := loader.Load("crypt", 0); err != nil {
		t.Fatal(err)
	}
	before := store.Entities()

	tests := []struct {
		level int
		want  error
	}{
		{0, ErrMalformedGrid},
		{1, ErrUnknownSymbol},
		{2, ErrDuplicatePlayer},
	}
	for _, tt := range tests {
		if _, err := loader.Load("bad", tt.level); !errors.Is(err, tt.want) {
			t.Fatalf("level %d: err = %v, want %v", tt.level, err, tt.want)
		}
	}
	after := store.Entities()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatal("world mutated by failed load")
	}
}

func TestFactoryPlacedProjectileIsStill(t *testing.T) {
	f := NewFactory(entity.DefaultStats(), fixedClock)
	e, err := f.Build(SymbolProjectile, 10, 20, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	p := e.(*entity.Projectile)
	p.Advance(1000)
	if b := p.Body(); b.X != 10 || b.Y != 20 {
		t.Fatalf("placed projectile moved to %v,%v", b.X, b.Y)
	}
	if f.Known('#') {
		t.Fatal("'#' should be unknown")
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore(Size{W: 100, H: 100})
	s.AddEntity(entity.NewWall(0, 0, 10, 10))
	snap := s.Entities()
	s.AddEntity(entity.NewWall(10, 0, 10, 10))
	if len(snap) != 1 || s.Len() != 2 {
		t.Fatalf("snapshot len %d, store len %d", len(snap), s.Len())
	}
}

func TestStoreRemoveEntities(t *testing.T) {
	s := NewStore(Size{W: 100, H: 100})
	wall := entity.NewWall(0, 0, 10, 10)
	enemy := entity.NewEnemy(10, 0, 10, 10, entity.DefaultStats().Enemy, fixedClock)
	well := entity.NewWell(20, 0, 10, 10, entity.DefaultStats().Well)
	s.AddEntity(wall)
	s.AddEntity(enemy)
	s.AddEntity(well)

	removed := s.RemoveEntities(func(e entity.Entity) bool { return e.Kind() == entity.KindEnemy })
	if len(removed) != 1 || removed[0] != enemy {
		t.Fatalf("removed = %v", removed)
	}
	left := s.Entities()
	if len(left) != 2 || left[0] != wall || left[1] != well {
		t.Fatal("order not preserved")
	}
	if s.Alive(enemy.ID()) {
		t.Fatal("removed id still alive")
	}
}

func TestStoreSinglePlayer(t *testing.T) {
	s := NewStore(Size{W: 100, H: 100})
	clock := entity.Clock(fixedClock)
	st := entity.DefaultStats()
	a := entity.NewPlayer(0, 0, 10, 10, st.Player, st.Projectile, clock)
	b := entity.NewPlayer(0, 0, 10, 10, st.Player, st.Projectile, clock)
	s.SetPlayer(a)
	s.SetPlayer(b)
	if s.Player() != b || s.Alive(a.ID()) || !s.Alive(b.ID()) {
		t.Fatal("replacing the player should retire the old one")
	}
	s.Clear()
	if s.Player() != nil || s.Len() != 0 || s.Alive(b.ID()) {
		t.Fatal("Clear left state behind")
	}
}

func TestStoreBounds(t *testing.T) {
	s := NewStore(Size{W: 800, H: 600})
	s.SetTile(Size{W: 40, H: 30})
	b := s.Bounds()
	if b.MinX != 40 || b.MinY != 30 || b.MaxX != 760 || b.MaxY != 570 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(Size{W: 100, H: 100})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddEntity(entity.NewWall(0, 0, 1, 1))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for _, e := range s.Entities() {
					_ = e.Body()
				}
				s.RemoveEntities(func(entity.Entity) bool { return false })
			}
		}()
	}
	wg.Wait()
	if s.Len() != 800 {
		t.Fatalf("len = %d, want 800", s.Len())
	}
}
