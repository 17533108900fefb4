package persist

import (
	"testing"

	"github.com/dungeoncore/server/internal/data"
)

func TestContentHash(t *testing.T) {
	a := data.Dungeon{Name: "a", Levels: []data.Level{{"WW", "WP"}, {"WL"}}}
	renamed := data.Dungeon{Name: "b", Levels: a.Levels}
	// same runes, different row split
	resplit := data.Dungeon{Name: "a", Levels: []data.Level{{"WWWP"}, {"WL"}}}
	// same rows, different level split
	regrouped := data.Dungeon{Name: "a", Levels: []data.Level{{"WW"}, {"WP", "WL"}}}

	if ContentHash(a) != ContentHash(renamed) {
		t.Fatal("hash depends on the name")
	}
	if ContentHash(a) == ContentHash(resplit) {
		t.Fatal("row boundaries not hashed")
	}
	if ContentHash(a) == ContentHash(regrouped) {
		t.Fatal("level boundaries not hashed")
	}
}
