package event

import "github.com/dungeoncore/server/internal/core/ecs"

// Outcome events raised by the tick driver and the interaction pipeline.

type LevelLoaded struct {
	Dungeon  string
	Level    int
	Entities int
}

type EnemyKilled struct {
	EntityID ecs.EntityID
	X, Y     float64
}

type GameWon struct {
	Dungeon string
	Level   int
	Health  int
}

type GameLost struct {
	Dungeon string
	Level   int
}
