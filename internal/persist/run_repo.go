package persist

import (
	"context"
	"fmt"
	"time"
)

// Run outcomes.
const (
	OutcomeVictory   = "victory"
	OutcomeLoss      = "loss"
	OutcomeAbandoned = "abandoned"
)

type Run struct {
	Dungeon    string
	Level      int
	Outcome    string
	Health     int
	FinishedAt time.Time
}

// RunRepo records finished runs.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Record(ctx context.Context, run Run) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO runs (dungeon, level, outcome, health) VALUES ($1, $2, $3, $4)`,
		run.Dungeon, run.Level, run.Outcome, run.Health,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs of a dungeon, newest first.
func (r *RunRepo) Recent(ctx context.Context, dungeon string, limit int) ([]Run, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT dungeon, level, outcome, health, finished_at
		 FROM runs WHERE dungeon = $1
		 ORDER BY finished_at DESC LIMIT $2`,
		dungeon, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Dungeon, &run.Level, &run.Outcome, &run.Health, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
