package persist

import (
	"context"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/dungeoncore/server/internal/data"
)

// DungeonRepo stores shared dungeon layouts.
type DungeonRepo struct {
	db *DB
}

func NewDungeonRepo(db *DB) *DungeonRepo {
	return &DungeonRepo{db: db}
}

// Save upserts d by name. Rows whose content hash already matches are left
// alone; changed reports whether a row was written.
func (r *DungeonRepo) Save(ctx context.Context, d data.Dungeon) (changed bool, err error) {
	sum := ContentHash(d)
	tag, err := r.db.Pool.Exec(ctx,
		`INSERT INTO dungeons (name, levels, level_count, content_hash, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (name) DO UPDATE SET
		   levels = EXCLUDED.levels,
		   level_count = EXCLUDED.level_count,
		   content_hash = EXCLUDED.content_hash,
		   updated_at = now()
		 WHERE dungeons.content_hash <> EXCLUDED.content_hash`,
		d.Name, d.Levels, len(d.Levels), sum[:],
	)
	if err != nil {
		return false, fmt.Errorf("save dungeon %s: %w", d.Name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// LoadAll returns every stored dungeon ordered by name.
func (r *DungeonRepo) LoadAll(ctx context.Context) ([]data.Dungeon, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name, levels FROM dungeons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load dungeons: %w", err)
	}
	defer rows.Close()

	var out []data.Dungeon
	for rows.Next() {
		var d data.Dungeon
		if err := rows.Scan(&d.Name, &d.Levels); err != nil {
			return nil, fmt.Errorf("scan dungeon: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ContentHash fingerprints the layout of d. The name is not part of it.
func ContentHash(d data.Dungeon) [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	for _, level := range d.Levels {
		for _, row := range level {
			h.Write([]byte(row))
			h.Write([]byte{'\n'})
		}
		h.Write([]byte{0})
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
