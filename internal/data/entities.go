package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dungeoncore/server/internal/entity"
	"gopkg.in/yaml.v3"
)

// LoadEntityTable overlays the YAML tuning file at path on the stock stats.
// Keys missing from the file keep their default. A missing file is not an
// error: the defaults are returned.
func LoadEntityTable(path string) (entity.Stats, error) {
	stats := entity.DefaultStats()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, nil
		}
		return stats, fmt.Errorf("read entity list %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &stats); err != nil {
		return entity.DefaultStats(), fmt.Errorf("parse entity list: %w", err)
	}
	return stats, nil
}
