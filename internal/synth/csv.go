package synth

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm    = 0o755
	dateLayout = "2006-01-02"
)

// csvHeader matches the normalized schema the feed consumes.
var csvHeader = []string{"date", "tier", "player_a", "player_b", "winner", "score", "surface"}

// WriteSeason writes one season's records to <dir>/matches_<year>.csv
// in the normalized feed schema, overwriting any existing file.
func WriteSeason(dir string, year int, records []Record) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("matches_%d.csv", year))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, csvHeader)
	for _, r := range records {
		rows = append(rows, []string{
			r.Match.Date.Format(dateLayout),
			string(r.Match.Tier),
			r.Match.PlayerA,
			r.Match.PlayerB,
			r.Match.Winner,
			r.RawScore,
			r.Match.Surface,
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
