// Package feed supplies the ordered sequence of normalized match
// records consumed by the rating sweep. It merges per-year CSV exports
// from the two source circuits, parses scores, suppresses duplicates,
// and sorts the result chronologically.
package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/okian/topspin/internal/domain/dedupe"
	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/pkg/logger"
	"github.com/okian/topspin/pkg/metrics"
)

// Feed supplies the ordered match sequence for one run.
type Feed interface {
	// Matches returns every match in non-decreasing date order.
	Matches(ctx context.Context) ([]model.Match, error)
}

// Required columns of the normalized CSV schema. Surface is optional.
const (
	colDate    = "date"
	colTier    = "tier"
	colPlayerA = "player_a"
	colPlayerB = "player_b"
	colWinner  = "winner"
	colScore   = "score"
	colSurface = "surface"
)

// Accepted date layouts: ISO dates and the compact tournament-date
// form used by the raw circuit exports.
var dateLayouts = []string{"2006-01-02", "20060102"}

// Option applies a configuration option to the CSVFeed.
type Option func(*CSVFeed)

// WithLogger sets a custom logger for the feed.
func WithLogger(log logger.Logger) Option {
	return func(f *CSVFeed) {
		if log != nil {
			f.log = log
		}
	}
}

// WithDeduper sets the duplicate-suppression strategy.
func WithDeduper(d dedupe.Deduper) Option {
	return func(f *CSVFeed) {
		if d != nil {
			f.deduper = d
		}
	}
}

// CSVFeed reads normalized match CSVs from a data directory.
type CSVFeed struct {
	dir        string
	log        logger.Logger
	deduper    dedupe.Deduper
	duplicates int
}

// NewCSVFeed constructs a feed over every *.csv file under dir.
func NewCSVFeed(dir string, opts ...Option) *CSVFeed {
	f := &CSVFeed{
		dir:     dir,
		deduper: dedupe.NewInMemoryDeduper(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.log == nil {
		f.log = logger.Get()
	}

	return f
}

// Matches loads, merges, deduplicates, and chronologically sorts all
// source files. Score problems on individual rows degrade to a neutral
// margin with a warning; structural problems fail the load.
func (f *CSVFeed) Matches(ctx context.Context) ([]model.Match, error) {
	paths, err := filepath.Glob(filepath.Join(f.dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.dir, err)
	}
	sort.Strings(paths) // deterministic file order

	var matches []model.Match
	for _, path := range paths {
		loaded, err := f.loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		matches = append(matches, loaded...)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: under %s", ErrNoData, f.dir)
	}

	// Stable: preserves source order within a date, so replays are
	// byte-for-byte deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})

	f.log.Info(ctx, "match feed loaded",
		logger.Int("files", len(paths)),
		logger.Int("matches", len(matches)),
		logger.Int("duplicates", f.duplicates),
	)
	return matches, nil
}

func (f *CSVFeed) loadFile(ctx context.Context, path string) ([]model.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no header", ErrBadRecord, path)
	}
	cols, err := columnIndex(header, path)
	if err != nil {
		return nil, err
	}

	var matches []model.Match
	line := 1
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrBadRecord, path, line, err)
		}

		m, err := f.parseRecord(ctx, cols, record, path, line)
		if err != nil {
			return nil, err
		}

		if f.deduper.SeenAndRecord(ctx, m.Key()) {
			f.duplicates++
			metrics.RecordDuplicateMatch()
			continue
		}
		metrics.RecordMatchIngested(string(m.Tier))
		matches = append(matches, m)
	}

	return matches, nil
}

func (f *CSVFeed) parseRecord(ctx context.Context, cols map[string]int, record []string, path string, line int) (model.Match, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field(colDate))
	if err != nil {
		return model.Match{}, fmt.Errorf("%w: %s:%d: %v", ErrBadRecord, path, line, err)
	}

	m := model.Match{
		Date:    date,
		PlayerA: field(colPlayerA),
		PlayerB: field(colPlayerB),
		Winner:  field(colWinner),
		Tier:    model.Tier(field(colTier)),
		Surface: field(colSurface),
	}
	if m.PlayerA == "" || m.PlayerB == "" || m.Winner == "" || m.Tier == "" {
		return model.Match{}, fmt.Errorf("%w: %s:%d: missing required field", ErrBadRecord, path, line)
	}

	score, err := ParseScore(field(colScore))
	if err != nil {
		// DataQualityWarning: rate with a neutral margin, keep going.
		metrics.RecordScoreParseWarning()
		f.log.Warn(ctx, "unusable score, rating with neutral margin",
			logger.String("file", filepath.Base(path)),
			logger.Int("line", line),
			logger.Error(err),
		)
	}
	m.Score = score

	return m, nil
}

func columnIndex(header []string, path string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colDate, colTier, colPlayerA, colPlayerB, colWinner, colScore} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s missing column %q", ErrBadRecord, path, required)
		}
	}
	return cols, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}
