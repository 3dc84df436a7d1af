// Package export writes a finished run's artifacts to disk: rankings,
// per-match predictions, calibration buckets, and a run summary.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/topspin/internal/app"
	"github.com/okian/topspin/pkg/logger"
)

// Artifact file names inside the output directory.
const (
	rankingsFile    = "rankings.csv"
	predictionsFile = "predictions.csv"
	calibrationFile = "calibration.csv"
	summaryFile     = "summary.json"

	dirPerm  = 0o755
	filePerm = 0o644

	dateLayout = "2006-01-02"
)

// Option applies a configuration option to the FileExporter.
type Option func(*FileExporter)

// WithLogger sets a custom logger for the exporter.
func WithLogger(log logger.Logger) Option {
	return func(e *FileExporter) {
		if log != nil {
			e.log = log
		}
	}
}

// FileExporter persists run artifacts under a single output directory,
// overwriting any previous run's files.
type FileExporter struct {
	dir string
	log logger.Logger
}

// NewFileExporter constructs a FileExporter targeting the given
// directory, creating it on first export if needed.
func NewFileExporter(dir string, opts ...Option) *FileExporter {
	e := &FileExporter{dir: dir}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.Get()
	}

	return e
}

// Export writes all four artifacts. Any failure aborts the export;
// already-written files are left in place for inspection.
func (e *FileExporter) Export(ctx context.Context, res app.Result) error {
	if err := os.MkdirAll(e.dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrExport, e.dir, err)
	}

	if err := e.writeRankings(res); err != nil {
		return err
	}
	if err := e.writePredictions(res); err != nil {
		return err
	}
	if err := e.writeCalibration(res); err != nil {
		return err
	}
	if err := e.writeSummary(res); err != nil {
		return err
	}

	e.log.Info(ctx, "run artifacts written",
		logger.String("runID", res.RunID),
		logger.String("dir", e.dir),
		logger.Int("rankings", len(res.Rankings)),
		logger.Int("predictions", len(res.Predictions)),
	)

	return nil
}

func (e *FileExporter) writeRankings(res app.Result) error {
	rows := make([][]string, 0, len(res.Rankings)+1)
	rows = append(rows, []string{"rank", "player", "effective", "baseline", "current", "form", "matches"})
	for _, r := range res.Rankings {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.PlayerID,
			formatFloat(r.Effective),
			formatFloat(r.Baseline),
			formatFloat(r.Current),
			formatFloat(r.Form),
			strconv.Itoa(r.Matches),
		})
	}
	return e.writeCSV(rankingsFile, rows)
}

func (e *FileExporter) writePredictions(res app.Result) error {
	rows := make([][]string, 0, len(res.Predictions)+1)
	rows = append(rows, []string{"date", "player_a", "player_b", "prob_a", "winner", "tier", "effective_a", "effective_b"})
	for _, p := range res.Predictions {
		winner := p.PlayerB
		if p.WinnerIsA {
			winner = p.PlayerA
		}
		rows = append(rows, []string{
			p.Date.Format(dateLayout),
			p.PlayerA,
			p.PlayerB,
			formatFloat(p.ProbA),
			winner,
			string(p.Tier),
			formatFloat(p.EffectiveA),
			formatFloat(p.EffectiveB),
		})
	}
	return e.writeCSV(predictionsFile, rows)
}

func (e *FileExporter) writeCalibration(res app.Result) error {
	rows := make([][]string, 0, len(res.Report.Buckets)+1)
	rows = append(rows, []string{"bucket_low", "bucket_high", "count", "mean_predicted", "observed_freq"})
	for _, b := range res.Report.Buckets {
		rows = append(rows, []string{
			formatFloat(b.Low),
			formatFloat(b.High),
			strconv.Itoa(b.Count),
			formatFloat(b.MeanPredicted),
			formatFloat(b.ObservedFreq),
		})
	}
	return e.writeCSV(calibrationFile, rows)
}

// summary is the JSON shape of summary.json.
type summary struct {
	RunID             string  `json:"run_id"`
	FitFromYear       int     `json:"fit_from_year"`
	FitToYear         int     `json:"fit_to_year"`
	EvalFromYear      int     `json:"eval_from_year"`
	EvalToYear        int     `json:"eval_to_year"`
	Matches           int     `json:"matches"`
	Players           int     `json:"players"`
	Evaluated         int     `json:"evaluated"`
	Accuracy          float64 `json:"accuracy"`
	Brier             float64 `json:"brier"`
	MeanLogLikelihood float64 `json:"mean_log_likelihood"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
}

func (e *FileExporter) writeSummary(res app.Result) error {
	s := summary{
		RunID:             res.RunID,
		FitFromYear:       res.Plan.Fit.FromYear,
		FitToYear:         res.Plan.Fit.ToYear,
		EvalFromYear:      res.Plan.Eval.FromYear,
		EvalToYear:        res.Plan.Eval.ToYear,
		Matches:           res.Matches,
		Players:           res.Players,
		Evaluated:         res.Report.Matches,
		Accuracy:          res.Report.Accuracy,
		Brier:             res.Report.Brier,
		MeanLogLikelihood: res.Report.MeanLogLikelihood,
		ElapsedSeconds:    res.Elapsed.Seconds(),
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding summary: %v", ErrExport, err)
	}

	path := filepath.Join(e.dir, summaryFile)
	if err := os.WriteFile(path, append(data, '\n'), filePerm); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrExport, path, err)
	}
	return nil
}

func (e *FileExporter) writeCSV(name string, rows [][]string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrExport, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrExport, path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
