// Package split partitions the chronological match stream into a fit
// window and a held-out evaluation window by calendar year.
package split

import (
	"fmt"

	"github.com/okian/topspin/internal/domain/model"
)

// Window is a half-open-by-year slice of the stream. FromYear is
// inclusive; ToYear is exclusive for the fit window and inclusive for
// the evaluation window (see Plan).
type Window struct {
	FromYear int
	ToYear   int
}

// Plan is the validated year partition for one run.
type Plan struct {
	// Fit covers [FromYear, ToYear) — matches used only to warm up
	// ratings.
	Fit Window
	// Eval covers [FromYear, ToYear] — matches predicted before being
	// applied.
	Eval Window
}

// New validates the year range and test size and returns the partition.
// The fit window is [yearFrom, yearTo-testSizeYears) and the evaluation
// window is [yearTo-testSizeYears, yearTo]. All matches dated before
// yearFrom are excluded entirely, never used even to warm up ratings.
func New(yearFrom, yearTo, testSizeYears int) (Plan, error) {
	if yearFrom >= yearTo {
		return Plan{}, fmt.Errorf("%w: year_from %d must precede year_to %d", ErrInvalidRange, yearFrom, yearTo)
	}
	if testSizeYears < 1 {
		return Plan{}, fmt.Errorf("%w: test_size_years %d must be at least 1", ErrInvalidTestSize, testSizeYears)
	}
	if testSizeYears >= yearTo-yearFrom {
		return Plan{}, fmt.Errorf("%w: test_size_years %d must be smaller than the %d-year range",
			ErrInvalidTestSize, testSizeYears, yearTo-yearFrom)
	}

	boundary := yearTo - testSizeYears
	return Plan{
		Fit:  Window{FromYear: yearFrom, ToYear: boundary},
		Eval: Window{FromYear: boundary, ToYear: yearTo},
	}, nil
}

// Include reports whether the match falls inside the run at all.
func (p Plan) Include(m model.Match) bool {
	y := m.Date.Year()
	return y >= p.Fit.FromYear && y <= p.Eval.ToYear
}

// InEval reports whether the match belongs to the held-out evaluation
// window.
func (p Plan) InEval(m model.Match) bool {
	y := m.Date.Year()
	return y >= p.Eval.FromYear && y <= p.Eval.ToYear
}
