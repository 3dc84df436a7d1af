package rating

import (
	"math"
	"time"
)

const hoursPerDay = 24.0

// DecayedForm relaxes a form signal toward zero for the given idle
// period, halving it every configured half-life. A player away for
// several half-lives returns with near-neutral form regardless of how
// extreme it was.
func (e *Engine) DecayedForm(form float64, idle time.Duration) float64 {
	if idle <= 0 {
		return form
	}
	days := idle.Hours() / hoursPerDay
	return form * math.Pow(0.5, days/e.formHalfLifeDays)
}

// NextForm folds one match's surprise term into the form signal after
// applying inactivity decay. Surprise lies in (-1, 1) and the EWMA is
// a convex combination, so the signal stays bounded in (-1, 1).
func (e *Engine) NextForm(prev float64, idle time.Duration, surprise float64) float64 {
	decayed := e.DecayedForm(prev, idle)
	return decayed*(1-e.formAlpha) + surprise*e.formAlpha
}
