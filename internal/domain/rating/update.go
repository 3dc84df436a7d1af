package rating

import (
	"time"

	"github.com/okian/topspin/internal/domain/model"
)

// Update is the full state transition for one match, computed from the
// two participants' pre-match state. The store applies it atomically.
type Update struct {
	// ProbA is the model's pre-match probability that PlayerA wins,
	// recorded before this match influences any rating.
	ProbA float64

	// DeltaA and DeltaB are the current-rating deltas. They are equal
	// in magnitude and opposite in sign.
	DeltaA float64
	DeltaB float64

	// BaselineDeltaA and BaselineDeltaB are the slow drip into the
	// long-run estimates.
	BaselineDeltaA float64
	BaselineDeltaB float64

	// FormA and FormB are the participants' new form signals, already
	// decayed for inactivity and folded with this match's surprise.
	FormA float64
	FormB float64
}

// Margin returns the multiplier applied to the delta for the winning
// margin. It is 1.0 for the narrowest win (and for missing scores),
// monotonically increasing in the margin, and capped.
func (e *Engine) Margin(s model.Score) float64 {
	if !s.Valid {
		return 1.0
	}
	margin := float64(s.GamesMargin()) + e.setSpreadBonus*float64(s.SetsMargin()-1)
	if margin < 1 {
		margin = 1
	}
	m := 1 + e.marginSlope*(margin-1)
	if m > e.marginCap {
		m = e.marginCap
	}
	return m
}

// Deltas computes the state transition for m given both participants'
// pre-match state. Returns ErrUnknownTier when the match references a
// tier outside the configured weight table.
func (e *Engine) Deltas(m model.Match, a, b model.Player) (Update, error) {
	k, err := e.TierWeight(m.Tier)
	if err != nil {
		return Update{}, err
	}

	probA := e.Win(e.Effective(a), e.Effective(b))

	outcomeA := 0.0
	if m.WinnerIsA() {
		outcomeA = 1.0
	}
	surpriseA := outcomeA - probA

	deltaA := k * e.Margin(m.Score) * surpriseA

	return Update{
		ProbA:          probA,
		DeltaA:         deltaA,
		DeltaB:         -deltaA,
		BaselineDeltaA: e.baselineDrip * deltaA,
		BaselineDeltaB: -e.baselineDrip * deltaA,
		// Form tracks surprise, not rating movement: no tier weight,
		// no margin.
		FormA: e.NextForm(a.Form, idleSince(a.LastActive, m.Date), surpriseA),
		FormB: e.NextForm(b.Form, idleSince(b.LastActive, m.Date), -surpriseA),
	}, nil
}

func idleSince(lastActive, now time.Time) time.Duration {
	if lastActive.IsZero() || now.Before(lastActive) {
		return 0
	}
	return now.Sub(lastActive)
}
