package rating

import (
	"math"

	"github.com/okian/topspin/internal/domain/model"
)

// Win returns the probability that a player with effective rating effA
// beats one with effB, via the base-10 logistic link. Total for all
// finite inputs; output strictly inside (0, 1).
func (e *Engine) Win(effA, effB float64) float64 {
	return 1 / (1 + math.Pow(10, -(effA-effB)/e.scale))
}

// Effective blends a player's baseline, current rating, and form
// signal into the single value fed to the predictor:
//
//	eff = baseline + beta*(current - baseline) + gamma*form
//
// beta < 1 anchors prediction to long-run skill; gamma converts the
// unitless form signal into rating points.
func (e *Engine) Effective(p model.Player) float64 {
	return p.Baseline + e.blendBeta*(p.Current-p.Baseline) + e.blendGamma*p.Form
}
