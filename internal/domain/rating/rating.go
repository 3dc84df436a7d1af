// Package rating implements the sequential rating engine: the logistic
// win-probability link, the per-match update rule with tier and margin
// weighting, the two-speed baseline/current split, and the decaying
// form signal. All methods are pure with respect to player state; the
// repository owns mutation.
package rating

import (
	"github.com/okian/topspin/internal/domain/model"
)

// Default engine parameters. All of them are tunable via options and
// surfaced through the configuration; the defaults are starting points
// validated against the evaluation metrics, not fixed truths.
const (
	defaultScale            = 400.0
	defaultMarginSlope      = 0.15
	defaultMarginCap        = 2.5
	defaultSetSpreadBonus   = 2.0
	defaultBaselineDrip     = 0.1
	defaultBlendBeta        = 0.7
	defaultBlendGamma       = 150.0
	defaultFormAlpha        = 0.25
	defaultFormHalfLifeDays = 90.0
)

// Default tier weights: the lower-tier circuit carries strictly less
// confidence than the main tour.
const (
	defaultTopTierWeight   = 32.0
	defaultLowerTierWeight = 24.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScale sets the logistic scale constant.
func WithScale(scale float64) Option {
	return func(e *Engine) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

// WithTierWeights replaces the tier weight table. The map is copied so
// later mutation by the caller cannot leak into the engine.
func WithTierWeights(weights map[model.Tier]float64) Option {
	return func(e *Engine) {
		if len(weights) == 0 {
			return
		}
		e.tierWeights = make(map[model.Tier]float64, len(weights))
		for tier, w := range weights {
			if w > 0 {
				e.tierWeights[tier] = w
			}
		}
	}
}

// WithMargin sets the margin multiplier shape: slope per extra game of
// margin, the set-spread bonus folded into the margin, and the upper
// cap that keeps blowouts bounded.
func WithMargin(slope, setSpreadBonus, cap float64) Option {
	return func(e *Engine) {
		if slope >= 0 {
			e.marginSlope = slope
		}
		if setSpreadBonus >= 0 {
			e.setSpreadBonus = setSpreadBonus
		}
		if cap >= 1 {
			e.marginCap = cap
		}
	}
}

// WithBaselineDrip sets the fraction of each delta that propagates
// into the slow baseline estimate.
func WithBaselineDrip(epsilon float64) Option {
	return func(e *Engine) {
		if epsilon >= 0 && epsilon <= 1 {
			e.baselineDrip = epsilon
		}
	}
}

// WithBlendWeights sets the blend of current-vs-baseline (beta) and
// the rating points granted per unit of form signal (gamma).
func WithBlendWeights(beta, gamma float64) Option {
	return func(e *Engine) {
		if beta >= 0 && beta <= 1 {
			e.blendBeta = beta
		}
		if gamma >= 0 {
			e.blendGamma = gamma
		}
	}
}

// WithFormDecay sets the form EWMA rate and the inactivity half-life
// in days.
func WithFormDecay(alpha, halfLifeDays float64) Option {
	return func(e *Engine) {
		if alpha > 0 && alpha <= 1 {
			e.formAlpha = alpha
		}
		if halfLifeDays > 0 {
			e.formHalfLifeDays = halfLifeDays
		}
	}
}

// Engine bundles the predictor, update rule, form tracker, and blender
// under a single parameter set.
type Engine struct {
	scale       float64
	tierWeights map[model.Tier]float64

	marginSlope    float64
	setSpreadBonus float64
	marginCap      float64

	baselineDrip float64

	blendBeta  float64
	blendGamma float64

	formAlpha        float64
	formHalfLifeDays float64
}

// New constructs an Engine with default parameters, then applies the
// provided options.
func New(opts ...Option) *Engine {
	e := &Engine{
		scale: defaultScale,
		tierWeights: map[model.Tier]float64{
			model.TierTop:   defaultTopTierWeight,
			model.TierLower: defaultLowerTierWeight,
		},
		marginSlope:      defaultMarginSlope,
		setSpreadBonus:   defaultSetSpreadBonus,
		marginCap:        defaultMarginCap,
		baselineDrip:     defaultBaselineDrip,
		blendBeta:        defaultBlendBeta,
		blendGamma:       defaultBlendGamma,
		formAlpha:        defaultFormAlpha,
		formHalfLifeDays: defaultFormHalfLifeDays,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// TierWeight returns the configured weight for tier, or ErrUnknownTier
// when the tier is absent from the table. An unknown tier is a
// configuration problem and aborts the run.
func (e *Engine) TierWeight(tier model.Tier) (float64, error) {
	w, ok := e.tierWeights[tier]
	if !ok {
		return 0, unknownTier(tier)
	}
	return w, nil
}

// BaselineDrip returns the fraction of each delta that the store
// applies to the baseline component.
func (e *Engine) BaselineDrip() float64 {
	return e.baselineDrip
}
