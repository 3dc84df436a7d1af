// Package eval replays held-out predictions and aggregates accuracy,
// Brier score, log-likelihood, and calibration statistics.
package eval

import (
	"math"

	"github.com/okian/topspin/internal/domain/model"
)

// Default evaluation configuration constants.
const (
	defaultBucketCount = 10
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithBucketCount sets the number of fixed-width calibration buckets.
func WithBucketCount(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.bucketCount = n
		}
	}
}

// Bucket compares mean predicted probability to observed win frequency
// within one fixed-width probability band.
type Bucket struct {
	Low           float64
	High          float64
	Count         int
	MeanPredicted float64
	ObservedFreq  float64
}

// Report aggregates the evaluation sweep.
type Report struct {
	Matches int

	// Accuracy is the fraction of matches where the winner's predicted
	// probability was at least one half.
	Accuracy float64

	// Brier is the mean squared error of the probability against a
	// fixed reference side: always player A's outcome indicator.
	Brier float64

	// MeanLogLikelihood is the mean log of the probability assigned to
	// the realized outcome. Higher (closer to zero) is better.
	MeanLogLikelihood float64

	Buckets []Bucket
}

// Evaluator accumulates predictions recorded before each evaluation
// match's own rating update, preserving causality.
type Evaluator struct {
	bucketCount int
	predictions []model.Prediction
}

// New constructs an Evaluator with configuration options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		bucketCount: defaultBucketCount,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Observe records one pre-match prediction together with the realized
// result.
func (e *Evaluator) Observe(p model.Prediction) {
	e.predictions = append(e.predictions, p)
}

// Predictions returns the recorded predictions in observation order.
// The caller must not mutate the returned slice.
func (e *Evaluator) Predictions() []model.Prediction {
	return e.predictions
}

// Report computes the aggregate metrics over everything observed so
// far. Safe to call on an empty evaluator: all metrics are zero.
func (e *Evaluator) Report() Report {
	n := len(e.predictions)
	if n == 0 {
		return Report{Buckets: e.emptyBuckets()}
	}

	var correct int
	var brierSum, llSum float64

	bucketSumPred := make([]float64, e.bucketCount)
	bucketWins := make([]int, e.bucketCount)
	bucketCount := make([]int, e.bucketCount)

	for _, p := range e.predictions {
		outcomeA := 0.0
		winnerProb := 1 - p.ProbA
		if p.WinnerIsA {
			outcomeA = 1.0
			winnerProb = p.ProbA
		}

		if winnerProb >= 0.5 {
			correct++
		}

		diff := p.ProbA - outcomeA
		brierSum += diff * diff
		llSum += math.Log(winnerProb)

		b := e.bucketIndex(p.ProbA)
		bucketSumPred[b] += p.ProbA
		bucketCount[b]++
		if p.WinnerIsA {
			bucketWins[b]++
		}
	}

	buckets := e.emptyBuckets()
	for i := range buckets {
		if bucketCount[i] == 0 {
			continue
		}
		buckets[i].Count = bucketCount[i]
		buckets[i].MeanPredicted = bucketSumPred[i] / float64(bucketCount[i])
		buckets[i].ObservedFreq = float64(bucketWins[i]) / float64(bucketCount[i])
	}

	return Report{
		Matches:           n,
		Accuracy:          float64(correct) / float64(n),
		Brier:             brierSum / float64(n),
		MeanLogLikelihood: llSum / float64(n),
		Buckets:           buckets,
	}
}

// bucketIndex maps a probability in [0,1] to its fixed-width bucket;
// 1.0 folds into the last bucket.
func (e *Evaluator) bucketIndex(prob float64) int {
	i := int(prob * float64(e.bucketCount))
	if i >= e.bucketCount {
		i = e.bucketCount - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (e *Evaluator) emptyBuckets() []Bucket {
	width := 1.0 / float64(e.bucketCount)
	buckets := make([]Bucket, e.bucketCount)
	for i := range buckets {
		buckets[i].Low = float64(i) * width
		buckets[i].High = float64(i+1) * width
	}
	return buckets
}
