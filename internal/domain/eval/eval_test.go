package eval_test

import (
	"math"
	"testing"
	"time"

	eval "github.com/okian/topspin/internal/domain/eval"
	model "github.com/okian/topspin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func pred(probA float64, winnerIsA bool) model.Prediction {
	return model.Prediction{
		Date:      time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		PlayerA:   "a",
		PlayerB:   "b",
		ProbA:     probA,
		WinnerIsA: winnerIsA,
	}
}

func TestEvaluator_Report(t *testing.T) {
	Convey("Given an empty evaluator", t, func() {
		e := eval.New()

		Convey("Then the report is all zeros with empty buckets", func() {
			r := e.Report()
			So(r.Matches, ShouldEqual, 0)
			So(r.Accuracy, ShouldEqual, 0)
			So(r.Brier, ShouldEqual, 0)
			So(len(r.Buckets), ShouldEqual, 10)
		})
	})

	Convey("Given a handful of observed predictions", t, func() {
		e := eval.New()
		e.Observe(pred(0.8, true))  // confident, right
		e.Observe(pred(0.3, false)) // confident, right
		e.Observe(pred(0.7, false)) // confident, wrong
		e.Observe(pred(0.5, true))  // coin flip counts for the winner

		r := e.Report()

		Convey("Then accuracy thresholds the winner's probability at one half", func() {
			So(r.Matches, ShouldEqual, 4)
			So(r.Accuracy, ShouldEqual, 0.75)
		})

		Convey("Then the Brier score is computed against player A's outcome", func() {
			want := (0.2*0.2 + 0.3*0.3 + 0.7*0.7 + 0.5*0.5) / 4
			So(r.Brier, ShouldAlmostEqual, want, 1e-12)
		})

		Convey("Then the mean log-likelihood matches the realized outcomes", func() {
			want := (math.Log(0.8) + math.Log(0.7) + math.Log(0.3) + math.Log(0.5)) / 4
			So(r.MeanLogLikelihood, ShouldAlmostEqual, want, 1e-12)
		})
	})

	Convey("Given predictions concentrated in one probability band", t, func() {
		e := eval.New()
		// Four predictions near 0.75; A wins three of them.
		e.Observe(pred(0.72, true))
		e.Observe(pred(0.74, true))
		e.Observe(pred(0.76, false))
		e.Observe(pred(0.78, true))

		r := e.Report()

		Convey("Then that bucket compares mean prediction to observed frequency", func() {
			b := r.Buckets[7] // [0.7, 0.8)
			So(b.Count, ShouldEqual, 4)
			So(b.MeanPredicted, ShouldAlmostEqual, 0.75, 1e-12)
			So(b.ObservedFreq, ShouldAlmostEqual, 0.75, 1e-12)
		})

		Convey("Then untouched buckets stay empty with their bounds set", func() {
			So(r.Buckets[0].Count, ShouldEqual, 0)
			So(r.Buckets[0].Low, ShouldEqual, 0)
			So(r.Buckets[0].High, ShouldAlmostEqual, 0.1, 1e-12)
		})
	})

	Convey("Given a custom bucket count", t, func() {
		e := eval.New(eval.WithBucketCount(4))
		e.Observe(pred(1.0, true))

		Convey("Then a probability of exactly one folds into the last bucket", func() {
			r := e.Report()
			So(len(r.Buckets), ShouldEqual, 4)
			So(r.Buckets[3].Count, ShouldEqual, 1)
		})
	})

	Convey("Given the same inputs observed twice in different runs", t, func() {
		build := func() eval.Report {
			e := eval.New()
			e.Observe(pred(0.61, true))
			e.Observe(pred(0.42, false))
			return e.Report()
		}

		Convey("Then the reports are identical", func() {
			So(build(), ShouldResemble, build())
		})
	})
}
