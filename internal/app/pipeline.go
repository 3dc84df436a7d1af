// Package app provides the pipeline service that drives one full
// rating run: feed, temporal split, the sequential sweep, evaluation,
// and artifact export.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/topspin/internal/adapters/feed"
	"github.com/okian/topspin/internal/adapters/repository"
	"github.com/okian/topspin/internal/domain/eval"
	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/internal/domain/rating"
	"github.com/okian/topspin/internal/domain/split"
	"github.com/okian/topspin/pkg/logger"
	"github.com/okian/topspin/pkg/metrics"
)

// Result is everything one run produces, handed to the exporter.
type Result struct {
	RunID string
	Plan  split.Plan

	Matches int
	Players int

	// FitSnapshot captures ratings at the end of the fit window,
	// before any held-out match has been applied.
	FitSnapshot model.RatingSnapshot

	// FinalSnapshot captures ratings after the evaluation sweep.
	FinalSnapshot model.RatingSnapshot

	// Rankings orders all players by final effective rating.
	Rankings []repository.Entry

	Predictions []model.Prediction
	Report      eval.Report

	Elapsed time.Duration
}

// Exporter persists a run's artifacts. Implemented by the file
// exporter; the pipeline only needs this narrow contract.
type Exporter interface {
	Export(ctx context.Context, res Result) error
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithFeed sets the match source.
func WithFeed(f feed.Feed) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.feed = f
		}
	}
}

// WithStore sets the rating store.
func WithStore(s repository.Store) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.store = s
		}
	}
}

// WithEngine sets the rating engine.
func WithEngine(e *rating.Engine) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.engine = e
		}
	}
}

// WithEvaluator sets the held-out evaluator.
func WithEvaluator(e *eval.Evaluator) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.evaluator = e
		}
	}
}

// WithExporter sets the artifact exporter. Nil disables export.
func WithExporter(e Exporter) Option {
	return func(p *Pipeline) {
		p.exporter = e
	}
}

// Pipeline owns one run. The store is mutated by exactly one logical
// writer: the sequential sweep below. Parallelizing across time would
// break causality, so there is deliberately no concurrency here.
type Pipeline struct {
	plan split.Plan

	log       logger.Logger
	feed      feed.Feed
	store     repository.Store
	engine    *rating.Engine
	evaluator *eval.Evaluator
	exporter  Exporter
}

// New constructs a Pipeline for the given temporal plan with default
// components, then applies the provided options.
func New(plan split.Plan, opts ...Option) *Pipeline {
	p := &Pipeline{
		plan:      plan,
		store:     repository.NewMemStore(),
		engine:    rating.New(),
		evaluator: eval.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = logger.Get()
	}

	return p
}

// Run executes the full batch pass: load, sweep, evaluate, export.
// Configuration problems (unknown tier, missing feed) abort the run;
// per-match data issues were already absorbed by the feed.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	if p.feed == nil {
		return Result{}, ErrNoFeed
	}

	start := time.Now()
	runID := uuid.NewString()
	p.log.Info(ctx, "starting rating run",
		logger.String("runID", runID),
		logger.Int("fitFrom", p.plan.Fit.FromYear),
		logger.Int("fitTo", p.plan.Fit.ToYear),
		logger.Int("evalTo", p.plan.Eval.ToYear),
	)

	matches, err := p.feed.Matches(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading matches: %w", err)
	}

	res := Result{RunID: runID, Plan: p.plan}
	fitSnapshotTaken := false

	for _, m := range matches {
		if !p.plan.Include(m) {
			// Outside the run entirely: never used, not even to warm
			// up ratings.
			continue
		}

		a := p.store.Get(ctx, m.PlayerA)
		b := p.store.Get(ctx, m.PlayerB)

		up, err := p.engine.Deltas(m, a, b)
		if err != nil {
			return Result{}, fmt.Errorf("match on %s: %w", m.Date.Format("2006-01-02"), err)
		}

		if p.plan.InEval(m) {
			if !fitSnapshotTaken {
				res.FitSnapshot = p.store.Snapshot(ctx, m.Date)
				fitSnapshotTaken = true
			}
			// Record the prediction before this match's own update so
			// no result ever influences its own forecast.
			p.evaluator.Observe(model.Prediction{
				Date:       m.Date,
				PlayerA:    m.PlayerA,
				PlayerB:    m.PlayerB,
				ProbA:      up.ProbA,
				WinnerIsA:  m.WinnerIsA(),
				Tier:       m.Tier,
				EffectiveA: p.engine.Effective(a),
				EffectiveB: p.engine.Effective(b),
			})
			metrics.RecordPredictionRecorded()
		}

		p.store.Apply(ctx, m, up)
		metrics.RecordMatchRated()
		res.Matches++
	}

	if !fitSnapshotTaken {
		// No held-out match appeared; snapshot at the boundary anyway.
		res.FitSnapshot = p.store.Snapshot(ctx, time.Date(p.plan.Eval.FromYear, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	res.FinalSnapshot = p.store.Snapshot(ctx, time.Date(p.plan.Eval.ToYear+1, 1, 1, 0, 0, 0, 0, time.UTC))
	res.Rankings = p.store.Rankings(ctx, p.engine.Effective)
	res.Predictions = p.evaluator.Predictions()
	res.Report = p.evaluator.Report()
	res.Players = p.store.Count(ctx)
	res.Elapsed = time.Since(start)

	metrics.RecordSweepDuration(res.Elapsed.Seconds())
	metrics.UpdateEvalAccuracy(res.Report.Accuracy)
	metrics.UpdateEvalBrier(res.Report.Brier)

	p.log.Info(ctx, "rating run finished",
		logger.String("runID", runID),
		logger.Int("matches", res.Matches),
		logger.Int("players", res.Players),
		logger.Int("evaluated", res.Report.Matches),
		logger.Float64("accuracy", res.Report.Accuracy),
		logger.Float64("brier", res.Report.Brier),
		logger.Duration("elapsed", res.Elapsed),
	)

	if p.exporter != nil {
		if err := p.exporter.Export(ctx, res); err != nil {
			return res, fmt.Errorf("exporting artifacts: %w", err)
		}
	}

	return res, nil
}
