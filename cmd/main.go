package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/topspin/internal/adapters/export"
	"github.com/okian/topspin/internal/adapters/feed"
	"github.com/okian/topspin/internal/adapters/repository"
	"github.com/okian/topspin/internal/app"
	"github.com/okian/topspin/internal/config"
	"github.com/okian/topspin/internal/domain/eval"
	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/internal/domain/rating"
	"github.com/okian/topspin/internal/domain/split"
	"github.com/okian/topspin/pkg/logger"
	"github.com/okian/topspin/pkg/metrics"
)

// Metrics listener timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("topspin: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	yearFrom := flag.Int("year-from", 0, "first season to include (inclusive)")
	yearTo := flag.Int("year-to", 0, "last season to include (inclusive)")
	testSize := flag.Int("test-size", 0, "trailing years held out for evaluation")
	dataDir := flag.String("data-dir", "", "directory holding the per-year match CSVs")
	outDir := flag.String("out-dir", "", "directory receiving run artifacts")
	configPath := flag.String("config", "", "optional YAML configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *configPath != "" {
		if err := os.Setenv("TOPSPIN_CONFIG", *configPath); err != nil {
			return fmt.Errorf("setting config path: %w", err)
		}
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env), then let
	// explicit flags override whatever the layers produced.
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg, *yearFrom, *yearTo, *testSize, *dataDir, *outDir)

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	// Validate the temporal split before touching any data.
	plan, err := split.New(cfg.YearFrom, cfg.YearTo, cfg.TestSizeYears)
	if err != nil {
		return err
	}
	if cfg.YearFrom < config.MinRecommendedYearFrom {
		log.Warn(ctx, "year_from predates the recommended floor; early seasons are patchy",
			logger.Int("year_from", cfg.YearFrom),
			logger.Int("recommended", config.MinRecommendedYearFrom),
		)
	}

	if cfg.MetricsAddr != "" {
		startMetricsListener(ctx, log, cfg.MetricsAddr)
	}

	weights := make(map[model.Tier]float64, len(cfg.TierWeights))
	for tier, w := range cfg.TierWeights {
		weights[model.Tier(tier)] = w
	}

	engine := rating.New(
		rating.WithScale(cfg.Scale),
		rating.WithTierWeights(weights),
		rating.WithMargin(cfg.MarginSlope, cfg.SetSpreadBonus, cfg.MarginCap),
		rating.WithBaselineDrip(cfg.BaselineDrip),
		rating.WithBlendWeights(cfg.BlendBeta, cfg.BlendGamma),
		rating.WithFormDecay(cfg.FormAlpha, cfg.FormHalfLifeDays),
	)

	pipeline := app.New(plan,
		app.WithLogger(log),
		app.WithFeed(feed.NewCSVFeed(cfg.DataDir, feed.WithLogger(log.Named("feed")))),
		app.WithStore(repository.NewMemStore()),
		app.WithEngine(engine),
		app.WithEvaluator(eval.New(eval.WithBucketCount(cfg.CalibrationBuckets))),
		app.WithExporter(export.NewFileExporter(cfg.OutDir, export.WithLogger(log.Named("export")))),
	)

	if _, err := pipeline.Run(ctx); err != nil {
		return err
	}
	return nil
}

// applyFlagOverrides lets explicit command-line flags win over the
// file and environment layers. Zero or empty flag values mean "not
// set" and leave the configuration untouched.
func applyFlagOverrides(cfg *config.Config, yearFrom, yearTo, testSize int, dataDir, outDir string) {
	if yearFrom > 0 {
		cfg.YearFrom = yearFrom
	}
	if yearTo > 0 {
		cfg.YearTo = yearTo
	}
	if testSize > 0 {
		cfg.TestSizeYears = testSize
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
}

// startMetricsListener exposes the Prometheus registry for scraping
// during long sweeps. Best effort: listener errors are logged, never
// fatal to the run.
func startMetricsListener(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "metrics listener started", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(ctx, "metrics listener failed", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}
