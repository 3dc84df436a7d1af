package config_test

import (
	"context"
	"testing"

	config "github.com/okian/topspin/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given default configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("Then the defaults are sane", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Scale, ShouldEqual, 400)
			So(cfg.TierWeights["top"], ShouldBeGreaterThan, cfg.TierWeights["lower"])
			So(cfg.YearFrom, ShouldBeGreaterThanOrEqualTo, config.MinRecommendedYearFrom)
			So(cfg.MarginCap, ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}
