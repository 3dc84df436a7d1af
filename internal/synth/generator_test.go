package synth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/topspin/internal/adapters/feed"
	"github.com/okian/topspin/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator over a small pool", t, func() {
		g := New(8, WithSeed(42))
		ctx := context.Background()

		Convey("Seasons come out chronologically ordered", func() {
			records := g.Season(ctx, 2019, 200)
			So(len(records), ShouldEqual, 200)
			for i := 1; i < len(records); i++ {
				So(records[i].Match.Date.Before(records[i-1].Match.Date), ShouldBeFalse)
			}
		})

		Convey("Every match is well formed", func() {
			for _, r := range g.Season(ctx, 2020, 100) {
				So(r.Match.PlayerA, ShouldNotEqual, r.Match.PlayerB)
				So(r.Match.Winner, ShouldEqual, r.Match.PlayerA)
				So(r.Match.Score.Valid, ShouldBeTrue)
				So(r.Match.Score.WinnerSets, ShouldEqual, 2)
				So(r.Match.Score.SetsMargin(), ShouldBeGreaterThanOrEqualTo, 1)
				So(r.RawScore, ShouldNotBeEmpty)
			}
		})

		Convey("Raw scores parse back through the feed's parser", func() {
			for _, r := range g.Season(ctx, 2021, 100) {
				parsed, err := feed.ParseScore(r.RawScore)
				So(err, ShouldBeNil)
				So(parsed, ShouldResemble, r.Match.Score)
			}
		})

		Convey("The same seed reproduces the same season", func() {
			a := New(8, WithSeed(7)).Season(ctx, 2019, 50)
			b := New(8, WithSeed(7)).Season(ctx, 2019, 50)
			So(a, ShouldResemble, b)
		})
	})
}

func TestWriteSeason(t *testing.T) {
	Convey("Given a generated season written to disk", t, func() {
		dir := t.TempDir()
		g := New(6, WithSeed(3))
		records := g.Season(context.Background(), 2018, 40)

		So(WriteSeason(dir, 2018, records), ShouldBeNil)

		Convey("The feed can load it back", func() {
			f := feed.NewCSVFeed(dir)
			matches, err := f.Matches(context.Background())
			So(err, ShouldBeNil)
			// A synthetic season can repeat a pairing on the same day;
			// the feed is allowed to drop those as duplicates.
			So(len(matches), ShouldBeLessThanOrEqualTo, 40)
			So(len(matches), ShouldBeGreaterThan, 0)
		})

		Convey("The file lands under the expected name", func() {
			_, err := os.Stat(filepath.Join(dir, "matches_2018.csv"))
			So(err, ShouldBeNil)
		})
	})
}
