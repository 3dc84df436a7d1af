package model_test

import (
	"testing"
	"time"

	model "github.com/okian/topspin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given a parsed score", t, func() {
		Convey("When the winner takes it in straight sets", func() {
			s := model.Score{WinnerGames: 12, WinnerSets: 2, LoserGames: 3, LoserSets: 0, Valid: true}

			Convey("Then margins reflect the winner's perspective", func() {
				So(s.GamesMargin(), ShouldEqual, 9)
				So(s.SetsMargin(), ShouldEqual, 2)
				So(s.StraightSets(), ShouldBeTrue)
			})
		})

		Convey("When the winner takes three sets but fewer games", func() {
			s := model.Score{WinnerGames: 13, WinnerSets: 2, LoserGames: 15, LoserSets: 1, Valid: true}

			Convey("Then the games margin is negative", func() {
				So(s.GamesMargin(), ShouldEqual, -2)
				So(s.StraightSets(), ShouldBeFalse)
			})
		})

		Convey("When the score is invalid", func() {
			s := model.Score{}

			Convey("Then it is never a straight-sets win", func() {
				So(s.StraightSets(), ShouldBeFalse)
			})
		})
	})
}

func TestMatch(t *testing.T) {
	Convey("Given a match record", t, func() {
		m := model.Match{
			Date:    time.Date(2018, 6, 12, 0, 0, 0, 0, time.UTC),
			PlayerA: "s-williams",
			PlayerB: "m-sharapova",
			Winner:  "s-williams",
			Tier:    model.TierTop,
		}

		Convey("When asking which side won", func() {
			So(m.WinnerIsA(), ShouldBeTrue)
		})

		Convey("When building the duplicate-suppression key", func() {
			Convey("Then it is stable for identical records", func() {
				other := m
				So(other.Key(), ShouldEqual, m.Key())
			})

			Convey("Then it differs per date", func() {
				other := m
				other.Date = m.Date.AddDate(0, 0, 1)
				So(other.Key(), ShouldNotEqual, m.Key())
			})

			Convey("Then it differs per pairing", func() {
				other := m
				other.PlayerB = "v-williams"
				So(other.Key(), ShouldNotEqual, m.Key())
			})
		})
	})
}
