package rating_test

import (
	"testing"
	"time"

	model "github.com/okian/topspin/internal/domain/model"
	rating "github.com/okian/topspin/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func newPlayer(id string, r float64) model.Player {
	return model.Player{ID: id, Baseline: r, Current: r}
}

func straightSets(winnerGames, loserGames int) model.Score {
	return model.Score{WinnerGames: winnerGames, WinnerSets: 2, LoserGames: loserGames, LoserSets: 0, Valid: true}
}

func TestEngine_Win(t *testing.T) {
	Convey("Given an engine with the default logistic scale", t, func() {
		eng := rating.New()

		Convey("When both effective ratings are equal", func() {
			So(eng.Win(1500, 1500), ShouldEqual, 0.5)
		})

		Convey("When the ratings differ", func() {
			Convey("Then probability is monotonically increasing in the differential", func() {
				prev := 0.0
				for diff := -800.0; diff <= 800.0; diff += 50 {
					p := eng.Win(1500+diff, 1500)
					So(p, ShouldBeGreaterThan, prev)
					prev = p
				}
			})

			Convey("Then complementary probabilities sum to one", func() {
				for _, diff := range []float64{1, 37, 120, 400, 951} {
					pAB := eng.Win(1500+diff, 1500)
					pBA := eng.Win(1500, 1500+diff)
					So(pAB+pBA, ShouldAlmostEqual, 1.0, 1e-12)
				}
			})

			Convey("Then output stays strictly inside (0, 1)", func() {
				So(eng.Win(5000, 0), ShouldBeLessThan, 1)
				So(eng.Win(5000, 0), ShouldBeGreaterThan, 0)
				So(eng.Win(0, 5000), ShouldBeGreaterThan, 0)
				So(eng.Win(0, 5000), ShouldBeLessThan, 1)
			})
		})

		Convey("When a 400-point gap is evaluated", func() {
			// 10/11 is the textbook value for the base-10 link.
			So(eng.Win(1900, 1500), ShouldAlmostEqual, 10.0/11.0, 1e-12)
		})
	})
}

func TestEngine_Effective(t *testing.T) {
	Convey("Given an engine with explicit blend weights", t, func() {
		eng := rating.New(rating.WithBlendWeights(0.5, 100))

		Convey("When a player's current deviates from baseline", func() {
			p := model.Player{ID: "p", Baseline: 1500, Current: 1600}

			Convey("Then beta attenuates the deviation", func() {
				So(eng.Effective(p), ShouldEqual, 1550)
			})
		})

		Convey("When a player carries a form signal", func() {
			p := model.Player{ID: "p", Baseline: 1500, Current: 1500, Form: 0.2}

			Convey("Then gamma converts it to rating points", func() {
				So(eng.Effective(p), ShouldEqual, 1520)
			})
		})

		Convey("When a player is freshly created", func() {
			p := newPlayer("p", 1500)

			Convey("Then effective equals baseline", func() {
				So(eng.Effective(p), ShouldEqual, 1500)
			})
		})
	})
}

func TestEngine_Margin(t *testing.T) {
	Convey("Given an engine with default margin shape", t, func() {
		eng := rating.New()

		Convey("When the score is missing or malformed", func() {
			So(eng.Margin(model.Score{}), ShouldEqual, 1.0)
		})

		Convey("When the win is as narrow as possible", func() {
			// Two tiebreak sets: games margin 2, but the floor keeps
			// the multiplier at exactly 1 for margin <= 1.
			narrow := model.Score{WinnerGames: 13, WinnerSets: 2, LoserGames: 15, LoserSets: 1, Valid: true}
			So(eng.Margin(narrow), ShouldEqual, 1.0)
		})

		Convey("When margins grow", func() {
			Convey("Then the multiplier is non-decreasing", func() {
				prev := 0.0
				for loserGames := 10; loserGames >= 0; loserGames-- {
					m := eng.Margin(straightSets(12, loserGames))
					So(m, ShouldBeGreaterThanOrEqualTo, prev)
					prev = m
				}
			})

			Convey("Then a blowout never exceeds the cap", func() {
				So(eng.Margin(straightSets(12, 0)), ShouldBeLessThanOrEqualTo, 2.5)
			})
		})

		Convey("When two scores differ only in winning margin", func() {
			tight := eng.Margin(straightSets(13, 11))
			wide := eng.Margin(straightSets(12, 4))
			So(wide, ShouldBeGreaterThan, tight)
		})
	})
}

func TestEngine_Deltas(t *testing.T) {
	Convey("Given two players at the default baseline", t, func() {
		a := newPlayer("a", 1500)
		b := newPlayer("b", 1500)
		date := time.Date(2019, 3, 2, 0, 0, 0, 0, time.UTC)

		match := func(tier model.Tier, score model.Score) model.Match {
			return model.Match{Date: date, PlayerA: "a", PlayerB: "b", Winner: "a", Tier: tier, Score: score}
		}

		Convey("When A beats B at the top tier with neutral margin and K=32", func() {
			eng := rating.New(
				rating.WithTierWeights(map[model.Tier]float64{model.TierTop: 32}),
				rating.WithMargin(0, 0, 1),
			)

			up, err := eng.Deltas(match(model.TierTop, straightSets(12, 3)), a, b)

			Convey("Then the expected outcome was exactly one half", func() {
				So(err, ShouldBeNil)
				So(up.ProbA, ShouldEqual, 0.5)
			})

			Convey("Then the winner gains exactly 16 points", func() {
				So(up.DeltaA, ShouldEqual, 16.0)
				So(up.DeltaB, ShouldEqual, -16.0)
			})
		})

		Convey("When the configuration is symmetric", func() {
			eng := rating.New()
			up, err := eng.Deltas(match(model.TierTop, model.Score{}), a, b)

			Convey("Then deltas are exactly zero-sum", func() {
				So(err, ShouldBeNil)
				So(up.DeltaA, ShouldEqual, -up.DeltaB)
				So(up.BaselineDeltaA, ShouldEqual, -up.BaselineDeltaB)
			})
		})

		Convey("When two identical matches differ only in tier", func() {
			eng := rating.New()
			score := straightSets(12, 6)

			top, errTop := eng.Deltas(match(model.TierTop, score), a, b)
			lower, errLower := eng.Deltas(match(model.TierLower, score), a, b)

			Convey("Then the top-tier match moves ratings strictly more", func() {
				So(errTop, ShouldBeNil)
				So(errLower, ShouldBeNil)
				So(top.DeltaA, ShouldBeGreaterThan, lower.DeltaA)
			})
		})

		Convey("When two identical matches differ only in margin", func() {
			eng := rating.New()

			tight, _ := eng.Deltas(match(model.TierTop, straightSets(13, 11)), a, b)
			wide, _ := eng.Deltas(match(model.TierTop, straightSets(12, 2)), a, b)

			Convey("Then the larger margin produces the larger delta", func() {
				So(wide.DeltaA, ShouldBeGreaterThan, tight.DeltaA)
			})
		})

		Convey("When the tier is not in the weight table", func() {
			eng := rating.New()
			_, err := eng.Deltas(match(model.Tier("exhibition"), straightSets(12, 3)), a, b)

			Convey("Then the run fails with a configuration error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "exhibition")
			})
		})

		Convey("When the baseline drip is configured", func() {
			eng := rating.New(rating.WithBaselineDrip(0.2), rating.WithMargin(0, 0, 1),
				rating.WithTierWeights(map[model.Tier]float64{model.TierTop: 32}))
			up, err := eng.Deltas(match(model.TierTop, model.Score{}), a, b)

			Convey("Then the baseline receives the configured fraction", func() {
				So(err, ShouldBeNil)
				So(up.BaselineDeltaA, ShouldAlmostEqual, 0.2*up.DeltaA, 1e-12)
			})
		})

		Convey("When the same match is computed twice", func() {
			eng := rating.New()
			first, _ := eng.Deltas(match(model.TierTop, straightSets(12, 5)), a, b)
			second, _ := eng.Deltas(match(model.TierTop, straightSets(12, 5)), a, b)

			Convey("Then the results are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestEngine_Form(t *testing.T) {
	Convey("Given an engine with a 90-day form half-life", t, func() {
		eng := rating.New(rating.WithFormDecay(0.25, 90))

		Convey("When a player is idle for exactly one half-life", func() {
			So(eng.DecayedForm(0.8, 90*24*time.Hour), ShouldAlmostEqual, 0.4, 1e-12)
		})

		Convey("When a player is idle for many half-lives", func() {
			Convey("Then even an extreme signal relaxes to near zero", func() {
				year := 8 * 90 * 24 * time.Hour
				So(eng.DecayedForm(0.999, year), ShouldBeLessThan, 0.005)
				So(eng.DecayedForm(-0.999, year), ShouldBeGreaterThan, -0.005)
			})
		})

		Convey("When folding in a new surprise", func() {
			next := eng.NextForm(0, 0, 1)

			Convey("Then the EWMA rate governs the step", func() {
				So(next, ShouldEqual, 0.25)
			})

			Convey("Then repeated surprises stay bounded", func() {
				form := 0.0
				for i := 0; i < 500; i++ {
					form = eng.NextForm(form, 24*time.Hour, 0.99)
				}
				So(form, ShouldBeLessThan, 1)
				So(form, ShouldBeGreaterThan, 0.9)
			})
		})

		Convey("When the form update is driven by a match", func() {
			// Tier weight must not leak into form: only the surprise does.
			a := newPlayer("a", 1500)
			b := newPlayer("b", 1500)
			m := model.Match{
				Date: time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC),
				PlayerA: "a", PlayerB: "b", Winner: "a",
				Tier:  model.TierLower,
				Score: straightSets(12, 3),
			}

			topEng := rating.New(rating.WithTierWeights(map[model.Tier]float64{model.TierLower: 64}))
			lowEng := rating.New(rating.WithTierWeights(map[model.Tier]float64{model.TierLower: 8}))

			upTop, _ := topEng.Deltas(m, a, b)
			upLow, _ := lowEng.Deltas(m, a, b)

			Convey("Then form is identical regardless of tier weight", func() {
				So(upTop.FormA, ShouldEqual, upLow.FormA)
				So(upTop.FormB, ShouldEqual, upLow.FormB)
			})

			Convey("Then loser form mirrors winner form at equal priors", func() {
				So(upTop.FormA, ShouldEqual, -upTop.FormB)
			})
		})
	})
}
