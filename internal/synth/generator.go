// Package synth generates synthetic seasons of match data for load
// testing and demo runs. Players carry a hidden latent strength; match
// outcomes are drawn from the same logistic link the rating engine
// uses, so a fitted run over synthetic data should recover the latent
// ordering.
package synth

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/pkg/logger"
)

// Latent-strength and score-generation constants.
const (
	latentMean   = 1500.0
	latentStddev = 150.0
	latentScale  = 400.0

	// Share of matches played on the lower circuit.
	lowerTierShare = 0.6

	// Share of decided matches that go to straight sets.
	straightSetsShare = 0.65

	daysPerSeason = 364
)

var surfaces = []string{"hard", "clay", "grass"}

// Record is one generated match plus its raw score string in the
// normalized CSV schema.
type Record struct {
	Match    model.Match
	RawScore string
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLogger sets a custom logger for the generator.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// Generator produces synthetic seasons over a fixed player pool.
type Generator struct {
	rng *rand.Rand
	log logger.Logger

	players []player
}

type player struct {
	id     string
	latent float64
}

// New constructs a Generator with the given pool size. Player IDs are
// stable ("p0001", "p0002", ...) so repeated seeded runs line up.
func New(playerCount int, opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.log == nil {
		g.log = logger.Get()
	}

	if playerCount < 2 {
		playerCount = 2
	}
	g.players = make([]player, playerCount)
	for i := range g.players {
		g.players[i] = player{
			id:     fmt.Sprintf("p%04d", i+1),
			latent: latentMean + g.rng.NormFloat64()*latentStddev,
		}
	}

	return g
}

// Season generates one year of matches in chronological order.
func (g *Generator) Season(ctx context.Context, year, matchCount int) []Record {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	offsets := make([]int, matchCount)
	for i := range offsets {
		offsets[i] = g.rng.IntN(daysPerSeason)
	}
	sort.Ints(offsets)

	records := make([]Record, 0, matchCount)
	for _, off := range offsets {
		records = append(records, g.match(start.AddDate(0, 0, off)))
	}

	g.log.Debug(ctx, "season generated",
		logger.Int("year", year),
		logger.Int("matches", len(records)),
	)
	return records
}

// match draws one contest between two distinct players.
func (g *Generator) match(date time.Time) Record {
	i := g.rng.IntN(len(g.players))
	j := g.rng.IntN(len(g.players) - 1)
	if j >= i {
		j++
	}
	a, b := g.players[i], g.players[j]

	probA := 1 / (1 + math.Pow(10, -(a.latent-b.latent)/latentScale))
	winner, loser := a, b
	if g.rng.Float64() >= probA {
		winner, loser = b, a
	}

	tier := model.TierTop
	if g.rng.Float64() < lowerTierShare {
		tier = model.TierLower
	}

	score, raw := g.score()

	return Record{
		Match: model.Match{
			Date:    date,
			PlayerA: winner.id,
			PlayerB: loser.id,
			Winner:  winner.id,
			Score:   score,
			Tier:    tier,
			Surface: surfaces[g.rng.IntN(len(surfaces))],
		},
		RawScore: raw,
	}
}

// score draws a plausible completed scoreline and its raw string form.
func (g *Generator) score() (model.Score, string) {
	setCount := 2
	if g.rng.Float64() >= straightSetsShare {
		setCount = 3
	}

	var s model.Score
	s.Valid = true
	parts := make([]string, 0, setCount)

	for set := 0; set < setCount; set++ {
		// The loser takes the middle set of a three-setter.
		loserTakesSet := setCount == 3 && set == 1

		won, lost := g.setGames()
		if loserTakesSet {
			s.WinnerGames += lost
			s.LoserGames += won
			s.LoserSets++
			parts = append(parts, fmt.Sprintf("%d-%d", lost, won))
			continue
		}
		s.WinnerGames += won
		s.LoserGames += lost
		s.WinnerSets++
		parts = append(parts, fmt.Sprintf("%d-%d", won, lost))
	}

	return s, strings.Join(parts, " ")
}

// setGames draws one set from the winner's perspective: 6-0 through
// 6-4, then 7-5 and 7-6.
func (g *Generator) setGames() (int, int) {
	lost := g.rng.IntN(7)
	won := 6
	if lost >= 5 {
		won = 7
	}
	return won, lost
}
