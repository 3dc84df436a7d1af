// Package model contains domain models passed between layers.
package model

import "time"

// Tier classifies the circuit a match belongs to. Rating confidence is
// scaled per tier through the configured weight table.
type Tier string

// Known circuit tiers. The weight table in the configuration may define
// additional sub-tiers without code changes.
const (
	// TierTop is the main tour (WTA).
	TierTop Tier = "top"
	// TierLower is the lower-reliability circuit (ITF).
	TierLower Tier = "lower"
)

// Score holds the structured result of a completed match from the
// winner's perspective. Valid is false when the raw score string could
// not be parsed (walkover, retirement, malformed data); such matches
// are rated with a neutral margin.
type Score struct {
	WinnerGames int
	WinnerSets  int
	LoserGames  int
	LoserSets   int
	Valid       bool
}

// GamesMargin returns the winner's game differential. May be negative:
// a three-set winner can take fewer games overall than the loser.
func (s Score) GamesMargin() int {
	return s.WinnerGames - s.LoserGames
}

// SetsMargin returns the winner's set differential.
func (s Score) SetsMargin() int {
	return s.WinnerSets - s.LoserSets
}

// StraightSets reports whether the winner dropped no set.
func (s Score) StraightSets() bool {
	return s.Valid && s.LoserSets == 0
}

// Match is a single completed match as emitted by the feed. Immutable
// once read; PlayerA is always the winner in the normalized datasets,
// so Winner duplicates PlayerA unless a feed chooses otherwise.
type Match struct {
	Date    time.Time
	PlayerA string
	PlayerB string
	Winner  string
	Score   Score
	Tier    Tier
	Surface string // optional, informational only
}

// WinnerIsA reports whether PlayerA took the match.
func (m Match) WinnerIsA() bool {
	return m.Winner == m.PlayerA
}

// Key returns a stable identity for duplicate suppression across the
// merged source files.
func (m Match) Key() string {
	return m.Date.Format("20060102") + "|" + m.PlayerA + "|" + m.PlayerB
}

// Prediction is the pre-match model output for an evaluation-window
// match, recorded before that match's own rating update.
type Prediction struct {
	Date       time.Time
	PlayerA    string
	PlayerB    string
	ProbA      float64 // model probability that PlayerA wins
	WinnerIsA  bool
	Tier       Tier
	EffectiveA float64
	EffectiveB float64
}
