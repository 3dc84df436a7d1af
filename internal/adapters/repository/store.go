// Package repository defines the rating store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/internal/domain/rating"
)

// DefaultBaseline is the rating assigned to a player on first
// appearance in the match stream.
const DefaultBaseline = 1500.0

// Entry represents a rankings row derived from a snapshot.
type Entry struct {
	Rank      int
	PlayerID  string
	Effective float64
	Baseline  float64
	Current   float64
	Form      float64
	Matches   int
}

// Store provides access to the mutable rating state. It has exactly
// one logical writer — the sequential sweep — so implementations need
// no locking; concurrent use is a caller bug.
type Store interface {
	// Get returns the player's current state, creating it with the
	// default baseline on first appearance. Unknown players are not an
	// error.
	Get(ctx context.Context, playerID string) model.Player

	// Apply mutates both participants of m with the computed update,
	// atomically with respect to that single match: no partial update
	// is observable.
	Apply(ctx context.Context, m model.Match, up rating.Update)

	// Snapshot returns an immutable copy of all players' rating fields
	// as of the given date.
	Snapshot(ctx context.Context, asOf time.Time) model.RatingSnapshot

	// Rankings returns all players ordered by the supplied effective
	// rating, descending, with tie-aware ranks assigned.
	Rankings(ctx context.Context, effective func(model.Player) float64) []Entry

	// Count returns the number of players tracked so far.
	Count(ctx context.Context) int
}
