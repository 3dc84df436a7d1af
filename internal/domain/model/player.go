package model

import "time"

// Player carries the mutable rating state for one competitor. Created
// on first appearance in the match stream and never deleted.
type Player struct {
	ID string

	// Baseline is the slow-moving long-run skill estimate.
	Baseline float64
	// Current is the fast-moving component; equals Baseline until the
	// player's first rated match.
	Current float64
	// Form is a bounded decaying average of recent prediction surprise.
	Form float64

	LastActive time.Time
	Matches    int
}

// RatingSnapshot is an immutable copy of every player's rating fields
// as of a given date, produced on demand for ranking export.
type RatingSnapshot struct {
	Date    time.Time
	Players []Player // copies, detached from the live store
}
