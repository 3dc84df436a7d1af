package repository

import (
	"context"
	"sort"
	"time"

	"github.com/okian/topspin/internal/domain/model"
	"github.com/okian/topspin/internal/domain/rating"
	"github.com/okian/topspin/pkg/metrics"
)

// MemStore is the in-memory Store used by the batch sweep. Players are
// created on first lookup and persist for the run's lifetime.
type MemStore struct {
	players map[string]*model.Player
	order   []string // first-appearance order, for deterministic iteration
}

// NewMemStore constructs an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		players: make(map[string]*model.Player),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the player's current state, registering a fresh player
// at the default baseline on first appearance.
func (s *MemStore) Get(ctx context.Context, playerID string) model.Player {
	return *s.lookup(playerID)
}

func (s *MemStore) lookup(playerID string) *model.Player {
	if p, ok := s.players[playerID]; ok {
		return p
	}
	p := &model.Player{
		ID:       playerID,
		Baseline: DefaultBaseline,
		Current:  DefaultBaseline,
	}
	s.players[playerID] = p
	s.order = append(s.order, playerID)
	metrics.UpdatePlayersTracked(len(s.players))
	return p
}

// Apply mutates both participants with the match's update. The current
// rating absorbs the full delta; the baseline receives its slow drip;
// form and last-active advance to the match date.
func (s *MemStore) Apply(ctx context.Context, m model.Match, up rating.Update) {
	a := s.lookup(m.PlayerA)
	b := s.lookup(m.PlayerB)

	a.Current += up.DeltaA
	a.Baseline += up.BaselineDeltaA
	a.Form = up.FormA
	a.LastActive = m.Date
	a.Matches++

	b.Current += up.DeltaB
	b.Baseline += up.BaselineDeltaB
	b.Form = up.FormB
	b.LastActive = m.Date
	b.Matches++
}

// Snapshot returns a detached copy of every player's rating fields,
// in first-appearance order.
func (s *MemStore) Snapshot(ctx context.Context, asOf time.Time) model.RatingSnapshot {
	players := make([]model.Player, 0, len(s.order))
	for _, id := range s.order {
		players = append(players, *s.players[id])
	}
	return model.RatingSnapshot{Date: asOf, Players: players}
}

// Rankings returns all players ordered by effective rating descending,
// player ID ascending on ties, with tie-aware ranks assigned.
func (s *MemStore) Rankings(ctx context.Context, effective func(model.Player) float64) []Entry {
	entries := make([]Entry, 0, len(s.players))
	for _, id := range s.order {
		p := s.players[id]
		entries = append(entries, Entry{
			PlayerID:  p.ID,
			Effective: effective(*p),
			Baseline:  p.Baseline,
			Current:   p.Current,
			Form:      p.Form,
			Matches:   p.Matches,
		})
	}

	sortEntries(entries)
	assignRanksWithTies(entries)
	return entries
}

// Count returns the number of players tracked so far.
func (s *MemStore) Count(ctx context.Context) int {
	return len(s.players)
}

// sortEntries orders by effective rating descending with player ID
// ascending as the deterministic tie-breaker.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Effective != entries[j].Effective {
			return entries[i].Effective > entries[j].Effective
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}

// assignRanksWithTies assigns ranks where players with the same
// effective rating share a rank and the next distinct rating takes the
// following consecutive rank.
func assignRanksWithTies(entries []Entry) {
	currentRank := 0
	for i := range entries {
		if i == 0 || entries[i].Effective != entries[i-1].Effective {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}
