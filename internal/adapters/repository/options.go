// Package repository defines the rating store interface and errors.
package repository

import "github.com/okian/topspin/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithPlayerHint pre-sizes the player map for an expected population.
func WithPlayerHint(hint int) Option {
	return func(s *MemStore) {
		if hint > 0 {
			s.players = make(map[string]*model.Player, hint)
			s.order = make([]string, 0, hint)
		}
	}
}
