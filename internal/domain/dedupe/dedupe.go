// Package dedupe suppresses duplicate match records. The merged source
// files can repeat a match (notably around qualifying draws published
// in both circuits' exports), and rating the same result twice would
// double-count it.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen match keys so each result is rated at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it
	// if not. Returns true if key was already seen, false if it was
	// newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Size returns the number of keys recorded so far.
	Size() int64
}

// inMemoryDeduper implements Deduper with a plain map. The sweep is a
// single sequential pass, but the mutex keeps the type safe for feeds
// that load source files concurrently.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an unbounded in-memory deduper with
// configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SeenAndRecord atomically checks if key was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Size returns the number of keys recorded so far.
func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
