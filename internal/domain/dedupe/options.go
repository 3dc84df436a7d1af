package dedupe

// Option applies a configuration option to the inMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithSizeHint pre-sizes the seen map for an expected match count.
func WithSizeHint(hint int) Option {
	return func(d *inMemoryDeduper) {
		if hint > 0 {
			d.seen = make(map[string]struct{}, hint)
		}
	}
}
