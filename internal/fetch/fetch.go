// Package fetch holds the per-domain fetchers. Each fetcher queries one
// upstream across a fixed parameter grid, normalizes the raw results into the
// model records, and degrades to fixed sample data (or an empty collection)
// when its upstream is unavailable. A failed individual request never aborts
// the rest of a fetch.
package fetch

import "time"

// Option configures a fetcher.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Date windows and foundAt timestamps
// derive from it, so tests pin it to a fixed instant.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
