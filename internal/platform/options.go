package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/sift/pkg/core"
)

// options holds the internal configuration for the sift service.
type options struct {
	cache      core.NoteCache
	cachePath  string
	logger     *slog.Logger
	staleAfter time.Duration
	clock      func() time.Time
}

// Option defines a functional option for configuring sift.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service and the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCache injects a custom cache implementation (e.g. a mock).
// If provided, WithCachePath is ignored.
func WithCache(cache core.NoteCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithCachePath enables the SQLite cache at the given path.
// Use ":memory:" for an ephemeral cache. Without this option (and without
// WithCache) the service runs cache-less and every read hits the remote.
func WithCachePath(path string) Option {
	return func(o *options) {
		o.cachePath = path
	}
}

// WithStaleAfter overrides the cache staleness window.
// Zero means the default (5 minutes).
func WithStaleAfter(d time.Duration) Option {
	return func(o *options) {
		o.staleAfter = d
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
