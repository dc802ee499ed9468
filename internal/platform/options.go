package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for an idr session.
type options struct {
	logger *slog.Logger
	clock  func() time.Time
	newID  func() string
	config map[string]any
}

// Option defines a functional option for configuring a session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the session and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces time.Now for modification timestamps and progress updates.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithIDGenerator replaces the UUID generator used for modification ids.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithRecentLimit caps the recent files list. Zero means default (10).
func WithRecentLimit(n int) Option {
	return func(o *options) {
		o.config["recent_limit"] = n
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithStrict enables strict payload decoding: unknown fields are rejected and
// component property numbers are kept as json.Number.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithWatchDebounce sets how long the payload watcher waits for a file to settle
// before reloading it.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["watch_debounce"] = d
	}
}

// WithWatcherErrorHandler registers a callback for background reload failures,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
