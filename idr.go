package idr

import (
	"log/slog"
	"time"

	"github.com/aretw0/idr/internal/platform"
	"github.com/aretw0/idr/pkg/adapters/fs"
	"github.com/aretw0/idr/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Session is the state container of one analysis session.
type Session = core.Session

// Collections is a decompiler payload.
type Collections = core.Collections

// Modification is one journaled edit.
type Modification = core.Modification

// Loader feeds a session from a payload file.
type Loader = fs.Loader

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithLogger sets the logger for the session and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock replaces time.Now for timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithIDGenerator replaces the UUID generator used for modification ids.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithRecentLimit caps the recent files list.
func WithRecentLimit(n int) Option {
	return platform.WithRecentLimit(n)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithStrict enables strict payload decoding.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithWatchDebounce sets the payload watcher's quiet period.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// WithWatcherErrorHandler registers a callback for background reload failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates an empty session.
func New(opts ...Option) *Session {
	return platform.New(opts...)
}

// Open creates a session from a payload file or a directory containing one.
func Open(path string, opts ...Option) (*Session, *Loader, error) {
	return platform.Open(path, opts...)
}

// FindPayload locates the session payload for a file or directory.
func FindPayload(start string) (string, error) {
	return platform.FindPayload(start)
}
