package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// LoaderState exposes internal state for observability.
type LoaderState struct {
	Path          string        `json:"path"`
	Strict        bool          `json:"strict"`
	Debounce      time.Duration `json:"debounce"`
	WatcherActive bool          `json:"watcher_active"`
	LastReload    *time.Time    `json:"last_reload,omitempty"`
	Reloads       int           `json:"reloads"`
	Failures      int           `json:"failures"`
	LastError     string        `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (l *Loader) State() any {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return LoaderState{
		Path:          l.config.Path,
		Strict:        l.config.Strict,
		Debounce:      l.config.Debounce,
		WatcherActive: l.watcherActive,
		LastReload:    l.lastReload,
		Reloads:       l.reloads,
		Failures:      l.failures,
		LastError:     l.lastError,
	}
}

// ComponentType implements introspection.Component.
func (l *Loader) ComponentType() string {
	return "loader"
}

var _ introspection.Introspectable = (*Loader)(nil)
var _ introspection.Component = (*Loader)(nil)
