package core

import (
	"github.com/aretw0/introspection"
)

// SessionState exposes internal state for observability.
type SessionState struct {
	File          string       `json:"file,omitempty"`
	Counts        map[Kind]int `json:"counts"`
	Modifications int          `json:"modifications"`
	Cursor        int          `json:"cursor"`
	Dirty         bool         `json:"dirty"`
	Progress      Progress     `json:"progress"`
	Subscribers   int          `json:"subscribers"`
	RecentFiles   int          `json:"recent_files"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := SessionState{
		Counts:        s.store.Counts(),
		Modifications: s.journal.Len(),
		Cursor:        s.journal.Cursor(),
		Dirty:         s.journal.Dirty(),
		Progress:      s.progress,
		Subscribers:   len(s.subs),
		RecentFiles:   len(s.recent),
	}
	if f, ok := s.store.File(); ok {
		state.File = f.Name
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
