package platform

import (
	"context"
	"time"

	"github.com/aretw0/idr/pkg/adapters/fs"
	"github.com/aretw0/idr/pkg/core"
)

// New creates an empty session.
//
//	session := idr.New(idr.WithLogger(logger))
func New(opts ...Option) *core.Session {
	return newSession(apply(opts))
}

func newSession(o *options) *core.Session {
	recentLimit, _ := o.config["recent_limit"].(int)
	eventBuffer, _ := o.config["event_buffer"].(int)
	return core.NewSession(core.Config{
		Logger:      o.logger,
		Clock:       o.clock,
		NewID:       o.newID,
		RecentLimit: recentLimit,
		EventBuffer: eventBuffer,
	})
}

// Open creates a session and loads the payload found at path (a file, or a
// directory searched with FindPayload). The returned loader can watch the file.
func Open(path string, opts ...Option) (*core.Session, *fs.Loader, error) {
	o := apply(opts)

	resolved, err := FindPayload(path)
	if err != nil {
		return nil, nil, err
	}

	strict, _ := o.config["strict"].(bool)
	debounce, _ := o.config["watch_debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	session := newSession(o)
	loader := fs.NewLoader(session, fs.Config{
		Path:         resolved,
		Strict:       strict,
		Logger:       o.logger,
		Debounce:     debounce,
		ErrorHandler: errorHandler,
	})
	if err := loader.Load(context.Background()); err != nil {
		return nil, nil, err
	}
	return session, loader, nil
}
