package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/idr/pkg/core"
)

type sessionSource struct {
	session *core.Session
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the events of a session whose
// target matches pattern. The subscription is opened by Start and lives as long as
// the context passed to it.
func NewSource(session *core.Session, pattern string) lifecycle.Source {
	return &sessionSource{
		session: session,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *sessionSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *sessionSource) Start(ctx context.Context) error {
	events, err := s.session.Watch(ctx, s.pattern)
	if err != nil {
		return fmt.Errorf("watch session: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event has String(), which is all lifecycle.Event asks for.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
