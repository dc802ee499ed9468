package core

import "fmt"

// EventType represents the type of change in a session.
type EventType string

const (
	EventLoad     EventType = "LOAD"
	EventReset    EventType = "RESET"
	EventEdit     EventType = "EDIT"
	EventUndo     EventType = "UNDO"
	EventRedo     EventType = "REDO"
	EventSelect   EventType = "SELECT"
	EventProgress EventType = "PROGRESS"
)

// Event represents a change in a session.
// Target is the modification target for journal events and the view slot for
// selections; it is empty for session-wide events.
type Event struct {
	Type      EventType
	Target    string
	Value     string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	if e.Target == "" {
		return fmt.Sprintf("%s %q", e.Type, e.Value)
	}
	return fmt.Sprintf("%s %s=%q", e.Type, e.Target, e.Value)
}
