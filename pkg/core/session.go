package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// DefaultEventBuffer is the per-subscriber channel capacity.
const DefaultEventBuffer = 100

// Config tunes a Session. Zero values fall back to defaults.
type Config struct {
	Logger      *slog.Logger
	Clock       func() time.Time
	NewID       func() string
	RecentLimit int
	EventBuffer int
}

// Session is the single owner of an analysis session: the artifact store, the
// modification journal, the progress record and the recent-files list.
//
// Every mutation runs under one lock, so observers never see a half-applied load or
// edit. Reads may run concurrently.
type Session struct {
	mu sync.RWMutex

	store    *Store
	journal  *Journal
	progress Progress
	recent   []RecentFile

	logger      *slog.Logger
	clock       func() time.Time
	newID       func() string
	recentLimit int
	eventBuffer int

	subs    map[int]*subscriber
	nextSub int
}

type subscriber struct {
	pattern string
	ch      chan Event
}

// NewSession creates an empty session.
func NewSession(cfg Config) *Session {
	s := &Session{
		store:       NewStore(),
		journal:     NewJournal(),
		logger:      cfg.Logger,
		clock:       cfg.Clock,
		newID:       cfg.NewID,
		recentLimit: cfg.RecentLimit,
		eventBuffer: cfg.EventBuffer,
		subs:        make(map[int]*subscriber),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.recentLimit <= 0 {
		s.recentLimit = DefaultRecentLimit
	}
	if s.eventBuffer <= 0 {
		s.eventBuffer = DefaultEventBuffer
	}
	return s
}

// Load validates c and replaces every collection with it. Selections are cleared and
// the journal returns to the baseline. A rejected payload changes nothing.
func (s *Session) Load(c Collections) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(c); err != nil {
		s.logger.Warn("payload rejected", "error", err)
		return fmt.Errorf("load session: %w", err)
	}
	dropped := s.journal.Len()
	s.journal.Reset()

	name := ""
	if c.File != nil {
		name = c.File.Name
	}
	s.logger.Info("payload loaded", "file", name, "units", len(c.Units), "types", len(c.Types),
		"forms", len(c.Forms), "strings", len(c.Strings), "dropped_modifications", dropped)
	s.publish(Event{Type: EventLoad, Value: name})
	return nil
}

// Reset restores the initial empty state. Recent files survive a reset.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = NewStore()
	s.journal.Reset()
	s.progress = Progress{}
	s.logger.Debug("session reset")
	s.publish(Event{Type: EventReset})
}

// Read runs fn with read access to the store. fn must not retain slices or nodes
// beyond the call, nor call back into the session.
func (s *Session) Read(fn func(st *Store)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.store)
}

// Lookup finds an artifact by kind and id.
func (s *Session) Lookup(kind Kind, id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Lookup(kind, id)
}

// Counts returns the size of every collection.
func (s *Session) Counts() map[Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Counts()
}

// File describes the loaded binary, if the payload carried one.
func (s *Session) File() (LoadedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.File()
}

// ClassTree returns the class hierarchy roots.
func (s *Session) ClassTree() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ClassTree()
}

// FilterClasses filters the class hierarchy by name.
func (s *Session) FilterClasses(query string) []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.store.ClassTree(), query)
}

// Select sets the selection of a view slot; an empty id clears it.
func (s *Session) Select(view View, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Select(view, id)
	s.publish(Event{Type: EventSelect, Target: string(view), Value: id})
}

// Selection returns the raw id selected in a view slot.
func (s *Session) Selection(view View) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Selection(view)
}

// Append records m as the newest active modification, discarding any redo branch.
// A missing id or timestamp is filled in.
func (s *Session) Append(m Modification) Modification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(m)
}

func (s *Session) appendLocked(m Modification) Modification {
	if m.ID == "" {
		m.ID = s.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.clock()
	}
	if pruned := s.journal.Append(m); pruned > 0 {
		s.logger.Debug("redo branch discarded", "records", pruned)
	}
	s.publish(Event{Type: EventEdit, Target: m.Target, Value: m.NewValue})
	return m
}

// Undo deactivates the newest active modification. It reports false at the baseline.
func (s *Session) Undo() (Modification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.journal.Undo()
	if !ok {
		return m, false
	}
	value, active := s.journal.EffectiveValueOf(m.Kind, m.Target)
	if !active {
		value = m.OriginalValue
	}
	s.publish(Event{Type: EventUndo, Target: m.Target, Value: value})
	return m, true
}

// Redo reactivates the next modification. It reports false when nothing is undone.
func (s *Session) Redo() (Modification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.journal.Redo()
	if !ok {
		return m, false
	}
	s.publish(Event{Type: EventRedo, Target: m.Target, Value: m.NewValue})
	return m, true
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.CanRedo()
}

// EffectiveValue returns the newest active value recorded for target.
func (s *Session) EffectiveValue(target string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.EffectiveValue(target)
}

// EffectiveValueOf returns the newest active value recorded for target by edits of
// one kind.
func (s *Session) EffectiveValueOf(kind ModificationKind, target string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.EffectiveValueOf(kind, target)
}

// Cursor returns the journal cursor, -1 at the baseline.
func (s *Session) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Cursor()
}

// Dirty reports whether any modification is in effect.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Dirty()
}

// Modifications returns every journal record, including the redo branch.
func (s *Session) Modifications() []Modification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Records()
}

// ActiveModifications returns the records in effect, oldest first.
func (s *Session) ActiveModifications() []Modification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Active()
}

// History returns every journal record together with the cursor, read atomically.
func (s *Session) History() ([]Modification, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Records(), s.journal.Cursor()
}

// Begin marks op as started and returns the callback the external engine reports
// through.
func (s *Session) Begin(op Operation) Reporter {
	s.mu.Lock()
	s.progress = Progress{Active: true, Operation: op, UpdatedAt: s.clock()}
	s.logger.Info("operation started", "operation", op)
	s.publish(Event{Type: EventProgress, Target: string(op), Value: "started"})
	s.mu.Unlock()
	return s.Report
}

// Report records the engine's latest progress. The ratio is clamped to [0, 100].
func (s *Session) Report(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.progress.Active
	s.progress.Active = r.Active
	s.progress.Ratio = clampRatio(r.Ratio)
	s.progress.Message = r.Message
	s.progress.UpdatedAt = s.clock()
	if wasActive && !r.Active {
		s.logger.Info("operation finished", "operation", s.progress.Operation, "message", r.Message)
	} else {
		s.logger.Debug("progress", "operation", s.progress.Operation, "ratio", s.progress.Ratio)
	}
	s.publish(Event{Type: EventProgress, Target: string(s.progress.Operation), Value: r.Message})
}

// Progress returns the last reported progress.
func (s *Session) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// AddRecentFile moves f to the front of the recent list.
func (s *Session) AddRecentFile(f LoadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = pushRecent(s.recent, RecentFile{
		Name:          f.Name,
		Path:          f.Path,
		LastOpened:    s.clock(),
		DelphiVersion: f.DelphiVersion,
	}, s.recentLimit)
}

// RecentFiles returns the recent list, newest first.
func (s *Session) RecentFiles() []RecentFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recent)
}

// Watch streams session events whose target matches pattern. Events without a target
// (loads, resets) reach every subscriber. An empty pattern matches every target.
// Delivery never blocks the session: events are dropped when the buffer is full.
// The channel is closed when ctx is cancelled.
func (s *Session) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	sub := &subscriber{pattern: pattern, ch: make(chan Event, s.eventBuffer)}
	s.subs[id] = sub
	s.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(sub.ch)
		s.mu.Unlock()
		return nil
	})

	return sub.ch, nil
}

// publish fans e out to subscribers. Callers hold s.mu.
func (s *Session) publish(e Event) {
	if len(s.subs) == 0 {
		return
	}
	e.Timestamp = s.clock().Unix()
	for _, sub := range s.subs {
		if e.Target != "" && sub.pattern != "**" {
			if ok, _ := doublestar.Match(sub.pattern, e.Target); !ok {
				continue
			}
		}
		select {
		case sub.ch <- e:
		default:
			s.logger.Debug("event dropped, subscriber buffer full", "type", e.Type, "target", e.Target)
		}
	}
}
