// Package fs loads decompiler session payloads from disk, keeps a session in sync
// with its payload file, and exports modification journals.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/idr/pkg/adapters/payload"
	"github.com/aretw0/idr/pkg/core"
)

// DefaultDebounce is the quiet period the watcher waits for before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ErrNotRegularFile is returned when the payload path is a directory or device.
var ErrNotRegularFile = errors.New("payload path is not a regular file")

// Config holds the configuration for the filesystem loader.
type Config struct {
	Path         string
	Strict       bool
	Logger       *slog.Logger
	Debounce     time.Duration
	ErrorHandler func(error) // Optional: called on background reload failures
}

// Loader feeds a session from a payload file.
type Loader struct {
	config  Config
	session *core.Session

	mu            sync.RWMutex
	watcherActive bool
	lastReload    *time.Time
	reloads       int
	failures      int
	lastError     string
}

// NewLoader creates a loader for config.Path.
func NewLoader(session *core.Session, config Config) *Loader {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if abs, err := filepath.Abs(config.Path); err == nil {
		config.Path = abs
	}
	return &Loader{config: config, session: session}
}

// Path is the absolute payload path.
func (l *Loader) Path() string { return l.config.Path }

// ReadPayload decodes a payload file with the serializer matching its extension.
// The payload is not validated.
func ReadPayload(path string, strict bool) (core.Collections, error) {
	s, err := payload.ForPath(path, strict)
	if err != nil {
		return core.Collections{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return core.Collections{}, fmt.Errorf("failed to stat payload: %w", err)
	}
	if !info.Mode().IsRegular() {
		return core.Collections{}, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Collections{}, fmt.Errorf("failed to read payload: %w", err)
	}
	c, err := s.Decode(bytes.NewReader(data))
	if err != nil {
		return core.Collections{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Load reads the payload file into the session and records it as recently opened.
// On failure the session keeps its previous state.
func (l *Loader) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := ReadPayload(l.config.Path, l.config.Strict)
	if err == nil {
		err = l.session.Load(c)
	}
	l.record(err)
	if err != nil {
		return err
	}

	file := core.LoadedFile{Name: filepath.Base(l.config.Path), Path: l.config.Path}
	if c.File != nil {
		file = *c.File
	}
	l.session.AddRecentFile(file)
	if l.config.Logger != nil {
		l.config.Logger.Debug("payload file loaded", "path", l.config.Path)
	}
	return nil
}

func (l *Loader) record(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.failures++
		l.lastError = err.Error()
		return
	}
	now := time.Now()
	l.lastReload = &now
	l.reloads++
	l.lastError = ""
}

func (l *Loader) setWatcherActive(active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watcherActive = active
}

func (l *Loader) reportError(err error) {
	if l.config.Logger != nil {
		l.config.Logger.Warn("reload failed, keeping previous session", "path", l.config.Path, "error", err)
	}
	if l.config.ErrorHandler != nil {
		l.config.ErrorHandler(err)
	}
}
