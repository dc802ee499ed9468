package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the session whenever the payload file changes, until ctx is done.
// A payload that fails to decode or validate is reported and the session keeps
// its previous state.
func (l *Loader) Watch(ctx context.Context) error {
	return newWatchWorker(l).Start(ctx)
}

type watchWorker struct {
	*worker.BaseWorker
	loader    *Loader
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(l *Loader) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("payload-watcher"),
		loader:     l,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often save by writing a sibling file and renaming it over the original,
	// which drops a watch on the file itself. Watching the directory survives that.
	if err := watcher.Add(filepath.Dir(w.loader.config.Path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.loader.config.Path), err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.loader.config.Debounce)
	w.loader.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// relevant reports whether a filesystem event touches the payload file.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.loader.config.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// reload runs on the debouncer's timer, outside the event loop. It loads inline so
// stopAndWait covers the whole reload.
func (w *watchWorker) reload(ctx context.Context) {
	defer func() {
		if recovered := recover(); recovered != nil {
			w.loader.reportError(fmt.Errorf("reload panic: %v", recovered))
		}
	}()
	if err := w.loader.Load(ctx); err != nil {
		if ctx.Err() == nil {
			w.loader.reportError(err)
		}
		return
	}
	if w.loader.config.Logger != nil {
		w.loader.config.Logger.Info("payload reloaded", "path", w.loader.config.Path)
	}
}

func (w *watchWorker) handleWatcherError(err error) {
	if w.loader.config.Logger != nil {
		w.loader.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.loader.config.ErrorHandler != nil {
		w.loader.config.ErrorHandler(err)
	}
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			logger := w.loader.config.Logger
			if logger == nil {
				return
			}
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.loader.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Pending reloads must not outlive the worker.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.loader.config.Logger != nil {
				w.loader.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			}
			if !w.relevant(event) {
				continue
			}
			w.debouncer.add(func() { w.reload(ctx) })

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
