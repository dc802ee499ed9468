package fs

import (
	"sync"
	"time"
)

// debouncer collapses bursts of calls into one call after a quiet period.
// Editors typically emit several write/rename events for a single save.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait}
}

// add schedules fn, replacing any call still waiting.
func (d *debouncer) add(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()
		fn()
	})
}

// stopAndWait drops the pending call and waits, up to timeout, for a running one.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
