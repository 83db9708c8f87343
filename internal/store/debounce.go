package store

import (
	"log"
	"sync"
	"time"
)

const defaultSaveDebounce = 300 * time.Millisecond

// DebouncedSaver coalesces rapid successive snapshot writes into one write
// after a quiet period. Flush bypasses the debounce and must be called before
// the process exits so the last burst of edits isn't lost.
//
// Write failures are logged and swallowed: persistence is best-effort from
// the caller's perspective, and a full disk should degrade to in-memory
// operation for the session, not crash the planner.
type DebouncedSaver struct {
	store    Store
	debounce time.Duration
	logf     func(format string, args ...any)

	mu      sync.Mutex
	timer   *time.Timer
	pending *DB
	closed  bool
}

func NewDebouncedSaver(s Store, debounce time.Duration) *DebouncedSaver {
	if debounce <= 0 {
		debounce = defaultSaveDebounce
	}
	return &DebouncedSaver{
		store:    s,
		debounce: debounce,
		logf:     log.Printf,
	}
}

// Notify records db as the latest state and (re)starts the quiet-period
// timer. The snapshot is cloned immediately so later mutations by the caller
// don't leak into a write already scheduled.
func (d *DebouncedSaver) Notify(db *DB) {
	if d == nil || db == nil {
		return
	}
	snap := db.Clone()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = snap
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		return
	}
	d.timer.Reset(d.debounce)
}

func (d *DebouncedSaver) onTimer() {
	d.mu.Lock()
	snap := d.pending
	d.pending = nil
	d.mu.Unlock()

	if snap == nil {
		return
	}
	if err := d.store.Save(snap); err != nil {
		d.logf("tempo: snapshot write failed: %v", err)
	}
}

// Flush writes any pending state immediately. Safe to call at any time,
// including after Close.
func (d *DebouncedSaver) Flush() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	snap := d.pending
	d.pending = nil
	d.mu.Unlock()

	if snap == nil {
		return
	}
	if err := d.store.Save(snap); err != nil {
		d.logf("tempo: snapshot write failed: %v", err)
	}
}

// Close flushes and stops the saver. Further Notify calls are ignored, so the
// teardown path can't resurrect a stale timer.
func (d *DebouncedSaver) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.Flush()
}
