// Package gesture distinguishes a scroll from a drag on touch surfaces: a
// touch that stays put through a short long-press window becomes a drag, a
// touch that moves first is a scroll. One recognizer instance serves every
// draggable surface; the host wires callbacks and forwards raw touch events.
package gesture

import (
	"sync"
	"time"
)

type State int

const (
	StateIdle State = iota
	StatePending
	StateDragging
)

const (
	// DefaultLongPress is how long a touch must hold still before it becomes
	// a drag.
	DefaultLongPress = 150 * time.Millisecond
	// DefaultTolerance is the movement allowance (either axis) within the
	// long-press window before the gesture is reinterpreted as a scroll.
	DefaultTolerance = 10
)

type Point struct {
	X, Y int
}

// Callbacks are supplied by the host surface. All are optional.
//
// OnDragMove receives raw coordinates; translating them into a target
// container + index (hit-testing) is the host's job, as is feeding the result
// to the drag preview engine. LockScroll/UnlockScroll bracket the Dragging
// state; UnlockScroll is guaranteed on every transition back to Idle,
// including teardown, even if the touch-end event is lost.
type Callbacks struct {
	OnDragStart func(start Point)
	OnDragMove  func(p Point)
	OnDragEnd   func(cancelled bool)

	LockScroll   func()
	UnlockScroll func()
}

type Config struct {
	LongPress time.Duration
	Tolerance int

	// Schedule overrides timer creation in tests. It must return a cancel
	// function. Nil means time.AfterFunc.
	Schedule func(d time.Duration, fn func()) (cancel func())
}

type Recognizer struct {
	cfg Config
	cb  Callbacks

	mu     sync.Mutex
	state  State
	start  Point
	cancel func()
}

func New(cfg Config, cb Callbacks) *Recognizer {
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Schedule == nil {
		cfg.Schedule = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	return &Recognizer{cfg: cfg, cb: cb}
}

func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// TouchStart arms the long-press window. Drags are strictly exclusive: a
// second touch while one is pending or active is ignored.
func (r *Recognizer) TouchStart(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle {
		return
	}
	r.state = StatePending
	r.start = p
	r.cancel = r.cfg.Schedule(r.cfg.LongPress, r.onLongPress)
}

func (r *Recognizer) onLongPress() {
	r.mu.Lock()
	if r.state != StatePending {
		r.mu.Unlock()
		return
	}
	r.state = StateDragging
	start := r.start
	r.cancel = nil
	r.mu.Unlock()

	if r.cb.LockScroll != nil {
		r.cb.LockScroll()
	}
	if r.cb.OnDragStart != nil {
		r.cb.OnDragStart(start)
	}
}

func (r *Recognizer) TouchMove(p Point) {
	r.mu.Lock()
	switch r.state {
	case StatePending:
		if abs(p.X-r.start.X) > r.cfg.Tolerance || abs(p.Y-r.start.Y) > r.cfg.Tolerance {
			// Movement before the timer fired: this is a scroll.
			r.stopTimerLocked()
			r.state = StateIdle
		}
		r.mu.Unlock()
	case StateDragging:
		r.mu.Unlock()
		if r.cb.OnDragMove != nil {
			r.cb.OnDragMove(p)
		}
	default:
		r.mu.Unlock()
	}
}

// TouchEnd finishes the gesture. A drag in progress ends uncancelled, letting
// the host commit its pending preview.
func (r *Recognizer) TouchEnd() {
	r.finish(false)
}

// TouchCancel ends a drag with cancelled=true so the host discards the
// pending preview instead of committing it.
func (r *Recognizer) TouchCancel() {
	r.finish(true)
}

// Teardown resets the recognizer from any state. It is idempotent and safe
// to call from both normal completion and host unmount paths; an active drag
// is treated as cancelled.
func (r *Recognizer) Teardown() {
	r.finish(true)
}

func (r *Recognizer) finish(cancelled bool) {
	r.mu.Lock()
	prev := r.state
	r.stopTimerLocked()
	r.state = StateIdle
	r.mu.Unlock()

	if prev != StateDragging {
		return
	}
	if r.cb.UnlockScroll != nil {
		r.cb.UnlockScroll()
	}
	if r.cb.OnDragEnd != nil {
		r.cb.OnDragEnd(cancelled)
	}
}

func (r *Recognizer) stopTimerLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
