package reactive

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once input has been
// quiet for the configured delay.
//
// The timer fires on its own goroutine. When a dispatch function is given the
// pending call is handed to it, which lets an owner run the call on its own
// event loop; the call is dropped there if a newer Trigger or a Cancel
// happened in between.
type Debouncer struct {
	delay    time.Duration
	dispatch func(func())

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A nil dispatch runs calls on the timer
// goroutine.
func NewDebouncer(delay time.Duration, dispatch func(func())) *Debouncer {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Debouncer{delay: delay, dispatch: dispatch}
}

// Delay returns the quiescence window
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger restarts the window and replaces the pending call with fn
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.dispatch(func() {
			if d.isCurrent(gen) {
				fn()
			}
		})
	})
}

// Cancel discards the pending call, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending call and ignores every later Trigger
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) isCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && gen == d.gen
}
