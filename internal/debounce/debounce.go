// Package debounce delays a callback until calls to it stop arriving.
package debounce

import (
	"sync"
	"time"
)

// Timer is the cancellable handle returned by Clock.AfterFunc
type Timer interface {
	Stop() bool
}

// Clock schedules delayed work
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules on the runtime timer
type SystemClock struct{}

// AfterFunc wraps time.AfterFunc
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs at most one pending callback, rescheduled on every Trigger.
// A cancelled or superseded callback never runs, even if its timer already fired.
type Debouncer struct {
	delay time.Duration
	clock Clock

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// New creates a Debouncer; a nil clock uses the system clock
func New(delay time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{delay: delay, clock: clock}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger cancels any pending callback and schedules fn after the quiet period
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.gen++
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending callback, if any; it reports whether one was pending
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.timer != nil
	d.stopLocked()
	return pending
}

// Pending reports whether a callback is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
