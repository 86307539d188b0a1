// Package debounce delays a call until its trigger has been quiet for a
// fixed interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending call. Each Trigger replaces the
// pending call and restarts the delay, so only the last call in a burst runs.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New returns a Debouncer that waits delay before running a call.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the configured delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn to run after the delay, cancelling any call that is
// still pending. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// a timer that fired while being replaced must not run
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels the pending call and reports whether there was one.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Pending reports whether a call is scheduled and has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
