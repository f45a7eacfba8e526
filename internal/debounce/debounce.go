// Package debounce provides a trailing-edge debouncer over an injectable clock.
package debounce

import (
	"sync"
	"time"
)

// Timer is a pending call that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred calls.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is backed by time.AfterFunc.
var RealClock Clock = realClock{}

// Debouncer runs the latest scheduled call once wait has elapsed without a
// newer call. A newer call cancels the pending one.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	wait    time.Duration
	pending Timer
	seq     uint64
}

// New creates a Debouncer. A nil clock selects RealClock.
func New(wait time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer{clock: clock, wait: wait}
}

// Call schedules f, replacing any call still pending.
func (d *Debouncer) Call(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// a timer that fired while being replaced must not run
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		f()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.seq++
}

// Wrap returns a function that debounces calls to f with the given argument.
func Wrap[T any](d *Debouncer, f func(T)) func(T) {
	return func(v T) {
		d.Call(func() { f(v) })
	}
}
