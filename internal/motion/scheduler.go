// Package motion provides the time-driven primitives shared by every animated
// component of the site: a frame scheduler abstraction, browser-style signals,
// a one-shot completion guard and the periodic-scroll offset function.
//
// Drivers built on top of this package own their state exclusively. All
// callbacks registered with one Scheduler run on a single logical thread, so
// drivers never need locks around their own fields.
package motion

import "time"

// Handle identifies a pending frame request or timer. The zero Handle never
// refers to a pending callback, so cancelling it is always a no-op.
type Handle uint64

// FrameFunc is invoked on the next display refresh with the scheduler's
// current timestamp.
type FrameFunc func(now time.Duration)

// Scheduler is the only source of time for drivers. It models the two
// scheduling primitives of a browser: "run on next refresh" and "run after
// N milliseconds".
type Scheduler interface {
	// Now returns the monotonic time elapsed since the scheduler started.
	Now() time.Duration

	// RequestFrame schedules fn for the next frame tick.
	RequestFrame(fn FrameFunc) Handle

	// AfterFunc schedules fn to run once d has elapsed. A non-positive d
	// runs fn on the next turn of the scheduler, never synchronously.
	AfterFunc(d time.Duration, fn func()) Handle

	// Cancel drops a pending frame or timer. Cancelling an already fired or
	// unknown handle is a no-op.
	Cancel(h Handle)
}

// Post runs fn on the scheduler's thread as soon as possible.
func Post(s Scheduler, fn func()) Handle {
	return s.AfterFunc(0, fn)
}

// DefaultFrameInterval approximates a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond
