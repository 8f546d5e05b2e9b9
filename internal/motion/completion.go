package motion

import (
	"sync"
	"time"
)

// Completion is a caller-side one-shot guard around a completion callback.
// It arms a safety timer that forces completion if nobody fires it first.
// Only the first Fire runs the callback; the safety timer is cancelled as
// soon as that happens.
type Completion struct {
	sched  Scheduler
	safety Handle

	mu    sync.Mutex
	fired bool
	fn    func(forced bool)
}

// NewCompletion arms a safety timer of d on s. fn receives forced=true when
// the safety timer was the path that completed. A non-positive d disables the
// safety timer.
func NewCompletion(s Scheduler, d time.Duration, fn func(forced bool)) *Completion {
	c := &Completion{sched: s, fn: fn}
	if d > 0 {
		c.safety = s.AfterFunc(d, func() { c.fire(true) })
	}
	return c
}

// Fire completes the guard. Calls after the first are no-ops. It reports
// whether this call was the one that completed.
func (c *Completion) Fire() bool {
	return c.fire(false)
}

// Done reports whether completion has happened.
func (c *Completion) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}

// Cancel disarms the safety timer without completing.
func (c *Completion) Cancel() {
	c.mu.Lock()
	h := c.safety
	c.safety = 0
	c.mu.Unlock()
	c.sched.Cancel(h)
}

func (c *Completion) fire(forced bool) bool {
	c.mu.Lock()
	if c.fired {
		c.mu.Unlock()
		return false
	}
	c.fired = true
	h := c.safety
	c.safety = 0
	fn := c.fn
	c.mu.Unlock()

	if !forced {
		c.sched.Cancel(h)
	}
	if fn != nil {
		fn(forced)
	}
	return true
}
