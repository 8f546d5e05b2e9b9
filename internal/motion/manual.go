package motion

import "time"

// ManualScheduler is a deterministic Scheduler driven by an explicit virtual
// clock. Frame ticks happen every Interval; timers fire at their due time.
// It is used to compile timelines headlessly and in tests.
type ManualScheduler struct {
	interval  time.Duration
	now       time.Duration
	lastFrame time.Duration
	next      Handle
	frames    []frameEntry
	timers    []timerEntry
}

type frameEntry struct {
	handle Handle
	fn     FrameFunc
}

type timerEntry struct {
	handle Handle
	due    time.Duration
	fn     func()
}

// NewManualScheduler creates a ManualScheduler at time zero. A non-positive
// interval selects DefaultFrameInterval.
func NewManualScheduler(interval time.Duration) *ManualScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &ManualScheduler{interval: interval}
}

// Now returns the virtual time.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Interval returns the frame interval.
func (m *ManualScheduler) Interval() time.Duration { return m.interval }

// RequestFrame queues fn for the next frame tick.
func (m *ManualScheduler) RequestFrame(fn FrameFunc) Handle {
	m.next++
	m.frames = append(m.frames, frameEntry{handle: m.next, fn: fn})
	return m.next
}

// AfterFunc queues fn to fire at Now()+d.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.next++
	m.timers = append(m.timers, timerEntry{handle: m.next, due: m.now + d, fn: fn})
	return m.next
}

// Cancel removes a pending frame or timer.
func (m *ManualScheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i, f := range m.frames {
		if f.handle == h {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
	for i, t := range m.timers {
		if t.handle == h {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Pending reports the number of queued frames and timers.
func (m *ManualScheduler) Pending() (frames, timers int) {
	return len(m.frames), len(m.timers)
}

// Advance moves the virtual clock forward by d, running every timer and frame
// tick that falls inside the window in chronological order. Timers due at the
// same instant as a frame tick run first.
func (m *ManualScheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := m.now + d
	for {
		nextFrame := m.lastFrame + m.interval
		due, ok := m.earliestTimer()

		switch {
		case ok && due <= target && due <= nextFrame:
			m.now = due
			m.fireTimersAt(due)
		case nextFrame <= target:
			m.now = nextFrame
			m.lastFrame = nextFrame
			m.fireFrames()
		default:
			m.now = target
			return
		}
	}
}

// Frame advances the clock to the next frame tick and runs it.
func (m *ManualScheduler) Frame() {
	m.Advance(m.lastFrame + m.interval - m.now)
}

// RunUntilIdle advances the clock timer by timer until no timers remain or
// limit has elapsed, ticking frames along the way. It returns the virtual time
// at which it stopped.
func (m *ManualScheduler) RunUntilIdle(limit time.Duration) time.Duration {
	end := m.now + limit
	for {
		due, ok := m.earliestTimer()
		if !ok {
			break
		}
		if due > end {
			m.Advance(end - m.now)
			break
		}
		m.Advance(due - m.now)
	}
	return m.now
}

func (m *ManualScheduler) earliestTimer() (time.Duration, bool) {
	if len(m.timers) == 0 {
		return 0, false
	}
	earliest := m.timers[0].due
	for _, t := range m.timers[1:] {
		if t.due < earliest {
			earliest = t.due
		}
	}
	return earliest, true
}

// fireTimersAt runs the earliest timer due at or before due. Timers are
// popped one at a time so a callback can still cancel its siblings.
func (m *ManualScheduler) fireTimersAt(due time.Duration) {
	idx := -1
	for i, t := range m.timers {
		if t.due > due {
			continue
		}
		if idx < 0 || t.due < m.timers[idx].due || (t.due == m.timers[idx].due && t.handle < m.timers[idx].handle) {
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	t := m.timers[idx]
	m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
	t.fn()
}

func (m *ManualScheduler) fireFrames() {
	batch := m.frames
	m.frames = nil
	for _, f := range batch {
		f.fn(m.now)
	}
}
