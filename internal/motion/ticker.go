package motion

import (
	"sync"
	"time"
)

// TickerScheduler is a real-clock Scheduler. A single loop goroutine owns
// every callback: frame requests run on each tick of a time.Ticker and timers
// are forwarded into the loop when they expire.
type TickerScheduler struct {
	start    time.Time
	interval time.Duration

	mu     sync.Mutex
	next   Handle
	frames []frameEntry
	timers map[Handle]*time.Timer
	ready  []readyTimer
	closed bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

type readyTimer struct {
	handle Handle
	fn     func()
}

// NewTickerScheduler starts the loop goroutine. Close must be called to stop
// it. A non-positive interval selects DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	s := &TickerScheduler{
		start:    time.Now(),
		interval: interval,
		timers:   make(map[Handle]*time.Timer),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

// Now returns the time since the scheduler was created.
func (s *TickerScheduler) Now() time.Duration { return time.Since(s.start) }

// RequestFrame queues fn for the next tick.
func (s *TickerScheduler) RequestFrame(fn FrameFunc) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.next++
	s.frames = append(s.frames, frameEntry{handle: s.next, fn: fn})
	return s.next
}

// AfterFunc arranges for fn to run on the loop goroutine after d.
func (s *TickerScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.next++
	h := s.next
	if d <= 0 {
		s.ready = append(s.ready, readyTimer{handle: h, fn: fn})
		s.signal()
		return h
	}
	s.timers[h] = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.timers[h]; !ok {
			return
		}
		delete(s.timers, h)
		s.ready = append(s.ready, readyTimer{handle: h, fn: fn})
		s.signal()
	})
	return h
}

// Cancel drops a pending frame or timer, including a timer that has expired
// but not yet run on the loop.
func (s *TickerScheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
		return
	}
	for i, f := range s.frames {
		if f.handle == h {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
	for i, r := range s.ready {
		if r.handle == h {
			s.ready = append(s.ready[:i], s.ready[i+1:]...)
			return
		}
	}
}

// Close stops the loop and drops every pending callback. It blocks until the
// loop goroutine has exited and is safe to call more than once. Close must
// not be called from a scheduler callback.
func (s *TickerScheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for h, t := range s.timers {
		t.Stop()
		delete(s.timers, h)
	}
	s.frames = nil
	s.ready = nil
	close(s.done)
	s.mu.Unlock()
	s.wg.Wait()
}

// signal wakes the loop. Caller holds mu.
func (s *TickerScheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *TickerScheduler) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
			s.runReady()
		case <-ticker.C:
			s.runReady()
			s.runFrames()
		}
	}
}

func (s *TickerScheduler) runReady() {
	for {
		s.mu.Lock()
		if s.closed || len(s.ready) == 0 {
			s.mu.Unlock()
			return
		}
		r := s.ready[0]
		s.ready = s.ready[1:]
		s.mu.Unlock()
		r.fn()
	}
}

func (s *TickerScheduler) runFrames() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	batch := s.frames
	s.frames = nil
	s.mu.Unlock()

	now := s.Now()
	for _, f := range batch {
		f.fn(now)
	}
}
