package motion

import "sync"

// Point is a pointer position in viewport pixels.
type Point struct {
	X, Y float64
}

// Size is a viewport size in pixels.
type Size struct {
	W, H float64
}

// Signals is the hub for viewer-level inputs: pointer movement, viewport
// resize, document visibility and the reduced-motion preference. Publishers
// may run on any goroutine; deliveries are posted to the scheduler so every
// subscriber runs on the driver thread.
//
// A new subscriber receives the latest value of a topic, if one has been
// published, on the next scheduler turn.
type Signals struct {
	sched Scheduler

	Pointer    *Topic[Point]
	Resize     *Topic[Size]
	Visibility *Topic[bool]
	Reduced    *Topic[bool]
}

// NewSignals creates a hub delivering through s. The document starts
// visible and without a reduced-motion preference.
func NewSignals(s Scheduler) *Signals {
	sig := &Signals{
		sched:      s,
		Pointer:    newTopic[Point](s),
		Resize:     newTopic[Size](s),
		Visibility: newTopic[bool](s),
		Reduced:    newTopic[bool](s),
	}
	sig.Visibility.set(true)
	sig.Reduced.set(false)
	return sig
}

// MovePointer publishes a pointer position.
func (s *Signals) MovePointer(x, y float64) { s.Pointer.Publish(Point{X: x, Y: y}) }

// ResizeViewport publishes a viewport size.
func (s *Signals) ResizeViewport(w, h float64) { s.Resize.Publish(Size{W: w, H: h}) }

// SetVisible publishes the document visibility.
func (s *Signals) SetVisible(v bool) { s.Visibility.Publish(v) }

// SetReducedMotion publishes the reduced-motion preference.
func (s *Signals) SetReducedMotion(v bool) { s.Reduced.Publish(v) }

// Topic is a single signal stream with last-value replay.
type Topic[T any] struct {
	sched Scheduler

	mu      sync.Mutex
	nextID  int
	subs    map[int]func(T)
	current T
	has     bool
}

func newTopic[T any](s Scheduler) *Topic[T] {
	return &Topic[T]{sched: s, subs: make(map[int]func(T))}
}

// Current returns the latest published value and whether one exists.
func (t *Topic[T]) Current() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.has
}

// Publish records v and delivers it to every current subscriber.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	t.current, t.has = v, true
	ids := make([]int, 0, len(t.subs))
	for id := range t.subs {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	for _, id := range ids {
		t.deliver(id, v)
	}
}

// Subscribe registers fn and returns a func that removes it. The returned
// func is idempotent; after it returns no further deliveries reach fn, even
// ones already posted.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.subs[id] = fn
	v, has := t.current, t.has
	t.mu.Unlock()

	if has {
		t.deliver(id, v)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// Subscribers reports how many subscribers are registered.
func (t *Topic[T]) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

func (t *Topic[T]) set(v T) {
	t.current, t.has = v, true
}

func (t *Topic[T]) deliver(id int, v T) {
	Post(t.sched, func() {
		t.mu.Lock()
		fn, ok := t.subs[id]
		t.mu.Unlock()
		if ok {
			fn(v)
		}
	})
}
