package intro

import (
	"time"

	"github.com/google/uuid"

	"github.com/scicolab/scico/internal/motion"
)

// Phase is the position of the controller in the sequence.
type Phase int

const (
	PhasePending Phase = iota
	PhaseFalling
	PhaseBouncing
	PhaseSettling
	PhaseMorphed
	PhaseDone
	PhaseStopped
)

var phaseNames = map[Phase]string{
	PhasePending:  "pending",
	PhaseFalling:  "falling",
	PhaseBouncing: "bouncing",
	PhaseSettling: "settling",
	PhaseMorphed:  "morphed",
	PhaseDone:     "done",
	PhaseStopped:  "stopped",
}

func (p Phase) String() string { return phaseNames[p] }

// EventKind names a visible change produced by the controller.
type EventKind string

const (
	EventReveal        EventKind = "reveal"
	EventImpact        EventKind = "impact"
	EventImpactExpired EventKind = "impact_expired"
	EventMorph         EventKind = "morph"
	EventComplete      EventKind = "complete"
)

// Impact is a short-lived radial effect at a landing point.
type Impact struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Intensity float64 `json:"intensity"`
}

// Event is emitted to the observer on every visible change.
type Event struct {
	Kind     EventKind
	At       time.Duration
	Revealed int
	Impact   Impact
}

// Controller plays a Plan on a scheduler. It reveals one letter per landing,
// keeps the live impact effects and fires its completion callback at most
// once.
type Controller struct {
	sched   motion.Scheduler
	plan    Plan
	observe func(Event)
	done    func()

	phase    Phase
	revealed int
	morphed  bool
	impacts  []Impact
	step     motion.Handle
	expiries map[string]motion.Handle
	started  time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver receives every Event.
func WithObserver(fn func(Event)) Option {
	return func(c *Controller) { c.observe = fn }
}

// WithCompletion sets the completion callback.
func WithCompletion(fn func()) Option {
	return func(c *Controller) { c.done = fn }
}

// NewController creates a pending controller.
func NewController(s motion.Scheduler, plan Plan, opts ...Option) *Controller {
	c := &Controller{
		sched:    s,
		plan:     plan,
		observe:  func(Event) {},
		done:     func() {},
		expiries: make(map[string]motion.Handle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Revealed returns how many letters are visible.
func (c *Controller) Revealed() int { return c.revealed }

// Morphed reports whether the ball has turned into the final glyph.
func (c *Controller) Morphed() bool { return c.morphed }

// Impacts returns the live impact effects.
func (c *Controller) Impacts() []Impact {
	out := make([]Impact, len(c.impacts))
	copy(out, c.impacts)
	return out
}

// BallX returns the horizontal slot position the ball is heading to.
func (c *Controller) BallX() float64 {
	switch {
	case c.phase == PhasePending || c.phase == PhaseFalling:
		return 0
	case c.revealed >= len(c.plan.Params.Letters):
		return c.plan.Params.Step() * bounceCount
	default:
		return c.plan.Params.Step() * float64(c.revealed)
	}
}

// Start runs the sequence. With reduced set, all motion is skipped: the whole
// word is revealed at once and completion follows shortly after.
func (c *Controller) Start(reduced bool) {
	if c.phase != PhasePending {
		return
	}
	c.started = c.sched.Now()
	if reduced {
		c.phase = PhaseMorphed
		c.morphed = true
		c.reveal(len(c.plan.Params.Letters))
		c.after(c.plan.Params.ReducedEnter+c.plan.Params.ReducedDelay, c.complete)
		return
	}

	c.phase = PhaseFalling
	c.after(c.plan.FallDuration, func() {
		c.land(0, c.plan.FallIntensity)
		c.phase = PhaseBouncing
		c.bounce(0)
	})
}

// Stop cancels every pending step and impact expiry. Completion is not
// fired after Stop.
func (c *Controller) Stop() {
	if c.phase == PhaseDone || c.phase == PhaseStopped {
		return
	}
	c.sched.Cancel(c.step)
	c.step = 0
	for id, h := range c.expiries {
		c.sched.Cancel(h)
		delete(c.expiries, id)
	}
	c.phase = PhaseStopped
}

func (c *Controller) bounce(i int) {
	b := c.plan.Bounces[i]
	c.after(b.Duration, func() {
		c.land(b.X, b.Intensity)
		if i+1 < len(c.plan.Bounces) {
			c.bounce(i + 1)
			return
		}
		c.phase = PhaseSettling
		c.after(c.plan.Params.SettleDuration, func() {
			c.phase = PhaseMorphed
			c.morphed = true
			c.emit(Event{Kind: EventMorph})
			c.after(c.plan.Params.MorphDelay, c.complete)
		})
	})
}

func (c *Controller) land(x, intensity float64) {
	c.spawnImpact(x, intensity)
	c.reveal(c.revealed + 1)
}

func (c *Controller) reveal(n int) {
	if n > len(c.plan.Params.Letters) {
		n = len(c.plan.Params.Letters)
	}
	c.revealed = n
	c.emit(Event{Kind: EventReveal})
}

func (c *Controller) spawnImpact(x, intensity float64) {
	imp := Impact{ID: uuid.NewString(), X: x, Intensity: clamp(intensity, 0.2, 2)}
	c.impacts = append(c.impacts, imp)
	c.emit(Event{Kind: EventImpact, Impact: imp})

	c.expiries[imp.ID] = c.sched.AfterFunc(c.plan.Params.ImpactLifetime, func() {
		delete(c.expiries, imp.ID)
		for i, e := range c.impacts {
			if e.ID == imp.ID {
				c.impacts = append(c.impacts[:i], c.impacts[i+1:]...)
				break
			}
		}
		c.emit(Event{Kind: EventImpactExpired, Impact: imp})
	})
}

func (c *Controller) complete() {
	if c.phase == PhaseDone || c.phase == PhaseStopped {
		return
	}
	c.phase = PhaseDone
	c.emit(Event{Kind: EventComplete})
	c.done()
}

func (c *Controller) after(d time.Duration, fn func()) {
	c.step = c.sched.AfterFunc(d, func() {
		c.step = 0
		if c.phase == PhaseStopped {
			return
		}
		fn()
	})
}

func (c *Controller) emit(e Event) {
	e.At = c.sched.Now() - c.started
	e.Revealed = c.revealed
	c.observe(e)
}
