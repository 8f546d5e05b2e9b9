// Package marquee drives horizontally looping tracks. Each track renders its
// content twice back to back and translates the strip by a periodic offset
// bounded to one copy's width, pausing while the pointer hovers it.
package marquee

import (
	"time"

	"github.com/scicolab/scico/internal/motion"
)

// State is the run state of a Driver.
type State int

const (
	// Idle means the driver has not been started or has been stopped.
	Idle State = iota
	// Running means a frame is scheduled and the offset advances.
	Running
	// Paused means the offset is frozen until the pointer leaves.
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Config describes one track.
type Config struct {
	// Period is the time for the strip to travel one copy's width.
	Period time.Duration
	// ItemWidth is the width of one item including its gap.
	ItemWidth float64
	// Items is the number of distinct items in one copy.
	Items int
	// Direction selects the travel sign.
	Direction motion.Direction
	// PauseOnHover enables the pointer-driven pause.
	PauseOnHover bool
}

// Length is the width of one copy of the content: the offset bound.
func (c Config) Length() float64 {
	return c.ItemWidth * float64(c.Items)
}

// StripWidth is the rendered width of the doubled strip.
func (c Config) StripWidth() float64 {
	return 2 * c.Length()
}

// ApplyFunc writes an offset to the visual transform.
type ApplyFunc func(offset float64)

// Driver is the marquee state machine. Its fields are the whole state:
// origin is the frame timestamp at which the phase was zero, frozen holds the
// phase captured on pause.
type Driver struct {
	sched motion.Scheduler
	cfg   Config
	apply ApplyFunc

	state     State
	origin    time.Duration
	hasOrigin bool
	lastFrame time.Duration
	frozen    time.Duration
	offset    float64
	frame     motion.Handle
}

// New creates an idle driver.
func New(s motion.Scheduler, cfg Config, apply ApplyFunc) *Driver {
	if apply == nil {
		apply = func(float64) {}
	}
	return &Driver{sched: s, cfg: cfg, apply: apply}
}

// Config returns the track configuration.
func (d *Driver) Config() Config { return d.cfg }

// State returns the current run state.
func (d *Driver) State() State { return d.state }

// Offset returns the last applied offset.
func (d *Driver) Offset() float64 { return d.offset }

// Start begins running. The phase origin is taken from the first frame.
func (d *Driver) Start() {
	if d.state != Idle {
		return
	}
	d.state = Running
	d.hasOrigin = false
	d.schedule()
}

// PointerEnter pauses a running hover-enabled track, freezing its phase.
func (d *Driver) PointerEnter() {
	if !d.cfg.PauseOnHover || d.state != Running {
		return
	}
	d.sched.Cancel(d.frame)
	d.frame = 0
	if d.hasOrigin {
		d.frozen = motion.Phase(d.lastFrame-d.origin, d.cfg.Period)
	}
	d.state = Paused
}

// PointerLeave resumes a paused track. The origin is rebased so the next
// frame reproduces the frozen phase exactly.
func (d *Driver) PointerLeave() {
	if d.state != Paused {
		return
	}
	if d.hasOrigin {
		d.origin = d.sched.Now() - d.frozen
		d.lastFrame = d.sched.Now()
	}
	d.state = Running
	d.schedule()
}

// Stop cancels any scheduled frame and returns to Idle. It is safe to call
// more than once.
func (d *Driver) Stop() {
	d.sched.Cancel(d.frame)
	d.frame = 0
	d.state = Idle
	d.hasOrigin = false
	d.frozen = 0
}

// OffsetAt returns the offset the driver would apply at the given frame
// timestamp without mutating state.
func (d *Driver) OffsetAt(now time.Duration) float64 {
	if !d.hasOrigin {
		return 0
	}
	return motion.Offset(now-d.origin, d.cfg.Period, d.cfg.Length(), d.cfg.Direction)
}

func (d *Driver) schedule() {
	d.frame = d.sched.RequestFrame(d.tick)
}

func (d *Driver) tick(now time.Duration) {
	d.frame = 0
	if d.state != Running {
		return
	}
	if !d.hasOrigin {
		d.origin = now
		d.hasOrigin = true
	}
	d.lastFrame = now
	d.offset = motion.Offset(now-d.origin, d.cfg.Period, d.cfg.Length(), d.cfg.Direction)
	d.apply(d.offset)
	d.schedule()
}
