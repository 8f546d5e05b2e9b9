package carousel

import (
	"time"

	"github.com/scicolab/scico/internal/motion"
)

// Config tunes a Driver.
type Config struct {
	Images         int
	Period         time.Duration
	BaseRadius     float64
	FrontThreshold float64
	// Width is the measured container width; zero selects FallbackWidth.
	Width float64
}

func (c Config) withDefaults() Config {
	if c.Period <= 0 {
		c.Period = DefaultPeriod
	}
	if c.BaseRadius <= 0 {
		c.BaseRadius = DefaultBaseRadius
	}
	if c.FrontThreshold <= 0 {
		c.FrontThreshold = DefaultFrontThreshold
	}
	return c
}

// ApplyFunc receives the layout after every change.
type ApplyFunc func(angle float64, items []Item)

// Driver rotates the ring on a scheduler. The angle stays at zero until every
// image has reported a load; reduced motion freezes the ring at zero.
type Driver struct {
	sched motion.Scheduler
	cfg   Config
	count int
	apply ApplyFunc

	loaded    int
	reduced   bool
	running   bool
	origin    time.Duration
	hasOrigin bool
	angle     float64
	frame     motion.Handle
	unsubs    []func()
}

// NewDriver creates an idle driver.
func NewDriver(s motion.Scheduler, cfg Config, apply ApplyFunc) *Driver {
	if apply == nil {
		apply = func(float64, []Item) {}
	}
	cfg = cfg.withDefaults()
	return &Driver{sched: s, cfg: cfg, count: Count(cfg.Images), apply: apply}
}

// Count returns the number of ring slots.
func (d *Driver) Count() int { return d.count }

// Angle returns the current ring angle in radians.
func (d *Driver) Angle() float64 { return d.angle }

// Ready reports whether every image has loaded.
func (d *Driver) Ready() bool { return d.loaded >= d.count }

// Items returns the layout at the current angle.
func (d *Driver) Items() []Item {
	return Layout(d.angle, d.count, Radius(d.cfg.Width, d.cfg.BaseRadius), d.cfg.FrontThreshold)
}

// Attach follows the reduced-motion and resize signals until Stop.
func (d *Driver) Attach(sig *motion.Signals) {
	d.unsubs = append(d.unsubs,
		sig.Reduced.Subscribe(d.SetReducedMotion),
		sig.Resize.Subscribe(func(sz motion.Size) {
			d.cfg.Width = sz.W
			d.render()
		}),
	)
}

// Start renders the initial layout and begins rotating once ready.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.render()
	d.sync()
}

// ImageLoaded records one image load. Loads beyond the slot count are
// ignored.
func (d *Driver) ImageLoaded() {
	if d.loaded < d.count {
		d.loaded++
	}
	d.sync()
}

// SetReducedMotion switches between the animated and the static ring.
func (d *Driver) SetReducedMotion(v bool) {
	if d.reduced == v {
		return
	}
	d.reduced = v
	if v {
		d.halt()
		d.angle = 0
		d.render()
		return
	}
	d.sync()
}

// Stop cancels the pending frame, resets the origin and drops signal
// subscriptions.
func (d *Driver) Stop() {
	d.running = false
	d.halt()
	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = nil
}

func (d *Driver) sync() {
	if !d.running || d.reduced || !d.Ready() || d.frame != 0 {
		return
	}
	d.frame = d.sched.RequestFrame(d.step)
}

func (d *Driver) halt() {
	d.sched.Cancel(d.frame)
	d.frame = 0
	d.hasOrigin = false
}

func (d *Driver) step(now time.Duration) {
	d.frame = 0
	if !d.hasOrigin {
		d.origin = now
		d.hasOrigin = true
	}
	d.angle = Angle(now-d.origin, d.cfg.Period)
	d.render()
	d.frame = d.sched.RequestFrame(d.step)
}

func (d *Driver) render() {
	d.apply(d.angle, d.Items())
}
