package particles

import (
	"time"

	"github.com/scicolab/scico/internal/motion"
)

// Driver runs a Field on a scheduler and keeps it in step with the viewer
// signals: pointer moves steer the field, a resize regenerates it, a hidden
// document stops the loop and reduced motion renders a single static frame.
type Driver struct {
	sched  motion.Scheduler
	field  *Field
	canvas Canvas

	running bool
	visible bool
	reduced bool
	frame   motion.Handle
	unsubs  []func()
	frames  int
}

// NewDriver creates a stopped driver for field drawing onto canvas.
func NewDriver(s motion.Scheduler, field *Field, canvas Canvas) *Driver {
	return &Driver{sched: s, field: field, canvas: canvas, visible: true}
}

// Field returns the simulated field.
func (d *Driver) Field() *Field { return d.field }

// Frames returns the number of rendered frames.
func (d *Driver) Frames() int { return d.frames }

// Running reports whether a frame is scheduled.
func (d *Driver) Running() bool { return d.frame != 0 }

// Start sizes the field and subscribes to sig. Signal values already
// published are replayed on the next scheduler turn.
func (d *Driver) Start(sig *motion.Signals, w, h float64) {
	if d.running {
		return
	}
	d.running = true
	if vis, ok := sig.Visibility.Current(); ok {
		d.visible = vis
	}
	if red, ok := sig.Reduced.Current(); ok {
		d.reduced = red
	}
	d.field.Reset(w, h)

	d.unsubs = append(d.unsubs,
		sig.Pointer.Subscribe(func(p motion.Point) { d.field.Pointer = p }),
		sig.Resize.Subscribe(d.resize),
		sig.Visibility.Subscribe(d.setVisible),
		sig.Reduced.Subscribe(d.setReduced),
	)
	d.kick()
}

// Stop cancels the frame and drops every subscription. It is idempotent.
func (d *Driver) Stop() {
	d.running = false
	d.cancel()
	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = nil
}

func (d *Driver) resize(sz motion.Size) {
	if sz.W == d.field.W && sz.H == d.field.H {
		return
	}
	d.cancel()
	d.field.Reset(sz.W, sz.H)
	d.kick()
}

func (d *Driver) setVisible(v bool) {
	if d.visible == v {
		return
	}
	d.visible = v
	if !v {
		d.cancel()
		return
	}
	d.kick()
}

func (d *Driver) setReduced(v bool) {
	if d.reduced == v {
		return
	}
	d.reduced = v
	d.cancel()
	d.kick()
}

// kick either renders the static frame or resumes the loop.
func (d *Driver) kick() {
	if !d.running {
		return
	}
	if d.reduced {
		d.render()
		return
	}
	if d.visible && d.frame == 0 {
		d.frame = d.sched.RequestFrame(d.step)
	}
}

func (d *Driver) step(time.Duration) {
	d.frame = 0
	if !d.running || !d.visible || d.reduced {
		return
	}
	d.field.Step()
	d.render()
	d.frame = d.sched.RequestFrame(d.step)
}

func (d *Driver) render() {
	d.field.Render(d.canvas)
	d.frames++
}

func (d *Driver) cancel() {
	d.sched.Cancel(d.frame)
	d.frame = 0
}
