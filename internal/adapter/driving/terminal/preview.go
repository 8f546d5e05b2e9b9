// Package terminal runs the motion engine against a tcell screen: the intro,
// the hero ring, every marquee track and the particle field, animated in real
// time in the terminal.
package terminal

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/motion"
	"github.com/scicolab/scico/internal/motion/carousel"
	"github.com/scicolab/scico/internal/motion/intro"
	"github.com/scicolab/scico/internal/motion/marquee"
	"github.com/scicolab/scico/internal/motion/particles"
)

// A cell stands for a cellW×cellH pixel block of the page.
const (
	cellW = 8.0
	cellH = 16.0
)

// Options tunes a Preview.
type Options struct {
	Reduced bool
	Seed    uint64
	Logger  *slog.Logger
}

// Preview owns the drivers and paints them on every frame. All driver state
// is touched on the scheduler's thread only; the event loop in Run posts
// work onto it.
type Preview struct {
	screen tcell.Screen
	sched  motion.Scheduler
	sig    *motion.Signals
	cat    *content.Catalog
	logger *slog.Logger
	seed   uint64

	reduced    bool
	running    bool
	frame      motion.Handle
	frames     int
	params     intro.Params
	introCtl   *intro.Controller
	completion *motion.Completion
	introDone  bool
	contentOn  bool
	unsubs     []func()

	rows    []*trackRow
	hovered int
	hero    *carousel.Driver
	ring    []carousel.Item
	field   *particles.Driver
	canvas  *cellCanvas
}

// trackRow is one marquee track on screen.
type trackRow struct {
	name   string
	label  string
	cfg    marquee.Config
	driver *marquee.Driver
	offset float64
	y      int
}

// New creates a preview drawing on screen. The screen must be initialised.
func New(screen tcell.Screen, sched motion.Scheduler, cat *content.Catalog, opts Options) *Preview {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Preview{
		screen:  screen,
		sched:   sched,
		sig:     motion.NewSignals(sched),
		cat:     cat,
		logger:  logger,
		seed:    opts.Seed,
		reduced: opts.Reduced,
		hovered: -1,
		canvas:  newCellCanvas(),
	}
}

// Signals exposes the preview's signal hub.
func (p *Preview) Signals() *motion.Signals { return p.sig }

// Start begins the intro. Drawing starts with the next frame.
func (p *Preview) Start() {
	motion.Post(p.sched, p.start)
}

// Stop halts every driver. It must run on the scheduler's thread or after
// the scheduler is closed.
func (p *Preview) Stop() {
	p.running = false
	p.sched.Cancel(p.frame)
	p.frame = 0
	if p.introCtl != nil {
		p.introCtl.Stop()
	}
	if p.completion != nil {
		p.completion.Cancel()
	}
	for _, r := range p.rows {
		r.driver.Stop()
	}
	if p.hero != nil {
		p.hero.Stop()
	}
	if p.field != nil {
		p.field.Stop()
	}
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

// Frames returns how many frames were painted.
func (p *Preview) Frames() int { return p.frames }

// IntroDone reports whether the intro has completed.
func (p *Preview) IntroDone() bool { return p.introDone }

func (p *Preview) start() {
	if p.running {
		return
	}
	p.running = true

	w, h := p.screen.Size()
	p.sig.ResizeViewport(float64(w)*cellW, float64(h)*cellH)
	p.sig.SetVisible(true)
	p.sig.SetReducedMotion(p.reduced)

	p.params = intro.DefaultParams()
	if p.cat.Intro.Letters != "" {
		p.params.Letters = p.cat.Intro.Letters
	}
	p.completion = motion.NewCompletion(p.sched, p.cat.Intro.SafetyTimeout, p.finishIntro)
	p.introCtl = intro.NewController(p.sched, intro.NewPlan(p.params),
		intro.WithCompletion(func() { p.completion.Fire() }),
	)
	p.introCtl.Start(p.reduced)

	p.frame = p.sched.RequestFrame(p.draw)
}

func (p *Preview) finishIntro(forced bool) {
	if forced {
		p.logger.Warn("intro did not complete in time, showing content")
		p.introCtl.Stop()
	}
	p.introDone = true
	p.sched.AfterFunc(p.cat.Intro.Handoff, p.startContent)
}

func (p *Preview) startContent() {
	if !p.running || p.contentOn {
		return
	}
	p.contentOn = true

	for i, t := range p.cat.Tracks {
		m := t.Model()
		style, _ := m.Placeholder.Style()
		row := &trackRow{
			name:  t.Name,
			label: style.Label,
			cfg: marquee.Config{
				Period:       t.Period,
				ItemWidth:    t.ItemWidth,
				Items:        t.Items,
				Direction:    motion.ParseDirection(t.Direction),
				PauseOnHover: t.PauseOnHover,
			},
			y: trackTop + 2*i + 1,
		}
		row.driver = marquee.New(p.sched, row.cfg, func(off float64) { row.offset = off })
		p.rows = append(p.rows, row)
	}

	w, h := p.screen.Size()
	hero := p.cat.Hero
	p.hero = carousel.NewDriver(p.sched, carousel.Config{
		Images:         len(hero.Images),
		Period:         hero.Rotation,
		BaseRadius:     hero.BaseRadius,
		FrontThreshold: hero.FrontThreshold,
		Width:          float64(w) * cellW,
	}, func(_ float64, items []carousel.Item) { p.ring = items })
	p.hero.Attach(p.sig)
	p.hero.Start()
	// Nothing to download in a terminal: every slot is ready at once.
	for range p.hero.Count() {
		p.hero.ImageLoaded()
	}

	p.field = particles.NewDriver(p.sched, particles.NewField(p.seed), p.canvas)
	p.field.Start(p.sig, float64(w)*cellW, float64(h)*cellH)

	// The current value is replayed, which starts the tracks.
	p.unsubs = append(p.unsubs, p.sig.Reduced.Subscribe(p.setRowsReduced))
}

func (p *Preview) setRowsReduced(v bool) {
	for _, r := range p.rows {
		if v {
			r.driver.Stop()
			r.offset = 0
		} else {
			r.driver.Start()
		}
	}
}

func (p *Preview) toggleReduced() {
	p.reduced = !p.reduced
	p.sig.SetReducedMotion(p.reduced)
}

// hover updates which track sits under the pointer row y.
func (p *Preview) hover(y int) {
	idx := -1
	for i, r := range p.rows {
		if r.y == y {
			idx = i
			break
		}
	}
	if idx == p.hovered {
		return
	}
	if p.hovered >= 0 && p.hovered < len(p.rows) {
		p.rows[p.hovered].driver.PointerLeave()
	}
	if idx >= 0 {
		p.rows[idx].driver.PointerEnter()
	}
	p.hovered = idx
}

func (p *Preview) draw(time.Duration) {
	p.frame = 0
	if !p.running {
		return
	}
	p.frames++
	p.screen.Clear()
	if p.introDone {
		p.drawContent()
	} else {
		p.drawIntro()
	}
	p.drawStatus()
	p.screen.Show()
	p.frame = p.sched.RequestFrame(p.draw)
}

// Run processes terminal events until ctx is done or the user quits.
// Events are translated into signals and posted to the scheduler.
func (p *Preview) Run(ctx context.Context) error {
	p.screen.EnableMouse()
	p.screen.EnableFocus()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !p.handle(ev) {
				return nil
			}
		}
	}
}

// handle dispatches one event and reports whether to keep running.
func (p *Preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 'r':
			motion.Post(p.sched, p.toggleReduced)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		p.sig.ResizeViewport(float64(w)*cellW, float64(h)*cellH)
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.sig.MovePointer((float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH)
		motion.Post(p.sched, func() { p.hover(y) })
	case *tcell.EventFocus:
		p.sig.SetVisible(ev.Focused)
	}
	return true
}

// sortedRing returns the ring items back to front.
func sortedRing(items []carousel.Item) []carousel.Item {
	out := append([]carousel.Item(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}
