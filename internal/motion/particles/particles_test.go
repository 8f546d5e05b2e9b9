package particles

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/motion"
)

type recordingCanvas struct {
	ops   []string
	lines [][]Stop
	dots  [][]Stop
	radii []float64
}

func (r *recordingCanvas) Clear(float64, float64) { r.ops = append(r.ops, "clear") }

func (r *recordingCanvas) Line(_, _, _, _, width float64, stops []Stop) {
	r.ops = append(r.ops, "line")
	r.lines = append(r.lines, stops)
}

func (r *recordingCanvas) Dot(_, _, _, gradientRadius float64, stops []Stop) {
	r.ops = append(r.ops, "dot")
	r.dots = append(r.dots, stops)
	r.radii = append(r.radii, gradientRadius)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 50, Count(1920, 1080))
	assert.Equal(t, 19, Count(800, 600))
	assert.Zero(t, Count(0, 600))
}

func TestReset_Ranges(t *testing.T) {
	f := NewField(7)
	f.Reset(1280, 800)

	require.Len(t, f.Particles, 40)
	for _, p := range f.Particles {
		assert.True(t, p.X >= 0 && p.X <= 1280)
		assert.True(t, p.Y >= 0 && p.Y <= 800)
		assert.LessOrEqual(t, p.VX, MaxSpeed)
		assert.GreaterOrEqual(t, p.VX, -MaxSpeed)
		assert.True(t, p.Size >= 1 && p.Size <= 3)
		assert.True(t, p.Opacity >= 0.1 && p.Opacity <= 0.4)
	}
}

func TestStep_PointerAttraction(t *testing.T) {
	f := &Field{W: 400, H: 400, Pointer: motion.Point{X: 150, Y: 100}}
	f.Particles = []Particle{{X: 100, Y: 100}}
	f.Step()

	force := (150.0 - 50) / 150 * 0.002
	p := f.Particles[0]
	assert.InDelta(t, 100+50*force, p.X, 1e-12)
	assert.InDelta(t, 50*force*0.999, p.VX, 1e-12)
	assert.Zero(t, p.VY)
}

func TestStep_WrapsAndDamps(t *testing.T) {
	f := &Field{W: 400, H: 300, Pointer: motion.Point{X: 1000, Y: 1000}}
	f.Particles = []Particle{
		{X: 0.1, Y: 10, VX: -0.2},
		{X: 399.9, Y: 299.9, VX: 0.2, VY: 0.2},
	}
	f.Step()

	assert.Equal(t, 400.0, f.Particles[0].X)
	assert.InDelta(t, -0.2*0.999, f.Particles[0].VX, 1e-12)
	assert.Zero(t, f.Particles[1].X)
	assert.Zero(t, f.Particles[1].Y)
}

func TestLinks(t *testing.T) {
	f := &Field{W: 400, H: 400}
	f.Particles = []Particle{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 300, Y: 300}}

	links := f.Links()
	require.Len(t, links, 1)
	assert.Equal(t, 0, links[0].A)
	assert.Equal(t, 1, links[0].B)
	assert.InDelta(t, 0.075, links[0].Opacity, 1e-12)
}

func TestRender_LinksBeforeDots(t *testing.T) {
	f := &Field{W: 400, H: 400}
	f.Particles = []Particle{{X: 0, Y: 0, Size: 2, Opacity: 0.4}, {X: 60, Y: 0, Size: 1, Opacity: 0.2}}

	c := &recordingCanvas{}
	f.Render(c)

	assert.Equal(t, []string{"clear", "line", "dot", "dot"}, c.ops)
	require.Len(t, c.lines[0], 3)
	assert.InDelta(t, 0.075*0.8, c.lines[0][1].Alpha, 1e-12)
	assert.InDelta(t, 0.075*0.6, c.lines[0][2].Alpha, 1e-12)
	assert.Equal(t, 4.0, c.radii[0])
	assert.InDelta(t, 0.4*0.3, c.dots[0][2].Alpha, 1e-12)
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#22d3ee", Cyan.Hex())
	assert.Equal(t, "rgba(217, 70, 239, 0.5)", Stop{Color: Magenta, Alpha: 0.5}.RGBA())

	col, alpha := At(LinkStops(1), 0.25)
	assert.InDelta(t, 0.9, alpha, 1e-12)
	assert.True(t, col.IsValid())

	col, alpha = At(LinkStops(1), 1)
	assert.Equal(t, Magenta, col)
	assert.InDelta(t, 0.6, alpha, 1e-12)
}

func TestBrowserPalette(t *testing.T) {
	p := Browser()

	require.Len(t, p.Link, 3)
	assert.Equal(t, [3]int{34, 211, 238}, p.Link[0].RGB)
	assert.Equal(t, [3]int{217, 70, 239}, p.Link[2].RGB)
	assert.Equal(t, []float64{1, 0.8, 0.6}, []float64{p.Link[0].Alpha, p.Link[1].Alpha, p.Link[2].Alpha})

	require.Len(t, p.Dot, 3)
	assert.Equal(t, 0.7, p.Dot[1].Offset)
	assert.Equal(t, []float64{1, 0.6, 0.3}, []float64{p.Dot[0].Alpha, p.Dot[1].Alpha, p.Dot[2].Alpha})

	assert.Equal(t, 120.0, p.LinkDistance)
	assert.Equal(t, 0.15, p.LinkOpacity)
	assert.Equal(t, 0.5, p.LinkWidth)
	assert.Equal(t, 2.0, p.DotRadius)
}

func TestSnapshot_SVG(t *testing.T) {
	var buf bytes.Buffer
	n, err := Snapshot(800, 600, 1).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `viewBox="0 0 800 600"`)
	assert.Equal(t, 19, strings.Count(out, "<circle"))
	assert.Contains(t, out, `stop-color="#22d3ee"`)
}

func TestDriver_SignalTransitions(t *testing.T) {
	s := motion.NewManualScheduler(10 * time.Millisecond)
	sig := motion.NewSignals(s)
	d := NewDriver(s, NewField(3), &recordingCanvas{})
	d.Start(sig, 800, 600)
	require.True(t, d.Running())

	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 10, d.Frames())

	sig.SetVisible(false)
	s.Advance(0)
	assert.False(t, d.Running(), "hidden document stops the loop")
	s.Advance(time.Second)
	assert.Equal(t, 10, d.Frames())

	sig.SetVisible(true)
	s.Advance(0)
	assert.True(t, d.Running())

	sig.ResizeViewport(1920, 1080)
	s.Advance(0)
	assert.Len(t, d.Field().Particles, 50)

	sig.MovePointer(12, 34)
	s.Advance(0)
	assert.Equal(t, motion.Point{X: 12, Y: 34}, d.Field().Pointer)

	before := d.Frames()
	sig.SetReducedMotion(true)
	s.Advance(0)
	assert.False(t, d.Running())
	assert.Equal(t, before+1, d.Frames(), "reduced motion renders one static frame")
	s.Advance(time.Second)
	assert.Equal(t, before+1, d.Frames())

	d.Stop()
	d.Stop()
	assert.Zero(t, sig.Pointer.Subscribers())
	assert.Zero(t, sig.Resize.Subscribers())
	assert.Zero(t, sig.Visibility.Subscribers())
	assert.Zero(t, sig.Reduced.Subscribers())
	frames, timers := s.Pending()
	assert.Zero(t, frames)
	assert.Zero(t, timers)
}
