// Package particles simulates the ambient background: a sparse field of
// drifting dots joined by faint lines when close, gently attracted by the
// pointer.
package particles

import (
	"math"
	"math/rand/v2"

	"github.com/scicolab/scico/internal/motion"
)

const (
	MaxParticles   = 50
	AreaPerDot     = 25000.0
	MaxSpeed       = 0.25
	PointerRadius  = 150.0
	PointerForce   = 0.002
	Damping        = 0.999
	LinkDistance   = 120.0
	LinkOpacity    = 0.15
	LinkWidth      = 0.5
	minSize        = 1.0
	sizeRange      = 2.0
	minOpacity     = 0.1
	opacityRange   = 0.3
	dotRadiusScale = 2.0
)

// Particle is one dot of the field.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
}

// Link joins two particles closer than LinkDistance.
type Link struct {
	A, B    int
	Opacity float64
}

// Field holds the particles of one canvas.
type Field struct {
	W, H      float64
	Particles []Particle
	Pointer   motion.Point

	rng *rand.Rand
}

// NewField creates an empty field with a seeded generator.
func NewField(seed uint64) *Field {
	return &Field{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Count returns the number of particles generated for a w×h canvas.
func Count(w, h float64) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(MaxParticles, int(math.Floor(w*h/AreaPerDot)))
}

// Reset sizes the field and regenerates every particle.
func (f *Field) Reset(w, h float64) {
	f.W, f.H = w, h
	n := Count(w, h)
	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		f.Particles[i] = Particle{
			X:       f.rng.Float64() * w,
			Y:       f.rng.Float64() * h,
			VX:      (f.rng.Float64() - 0.5) * 2 * MaxSpeed,
			VY:      (f.rng.Float64() - 0.5) * 2 * MaxSpeed,
			Size:    minSize + f.rng.Float64()*sizeRange,
			Opacity: minOpacity + f.rng.Float64()*opacityRange,
		}
	}
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	for i := range f.Particles {
		p := &f.Particles[i]
		dx := f.Pointer.X - p.X
		dy := f.Pointer.Y - p.Y
		if dist := math.Hypot(dx, dy); dist < PointerRadius {
			force := (PointerRadius - dist) / PointerRadius * PointerForce
			p.VX += dx * force
			p.VY += dy * force
		}

		p.X += p.VX
		p.Y += p.VY

		switch {
		case p.X < 0:
			p.X = f.W
		case p.X > f.W:
			p.X = 0
		}
		switch {
		case p.Y < 0:
			p.Y = f.H
		case p.Y > f.H:
			p.Y = 0
		}

		p.VX *= Damping
		p.VY *= Damping
	}
}

// Links returns every unordered pair closer than LinkDistance.
func (f *Field) Links() []Link {
	var links []Link
	for i := range f.Particles {
		for j := i + 1; j < len(f.Particles); j++ {
			a, b := f.Particles[i], f.Particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < LinkDistance {
				links = append(links, Link{A: i, B: j, Opacity: (LinkDistance - d) / LinkDistance * LinkOpacity})
			}
		}
	}
	return links
}

// Canvas is a 2D drawing surface.
type Canvas interface {
	Clear(w, h float64)
	Line(x1, y1, x2, y2, width float64, stops []Stop)
	Dot(x, y, r, gradientRadius float64, stops []Stop)
}

// Render draws the field: links first, then dots on top.
func (f *Field) Render(c Canvas) {
	c.Clear(f.W, f.H)
	for _, l := range f.Links() {
		a, b := f.Particles[l.A], f.Particles[l.B]
		c.Line(a.X, a.Y, b.X, b.Y, LinkWidth, LinkStops(l.Opacity))
	}
	for _, p := range f.Particles {
		c.Dot(p.X, p.Y, p.Size, p.Size*dotRadiusScale, DotStops(p.Opacity))
	}
}
