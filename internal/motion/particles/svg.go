package particles

import (
	"fmt"
	"io"
	"strconv"

	g "maragu.dev/gomponents"
)

// SVGCanvas records one rendered frame as SVG elements. It backs the static
// background served to reduced-motion viewers.
type SVGCanvas struct {
	w, h  float64
	defs  []g.Node
	shape []g.Node
	ids   int
}

// NewSVGCanvas creates an empty canvas.
func NewSVGCanvas() *SVGCanvas { return &SVGCanvas{} }

// Clear drops everything drawn so far and sets the view box.
func (c *SVGCanvas) Clear(w, h float64) {
	c.w, c.h = w, h
	c.defs, c.shape, c.ids = nil, nil, 0
}

// Line draws a stroked segment with a linear gradient along it.
func (c *SVGCanvas) Line(x1, y1, x2, y2, width float64, stops []Stop) {
	id := c.nextID("l")
	c.defs = append(c.defs, g.El("linearGradient",
		g.Attr("id", id),
		g.Attr("gradientUnits", "userSpaceOnUse"),
		num("x1", x1), num("y1", y1), num("x2", x2), num("y2", y2),
		stopNodes(stops),
	))
	c.shape = append(c.shape, g.El("line",
		num("x1", x1), num("y1", y1), num("x2", x2), num("y2", y2),
		g.Attr("stroke", "url(#"+id+")"),
		num("stroke-width", width),
	))
}

// Dot draws a filled circle of radius r whose radial gradient spans
// gradientRadius.
func (c *SVGCanvas) Dot(x, y, r, gradientRadius float64, stops []Stop) {
	id := c.nextID("d")
	c.defs = append(c.defs, g.El("radialGradient",
		g.Attr("id", id),
		g.Attr("gradientUnits", "userSpaceOnUse"),
		num("cx", x), num("cy", y), num("r", gradientRadius),
		stopNodes(stops),
	))
	c.shape = append(c.shape, g.El("circle",
		num("cx", x), num("cy", y), num("r", r),
		g.Attr("fill", "url(#"+id+")"),
	))
}

// Node returns the frame as an <svg> element.
func (c *SVGCanvas) Node() g.Node {
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("viewBox", fmt.Sprintf("0 0 %s %s", ftoa(c.w), ftoa(c.h))),
		num("width", c.w), num("height", c.h),
		g.Attr("aria-hidden", "true"),
		g.El("defs", g.Group(c.defs)),
		g.Group(c.shape),
	)
}

// WriteTo renders the frame.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := c.Node().Render(cw)
	return cw.n, err
}

func (c *SVGCanvas) nextID(prefix string) string {
	c.ids++
	return prefix + strconv.Itoa(c.ids)
}

func stopNodes(stops []Stop) g.Node {
	nodes := make([]g.Node, 0, len(stops))
	for _, s := range stops {
		nodes = append(nodes, g.El("stop",
			g.Attr("offset", ftoa(s.Offset)),
			g.Attr("stop-color", s.Color.Hex()),
			g.Attr("stop-opacity", ftoa(s.Alpha)),
		))
	}
	return g.Group(nodes)
}

func num(name string, v float64) g.Node { return g.Attr(name, ftoa(v)) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Snapshot renders a freshly seeded w×h field as a single SVG frame.
func Snapshot(w, h float64, seed uint64) *SVGCanvas {
	f := NewField(seed)
	f.Reset(w, h)
	c := NewSVGCanvas()
	f.Render(c)
	return c
}
