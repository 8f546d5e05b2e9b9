package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/scicolab/scico/internal/motion/particles"
)

// Screen rows of the content view.
const (
	titleRow = 0
	heroRow  = 4
	trackTop = 8
)

var (
	accent     = colorful.Color{R: 70.0 / 255, G: 230.0 / 255, B: 230.0 / 255}
	styleTitle = tcell.StyleDefault.Bold(true)
	styleDim   = tcell.StyleDefault.Dim(true)
	styleHover = tcell.StyleDefault.Reverse(true)
)

func (p *Preview) drawText(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (p *Preview) drawIntro() {
	w, h := p.screen.Size()
	step := p.params.Step()
	left := (float64(w)*cellW - p.params.StageWidth()) / 2
	col := func(px float64) int { return int((left + px + p.params.Slot/2) / cellW) }
	mid := h / 2

	letters := []rune(p.params.Letters)
	for i := 0; i < p.introCtl.Revealed() && i < len(letters); i++ {
		p.screen.SetContent(col(float64(i)*step), mid, letters[i], nil, styleTitle)
	}
	if !p.introCtl.Morphed() {
		p.screen.SetContent(col(p.introCtl.BallX()), mid-1, '●', nil, colorStyle(accent, 1))
	}
	for _, imp := range p.introCtl.Impacts() {
		r := '.'
		if imp.Intensity >= 0.5 {
			r = '*'
		}
		p.screen.SetContent(col(imp.X), mid+1, r, nil, colorStyle(accent, imp.Intensity))
	}
}

func (p *Preview) drawContent() {
	w, _ := p.screen.Size()
	for _, m := range p.canvas.marks {
		p.screen.SetContent(m.x, m.y, m.r, nil, m.style)
	}

	p.drawText(1, titleRow, styleTitle, p.cat.Site.Title)
	p.drawText(1, titleRow+1, styleDim, p.cat.Site.Tagline)

	center := w / 2
	for _, it := range sortedRing(p.ring) {
		label := fmt.Sprintf("[%d]", it.Index+1)
		x := center + int(it.X/cellW) - len(label)/2
		style := colorStyle(accent, it.Opacity)
		if it.Front {
			style = style.Bold(true)
		}
		p.drawText(x, heroRow, style, label)
	}

	for i, r := range p.rows {
		p.drawText(1, r.y-1, styleDim, r.name)
		style := tcell.StyleDefault
		if i == p.hovered {
			style = styleHover
		}
		for c := range w {
			p.screen.SetContent(c, r.y, r.cellAt(c), nil, style)
		}
	}
}

func (p *Preview) drawStatus() {
	w, h := p.screen.Size()
	motionState := "full"
	if p.reduced {
		motionState = "reduced"
	}
	status := fmt.Sprintf(" q quit  r motion: %s  frame %d", motionState, p.frames)
	if len(status) > w {
		status = status[:w]
	}
	p.drawText(0, h-1, styleDim, status)
}

// cellAt returns the rune showing at column c of the track strip.
func (r *trackRow) cellAt(c int) rune {
	length := r.cfg.Length()
	if length <= 0 || r.cfg.ItemWidth <= 0 {
		return ' '
	}
	x := math.Mod(float64(c)*cellW-r.offset, length)
	if x < 0 {
		x += length
	}
	item := int(x / r.cfg.ItemWidth)
	pos := int(math.Mod(x, r.cfg.ItemWidth) / cellW)
	if pos == 0 {
		return '│'
	}
	text := []rune(fmt.Sprintf(" %s %d", r.label, item+1))
	if pos-1 < len(text) {
		return text[pos-1]
	}
	return ' '
}

// colorStyle renders c at opacity alpha over a black background.
func colorStyle(c colorful.Color, alpha float64) tcell.Style {
	blended := colorful.Color{}.BlendRgb(c, math.Max(0, math.Min(1, alpha))).Clamped()
	r, g, b := blended.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

type mark struct {
	x, y  int
	r     rune
	style tcell.Style
}

// cellCanvas rasterises the particle field to terminal cells.
type cellCanvas struct {
	marks []mark
}

var _ particles.Canvas = (*cellCanvas)(nil)

func newCellCanvas() *cellCanvas { return &cellCanvas{} }

func (c *cellCanvas) Clear(float64, float64) { c.marks = c.marks[:0] }

func (c *cellCanvas) Line(x1, y1, x2, y2, _ float64, stops []particles.Stop) {
	steps := int(math.Hypot(x2-x1, y2-y1) / cellW)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		col, a := particles.At(stops, t)
		c.marks = append(c.marks, mark{
			x:     int((x1 + (x2-x1)*t) / cellW),
			y:     int((y1 + (y2-y1)*t) / cellH),
			r:     '·',
			style: colorStyle(col, a),
		})
	}
}

func (c *cellCanvas) Dot(x, y, _, _ float64, stops []particles.Stop) {
	col, a := particles.At(stops, 0)
	c.marks = append(c.marks, mark{x: int(x / cellW), y: int(y / cellH), r: '•', style: colorStyle(col, a)})
}
