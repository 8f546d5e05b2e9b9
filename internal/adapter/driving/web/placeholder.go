package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	g "maragu.dev/gomponents"

	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/motion/particles"
)

var (
	placeholderAccent = colorful.Color{R: 70.0 / 255, G: 230.0 / 255, B: 230.0 / 255}
	placeholderText   = colorful.Color{R: 1, G: 1, B: 1}
)

const (
	placeholderStrokeAlpha = 0.2
	maxBackgroundSide      = 4096
	defaultBackgroundW     = 1440
	defaultBackgroundH     = 900
)

// PlaceholderSVG renders the stand-in card for item n of kind.
func PlaceholderSVG(style model.PlaceholderStyle, n int) g.Node {
	w, h := strconv.Itoa(style.Width), strconv.Itoa(style.Height)
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", w), g.Attr("height", h),
		g.Attr("viewBox", "0 0 "+w+" "+h),
		g.El("rect",
			g.Attr("width", w), g.Attr("height", h),
			g.Attr("fill", rgba(placeholderAccent, style.FillAlpha)),
			g.Attr("stroke", rgba(placeholderAccent, placeholderStrokeAlpha)),
			g.Attr("stroke-width", "1"),
			g.Attr("rx", strconv.Itoa(style.Radius)),
		),
		g.El("text",
			g.Attr("x", strconv.Itoa(style.Width/2)),
			g.Attr("y", strconv.Itoa(style.Height/2+5)),
			g.Attr("text-anchor", "middle"),
			g.Attr("fill", rgba(placeholderText, style.TextAlpha)),
			g.Attr("font-family", "Inter, sans-serif"),
			g.Attr("font-size", strconv.Itoa(style.FontSize)),
			g.Textf("%s %d", style.Label, n),
		),
	)
}

func rgba(c colorful.Color, alpha float64) string {
	r, gr, b := c.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, gr, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// Placeholder serves GET /placeholder/{kind}/{n}.
func (h *Handler) Placeholder(w http.ResponseWriter, r *http.Request) {
	style, ok := model.PlaceholderKind(r.PathValue("kind")).Style()
	if !ok {
		http.NotFound(w, r)
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := PlaceholderSVG(style, n).Render(w); err != nil {
		h.logger.Error("failed to render placeholder", "error", err)
	}
}

// Background serves GET /background.svg: one frame of the particle field,
// shown when animation is unavailable or unwanted. w, h and seed are
// optional query parameters.
func (h *Handler) Background(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, okW := dimension(q.Get("w"), defaultBackgroundW)
	height, okH := dimension(q.Get("h"), defaultBackgroundH)
	if !okW || !okH {
		http.Error(w, "invalid dimensions", http.StatusBadRequest)
		return
	}
	var seed uint64 = 1
	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = v
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := particles.Snapshot(width, height, seed).WriteTo(w); err != nil {
		h.logger.Error("failed to render background", "error", err)
	}
}

func dimension(raw string, def float64) (float64, bool) {
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v <= 0 || v > maxBackgroundSide {
		return 0, false
	}
	return v, true
}
