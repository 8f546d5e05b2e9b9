package particles

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// The three brand colors of the field gradient.
var (
	Cyan    = rgb255(34, 211, 238)
	Indigo  = rgb255(126, 142, 245)
	Magenta = rgb255(217, 70, 239)
)

func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// RGBA formats the stop as a CSS rgba() value.
func (s Stop) RGBA() string {
	r, g, b := s.Color.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(s.Alpha))
}

// LinkStops is the gradient of a link line of the given opacity.
func LinkStops(opacity float64) []Stop {
	return []Stop{
		{Offset: 0, Color: Cyan, Alpha: opacity},
		{Offset: 0.5, Color: Indigo, Alpha: opacity * 0.8},
		{Offset: 1, Color: Magenta, Alpha: opacity * 0.6},
	}
}

// DotStops is the radial gradient of a particle of the given opacity.
func DotStops(opacity float64) []Stop {
	return []Stop{
		{Offset: 0, Color: Cyan, Alpha: opacity},
		{Offset: 0.7, Color: Indigo, Alpha: opacity * 0.6},
		{Offset: 1, Color: Magenta, Alpha: opacity * 0.3},
	}
}

// BrowserStop is a stop as the canvas player consumes it. Alpha is a factor
// of the particle or link opacity.
type BrowserStop struct {
	Offset float64 `json:"offset"`
	RGB    [3]int  `json:"rgb"`
	Alpha  float64 `json:"alpha"`
}

// BrowserPalette carries the gradients and link constants to the canvas
// player, so the live field draws what Render draws.
type BrowserPalette struct {
	Link         []BrowserStop `json:"link"`
	Dot          []BrowserStop `json:"dot"`
	LinkDistance float64       `json:"link_distance"`
	LinkOpacity  float64       `json:"link_opacity"`
	LinkWidth    float64       `json:"link_width"`
	DotRadius    float64       `json:"dot_radius"`
}

// Browser returns the palette with unit opacity stops.
func Browser() BrowserPalette {
	return BrowserPalette{
		Link:         browserStops(LinkStops(1)),
		Dot:          browserStops(DotStops(1)),
		LinkDistance: LinkDistance,
		LinkOpacity:  LinkOpacity,
		LinkWidth:    LinkWidth,
		DotRadius:    dotRadiusScale,
	}
}

func browserStops(stops []Stop) []BrowserStop {
	out := make([]BrowserStop, len(stops))
	for i, s := range stops {
		r, g, b := s.Color.RGB255()
		out[i] = BrowserStop{Offset: s.Offset, RGB: [3]int{int(r), int(g), int(b)}, Alpha: s.Alpha}
	}
	return out
}

// At samples a gradient at t in [0, 1], blending in Lab space between the
// surrounding stops.
func At(stops []Stop, t float64) (colorful.Color, float64) {
	if len(stops) == 0 {
		return colorful.Color{}, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	if last := stops[len(stops)-1]; t >= last.Offset {
		return last.Color, last.Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Offset) / span
		return a.Color.BlendLab(b.Color, f).Clamped(), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	return stops[len(stops)-1].Color, stops[len(stops)-1].Alpha
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
