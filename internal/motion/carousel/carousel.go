// Package carousel drives the rotating hero: up to four images arranged on a
// ring that turns once per period after every image has loaded.
package carousel

import (
	"fmt"
	"math"
	"time"

	"github.com/scicolab/scico/internal/motion"
)

// Mode is the rendering mode chosen for the hero.
type Mode int

const (
	ModeRotating Mode = iota
	ModeVideo
	ModeSingle
	ModeGrid
)

func (m Mode) String() string {
	switch m {
	case ModeVideo:
		return "video"
	case ModeSingle:
		return "single"
	case ModeGrid:
		return "grid"
	default:
		return "rotating"
	}
}

const (
	MaxItems              = 4
	DefaultPeriod         = 7 * time.Second
	DefaultBaseRadius     = 260.0
	MinRadius             = 140.0
	RadiusFactor          = 0.28
	DefaultFrontThreshold = 0.6
	// FallbackWidth is used when the container has not been measured yet.
	FallbackWidth = 800.0
)

// SelectMode picks the hero mode. A video wins over everything, a single
// image is shown static, reduced motion falls back to a grid.
func SelectMode(video string, images int, reduced bool) Mode {
	switch {
	case video != "":
		return ModeVideo
	case images == 1:
		return ModeSingle
	case reduced:
		return ModeGrid
	default:
		return ModeRotating
	}
}

// Count is the number of ring slots used for n images.
func Count(n int) int {
	return max(1, min(MaxItems, n))
}

// Radius returns the ring radius for a container width, clamped to
// [MinRadius, base].
func Radius(width, base float64) float64 {
	if width <= 0 {
		width = FallbackWidth
	}
	return math.Max(MinRadius, math.Min(width*RadiusFactor, base))
}

// Item is the computed presentation of one ring slot.
type Item struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
	Front   bool    `json:"front"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
	Blur    float64 `json:"blur"`
	ZIndex  int     `json:"z_index"`
}

// Layout places count items on a ring of radius r turned by angle. Positive z
// is farther from the viewer; an item counts as front when it is nearer than
// threshold·r.
func Layout(angle float64, count int, r, threshold float64) []Item {
	items := make([]Item, count)
	for i := range items {
		a := float64(i)/float64(count)*2*math.Pi + angle
		x := math.Sin(a) * r
		z := math.Cos(a) * r
		zn := (z + r) / (2 * r)
		front := z < 0 && math.Abs(z) > threshold*r

		it := Item{Index: i, X: x, Z: z, Front: front, ZIndex: int(math.Round(1000 - z))}
		if front {
			it.Scale, it.Opacity, it.Blur = 1.1, 1, 0
		} else {
			it.Scale = 0.85 + 0.15*(1-zn)
			it.Opacity = 0.45 + 0.25*(1-zn)
			it.Blur = 1.5 * zn
		}
		items[i] = it
	}
	return items
}

// Transform is the CSS transform of the item. CSS z grows toward the viewer,
// so the ring depth is negated.
func (it Item) Transform() string {
	return fmt.Sprintf("translate3d(%.2fpx,0,%.2fpx) scale(%.3f)", it.X, -it.Z, it.Scale)
}

// Angle returns the ring angle after elapsed time.
func Angle(elapsed, period time.Duration) float64 {
	return motion.Progress(elapsed, period) * 2 * math.Pi
}
