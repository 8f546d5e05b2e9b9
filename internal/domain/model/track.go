package model

import "time"

// Direction is the travel direction of a marquee track.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Track is one horizontally looping marquee strip. Its content is rendered
// twice back to back so the loop seam is invisible.
type Track struct {
	Name        string
	Placeholder PlaceholderKind
	Items       int
	// ItemWidth is the width of one item in pixels, including the gap.
	ItemWidth    float64
	Period       time.Duration
	Direction    Direction
	PauseOnHover bool
}

// Length is the width of one copy of the content.
func (t Track) Length() float64 { return t.ItemWidth * float64(t.Items) }

// StripWidth is the width of the doubled strip.
func (t Track) StripWidth() float64 { return 2 * t.Length() }

// Doubled returns items followed by a second copy of items.
func Doubled[T any](items []T) []T {
	out := make([]T, 0, 2*len(items))
	out = append(out, items...)
	return append(out, items...)
}
