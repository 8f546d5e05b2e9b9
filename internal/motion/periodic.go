package motion

import "time"

// Direction is the travel direction of a periodic scroll.
type Direction int

const (
	// Leftward tracks move towards negative offsets.
	Leftward Direction = iota
	// Rightward tracks move towards positive offsets.
	Rightward
)

// Sign returns -1 for Leftward and +1 for Rightward.
func (d Direction) Sign() float64 {
	if d == Rightward {
		return 1
	}
	return -1
}

// String returns the direction name used in configuration.
func (d Direction) String() string {
	if d == Rightward {
		return "right"
	}
	return "left"
}

// ParseDirection maps "right" to Rightward and anything else to Leftward.
func ParseDirection(s string) Direction {
	if s == "right" {
		return Rightward
	}
	return Leftward
}

// Phase returns elapsed reduced into [0, period). Negative elapsed values wrap
// around so the function stays periodic over the whole time axis.
func Phase(elapsed, period time.Duration) time.Duration {
	if period <= 0 {
		return 0
	}
	p := elapsed % period
	if p < 0 {
		p += period
	}
	return p
}

// Progress returns the fraction of the period covered at elapsed, in [0, 1).
func Progress(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return float64(Phase(elapsed, period)) / float64(period)
}

// Offset is the periodic-scroll primitive: the translation of a track of the
// given length after elapsed, for a loop that covers length once per period.
// The result is bounded to one copy of the content, so rendering the content
// twice back to back produces a seamless loop.
func Offset(elapsed, period time.Duration, length float64, dir Direction) float64 {
	if period <= 0 || length <= 0 {
		return 0
	}
	return dir.Sign() * Progress(elapsed, period) * length
}
