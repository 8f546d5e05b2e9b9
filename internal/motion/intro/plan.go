// Package intro sequences the wordmark intro: a ball drops onto the first
// letter slot, bounces across the remaining slots with decreasing rebound
// height, revealing one letter per landing, settles, morphs into the final
// letter and signals completion.
package intro

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Params holds the tuning constants of the intro.
type Params struct {
	Letters string

	// DropHeight is the base drop height h0 in pixels.
	DropHeight float64
	// Restitution is the height ratio e retained per half bounce (< 1).
	Restitution float64
	// Slot and Gap lay out the letter slots.
	Slot float64
	Gap  float64

	// FlightScale scales sqrt(h/h0) into seconds of flight.
	FlightScale    float64
	MinDuration    time.Duration
	SettleDuration time.Duration
	MorphDelay     time.Duration
	ImpactLifetime time.Duration

	// ReducedEnter and ReducedDelay time the reduced-motion shortcut.
	ReducedEnter time.Duration
	ReducedDelay time.Duration

	// Fall spring, as stiffness/damping/mass.
	FallStiffness float64
	FallDamping   float64
	FallMass      float64
	FallFPS       int
}

// DefaultParams returns the production tuning.
func DefaultParams() Params {
	return Params{
		Letters:        "SCICO",
		DropHeight:     250,
		Restitution:    0.75,
		Slot:           64,
		Gap:            20,
		FlightScale:    0.8,
		MinDuration:    600 * time.Millisecond,
		SettleDuration: 1200 * time.Millisecond,
		MorphDelay:     time.Second,
		ImpactLifetime: 800 * time.Millisecond,
		ReducedEnter:   100 * time.Millisecond,
		ReducedDelay:   600 * time.Millisecond,
		FallStiffness:  600,
		FallDamping:    25,
		FallMass:       1.2,
		FallFPS:        60,
	}
}

// Step is the horizontal distance between letter slots.
func (p Params) Step() float64 { return p.Slot + p.Gap }

// StageWidth is the width of the letter stage.
func (p Params) StageWidth() float64 {
	return p.Step()*float64(bounceCount) + p.Slot
}

const bounceCount = 4

// Keyframe is a vertical ball position at a time offset within a step.
type Keyframe struct {
	At time.Duration `json:"-"`
	Y  float64       `json:"y"`
	// AtMS mirrors At for the browser.
	AtMS int64 `json:"at_ms"`
}

func keyframe(at time.Duration, y float64) Keyframe {
	return Keyframe{At: at, Y: y, AtMS: at.Milliseconds()}
}

// Bounce is one hop between letter slots.
type Bounce struct {
	Index     int           `json:"index"`
	Height    float64       `json:"height"`
	X         float64       `json:"x"`
	Duration  time.Duration `json:"-"`
	DurMS     int64         `json:"duration_ms"`
	Intensity float64       `json:"intensity"`
}

// Plan is the precomputed choreography.
type Plan struct {
	Params Params `json:"-"`

	Fall          []Keyframe    `json:"fall"`
	FallDuration  time.Duration `json:"-"`
	FallIntensity float64       `json:"fall_intensity"`
	Bounces       []Bounce      `json:"bounces"`
	Settle        []Keyframe    `json:"settle"`
}

// BounceHeights returns h0·e², h0·e⁴, h0·e⁶, h0·e⁸. Even powers model a full
// down-up-down cycle per bounce.
func BounceHeights(h0, e float64) []float64 {
	heights := make([]float64, bounceCount)
	for i := range heights {
		heights[i] = h0 * math.Pow(e, float64(2*(i+1)))
	}
	return heights
}

// FlightDuration is the time of flight of a bounce of height h relative to
// h0, floored at floor.
func FlightDuration(h, h0, scale float64, floor time.Duration) time.Duration {
	d := time.Duration(scale * math.Sqrt(h/h0) * float64(time.Second))
	if d < floor {
		return floor
	}
	return d
}

// ImpactIntensity returns the clamped intensity of the landing after bounce
// index i; the initial fall uses i = -1.
func ImpactIntensity(i int) float64 {
	if i < 0 {
		return clamp(1.5, 0.2, 2)
	}
	return clamp(1-float64(i)*0.2, 0.2, 2)
}

// NewPlan computes the choreography for p.
func NewPlan(p Params) Plan {
	plan := Plan{Params: p, FallIntensity: ImpactIntensity(-1)}
	plan.Fall, plan.FallDuration = simulateFall(p)

	for i, h := range BounceHeights(p.DropHeight, p.Restitution) {
		d := FlightDuration(h, p.DropHeight, p.FlightScale, p.MinDuration)
		plan.Bounces = append(plan.Bounces, Bounce{
			Index:     i,
			Height:    h,
			X:         p.Step() * float64(i+1),
			Duration:  d,
			DurMS:     d.Milliseconds(),
			Intensity: ImpactIntensity(i),
		})
	}

	ys := []float64{0, -8, 0, -4, 0, -2, 0}
	times := []float64{0, 0.2, 0.4, 0.6, 0.8, 0.9, 1}
	for i := range ys {
		at := time.Duration(times[i] * float64(p.SettleDuration))
		plan.Settle = append(plan.Settle, keyframe(at, ys[i]))
	}
	return plan
}

// Total is the duration from start to completion on the normal path.
func (pl Plan) Total() time.Duration {
	total := pl.FallDuration + pl.Params.SettleDuration + pl.Params.MorphDelay
	for _, b := range pl.Bounces {
		total += b.Duration
	}
	return total
}

// SettleStart is the offset of the micro-settle from the start of the drop.
func (pl Plan) SettleStart() time.Duration {
	t := pl.FallDuration
	for _, b := range pl.Bounces {
		t += b.Duration
	}
	return t
}

// BallAt returns the ball offset from its resting spot in the first slot,
// t after the drop starts. Negative y is up. Each hop is a parabola of the
// bounce height while x moves linearly to the next slot.
func (pl Plan) BallAt(t time.Duration) (x, y float64) {
	if t <= pl.FallDuration {
		return 0, keyframeY(pl.Fall, t)
	}
	t -= pl.FallDuration
	for _, b := range pl.Bounces {
		if t <= b.Duration {
			p := float64(t) / float64(b.Duration)
			return x + (b.X-x)*p, -4 * b.Height * p * (1 - p)
		}
		t -= b.Duration
		x = b.X
	}
	return x, keyframeY(pl.Settle, t)
}

// PathPoint is one sample of the ball position.
type PathPoint struct {
	AtMS int64   `json:"at_ms"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Path samples BallAt every interval from the drop to the end of the
// settle. The last point is always the end of the settle.
func (pl Plan) Path(interval time.Duration) []PathPoint {
	if interval <= 0 {
		interval = time.Second / 60
	}
	end := pl.SettleStart() + pl.Params.SettleDuration
	points := make([]PathPoint, 0, int(end/interval)+2)
	for t := time.Duration(0); t <= end-interval; t += interval {
		x, y := pl.BallAt(t)
		points = append(points, PathPoint{AtMS: t.Milliseconds(), X: x, Y: y})
	}
	x, y := pl.BallAt(end)
	return append(points, PathPoint{AtMS: end.Milliseconds(), X: x, Y: y})
}

// keyframeY interpolates linearly between frames; outside them it holds
// the nearest end.
func keyframeY(frames []Keyframe, t time.Duration) float64 {
	if len(frames) == 0 {
		return 0
	}
	if t <= frames[0].At {
		return frames[0].Y
	}
	for i := 1; i < len(frames); i++ {
		a, b := frames[i-1], frames[i]
		if t > b.At {
			continue
		}
		if b.At <= a.At {
			return b.Y
		}
		return a.Y + (b.Y-a.Y)*float64(t-a.At)/float64(b.At-a.At)
	}
	return frames[len(frames)-1].Y
}

// simulateFall drops the ball from 1.5·h0 above the floor onto a damped
// spring and samples it until it settles.
func simulateFall(p Params) ([]Keyframe, time.Duration) {
	fps := p.FallFPS
	if fps <= 0 {
		fps = 60
	}
	omega := math.Sqrt(p.FallStiffness / p.FallMass)
	zeta := p.FallDamping / (2 * math.Sqrt(p.FallStiffness*p.FallMass))
	spring := harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)

	frame := time.Second / time.Duration(fps)
	y, v := -1.5*p.DropHeight, 0.0
	frames := []Keyframe{keyframe(0, y)}

	const maxFrames = 600
	for i := 1; i <= maxFrames; i++ {
		y, v = spring.Update(y, v, 0)
		at := time.Duration(i) * frame
		if math.Abs(y) < 0.5 && math.Abs(v) < 5 {
			frames = append(frames, keyframe(at, 0))
			return frames, at
		}
		frames = append(frames, keyframe(at, y))
	}
	frames[len(frames)-1].Y = 0
	return frames, time.Duration(maxFrames) * frame
}

func clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}
