package intro

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scicolab/scico/internal/motion"
)

func TestBounceHeights_EvenPowers(t *testing.T) {
	got := BounceHeights(250, 0.75)
	want := []float64{140.625, 79.1015625, 44.49462890625, 25.0282287597656}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})); diff != "" {
		t.Fatalf("BounceHeights mismatch (-want +got):\n%s", diff)
	}
}

func TestFlightDuration_Floor(t *testing.T) {
	assert.Equal(t, 600*time.Millisecond, FlightDuration(25, 250, 0.8, 600*time.Millisecond))
	assert.Equal(t, 800*time.Millisecond, FlightDuration(250, 250, 0.8, 600*time.Millisecond))
}

func TestImpactIntensity(t *testing.T) {
	assert.Equal(t, 1.5, ImpactIntensity(-1))
	assert.InDelta(t, 1.0, ImpactIntensity(0), 1e-9)
	assert.InDelta(t, 0.4, ImpactIntensity(3), 1e-9)
	assert.InDelta(t, 0.2, ImpactIntensity(10), 1e-9)
}

func TestNewPlan_Geometry(t *testing.T) {
	plan := NewPlan(DefaultParams())

	require.Len(t, plan.Bounces, 4)
	for i, b := range plan.Bounces {
		assert.Equal(t, 84.0*float64(i+1), b.X)
		assert.GreaterOrEqual(t, b.Duration, 600*time.Millisecond)
	}
	assert.Equal(t, 400.0, DefaultParams().StageWidth())

	require.NotEmpty(t, plan.Fall)
	assert.Equal(t, -375.0, plan.Fall[0].Y)
	assert.Zero(t, plan.Fall[len(plan.Fall)-1].Y)
	assert.Greater(t, plan.FallDuration, time.Duration(0))
	assert.Less(t, plan.FallDuration, 2*time.Second)

	require.Len(t, plan.Settle, 7)
	assert.Equal(t, 1200*time.Millisecond, plan.Settle[6].At)
}

func TestController_NormalSequence(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	plan := NewPlan(DefaultParams())

	var events []Event
	completions := 0
	c := NewController(sched, plan,
		WithObserver(func(e Event) { events = append(events, e) }),
		WithCompletion(func() { completions++ }),
	)
	c.Start(false)
	assert.Equal(t, PhaseFalling, c.Phase())

	sched.Advance(plan.FallDuration)
	assert.Equal(t, 1, c.Revealed())
	require.Len(t, c.Impacts(), 1)
	assert.Equal(t, 1.5, c.Impacts()[0].Intensity)

	for i, b := range plan.Bounces {
		sched.Advance(b.Duration)
		assert.Equal(t, i+2, c.Revealed())
	}
	assert.Equal(t, PhaseSettling, c.Phase())
	assert.False(t, c.Morphed())

	sched.Advance(plan.Params.SettleDuration)
	assert.True(t, c.Morphed())
	assert.Zero(t, completions)

	sched.Advance(plan.Params.MorphDelay)
	assert.Equal(t, 1, completions)
	assert.Equal(t, PhaseDone, c.Phase())
	assert.Empty(t, c.Impacts(), "impacts expire")

	sched.Advance(time.Minute)
	assert.Equal(t, 1, completions)

	var kinds []EventKind
	for _, e := range events {
		if e.Kind == EventImpact {
			kinds = append(kinds, e.Kind)
		}
	}
	assert.Len(t, kinds, 5)
	assert.Equal(t, EventComplete, events[len(events)-1].Kind)
}

func TestController_ReducedMotion(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	plan := NewPlan(DefaultParams())
	completions := 0
	c := NewController(sched, plan, WithCompletion(func() { completions++ }))

	c.Start(true)
	assert.Equal(t, 5, c.Revealed(), "whole word revealed immediately")
	assert.Empty(t, c.Impacts())

	sched.Advance(699 * time.Millisecond)
	assert.Zero(t, completions)
	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, completions)
}

func TestController_StopCancelsEverything(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	plan := NewPlan(DefaultParams())
	completions := 0
	c := NewController(sched, plan, WithCompletion(func() { completions++ }))

	c.Start(false)
	sched.Advance(plan.FallDuration + 100*time.Millisecond)
	c.Stop()

	frames, timers := sched.Pending()
	assert.Zero(t, frames)
	assert.Zero(t, timers)

	sched.Advance(time.Minute)
	assert.Zero(t, completions)
	assert.Equal(t, PhaseStopped, c.Phase())
}

func TestController_SafetyTimerWithGuard(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	plan := NewPlan(DefaultParams())

	calls := 0
	forcedPaths := 0
	guard := motion.NewCompletion(sched, 6*time.Second, func(forced bool) {
		calls++
		if forced {
			forcedPaths++
		}
	})
	c := NewController(sched, plan, WithCompletion(func() { guard.Fire() }))
	c.Start(false)

	sched.Advance(time.Minute)
	assert.Equal(t, 1, calls)
	assert.Zero(t, forcedPaths, "normal path completes before the safety timer")
}

func TestController_SafetyTimerForcesWhenStalled(t *testing.T) {
	sched := motion.NewManualScheduler(0)
	plan := NewPlan(DefaultParams())

	calls := 0
	guard := motion.NewCompletion(sched, 2*time.Second, func(bool) { calls++ })
	c := NewController(sched, plan, WithCompletion(func() { guard.Fire() }))
	c.Start(false)

	sched.Advance(time.Minute)
	assert.Equal(t, 1, calls, "late normal completion is a no-op after the forced one")
	assert.Equal(t, PhaseDone, c.Phase())
}

func TestCompile_Timeline(t *testing.T) {
	plan := NewPlan(DefaultParams())
	tl := Compile(plan, CompileOptions{Safety: 6 * time.Second, Handoff: 100 * time.Millisecond})

	require.NotEmpty(t, tl.Cues)
	assert.Equal(t, plan.Total().Milliseconds(), tl.DurationMS)
	assert.Equal(t, int64(6000), tl.SafetyMS)
	assert.NotNil(t, tl.Plan)

	reveals := 0
	completes := 0
	var last int64
	for _, cue := range tl.Cues {
		assert.GreaterOrEqual(t, cue.AtMS, last, "cues are chronological")
		last = cue.AtMS
		switch cue.Kind {
		case EventReveal:
			reveals++
		case EventComplete:
			completes++
		}
	}
	assert.Equal(t, 5, reveals)
	assert.Equal(t, 1, completes)
}

func TestCompile_Reduced(t *testing.T) {
	tl := Compile(NewPlan(DefaultParams()), CompileOptions{Reduced: true})

	assert.Nil(t, tl.Plan)
	assert.Equal(t, int64(700), tl.DurationMS)
	require.Len(t, tl.Cues, 2)
	assert.Equal(t, EventReveal, tl.Cues[0].Kind)
	assert.Equal(t, 5, tl.Cues[0].Revealed)
}

func TestPlan_BallAt(t *testing.T) {
	plan := NewPlan(DefaultParams())

	x, y := plan.BallAt(0)
	assert.Zero(t, x)
	assert.Equal(t, -375.0, y, "the drop starts 1.5·h0 above the floor")

	landing := plan.FallDuration
	x, y = plan.BallAt(landing)
	assert.Zero(t, x)
	assert.Zero(t, y)

	for _, b := range plan.Bounces {
		mx, my := plan.BallAt(landing + b.Duration/2)
		assert.InDelta(t, -b.Height, my, 1e-6, "bounce %d apex", b.Index)
		assert.Greater(t, mx, b.X-DefaultParams().Step())
		assert.Less(t, mx, b.X)

		landing += b.Duration
		x, y = plan.BallAt(landing)
		assert.InDelta(t, b.X, x, 1e-9, "bounce %d lands on its slot", b.Index)
		assert.InDelta(t, 0, y, 1e-9)
	}
	assert.Equal(t, landing, plan.SettleStart())

	_, y = plan.BallAt(plan.SettleStart() + 240*time.Millisecond)
	assert.InDelta(t, -8, y, 1e-6, "settle peaks at 0.2 of its duration")

	x, y = plan.BallAt(plan.Total())
	assert.Equal(t, 336.0, x)
	assert.Zero(t, y)
}

func TestPlan_Path(t *testing.T) {
	plan := NewPlan(DefaultParams())
	path := plan.Path(PathInterval)

	require.Greater(t, len(path), 2)
	assert.Equal(t, PathPoint{AtMS: 0, X: 0, Y: -375}, path[0])

	end := path[len(path)-1]
	assert.Equal(t, (plan.SettleStart() + plan.Params.SettleDuration).Milliseconds(), end.AtMS)
	assert.Equal(t, 336.0, end.X)
	assert.Zero(t, end.Y)

	for i := 1; i < len(path); i++ {
		assert.Greater(t, path[i].AtMS, path[i-1].AtMS, "path is chronological")
		assert.GreaterOrEqual(t, path[i].X, path[i-1].X, "ball never moves back")
	}
}

func TestCompile_Path(t *testing.T) {
	plan := NewPlan(DefaultParams())

	tl := Compile(plan, CompileOptions{})
	require.NotEmpty(t, tl.Path)
	assert.Equal(t, -375.0, tl.Path[0].Y)
	assert.Equal(t, plan.SettleStart().Milliseconds(), tl.SettleStartMS)

	reduced := Compile(plan, CompileOptions{Reduced: true})
	assert.Equal(t, []PathPoint{{X: 336}}, reduced.Path)
	assert.Zero(t, reduced.SettleStartMS)
}
