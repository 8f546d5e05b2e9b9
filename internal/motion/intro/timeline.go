package intro

import (
	"time"

	"github.com/scicolab/scico/internal/motion"
)

// Cue is one timeline entry for the browser player.
type Cue struct {
	AtMS      int64     `json:"at_ms"`
	Kind      EventKind `json:"kind"`
	Revealed  int       `json:"revealed"`
	ImpactID  string    `json:"impact_id,omitempty"`
	X         float64   `json:"x,omitempty"`
	Intensity float64   `json:"intensity,omitempty"`
}

// Timeline is the compiled intro: the plan geometry, the sampled ball path
// and every cue in order. Reduced motion parks the ball in the last slot.
type Timeline struct {
	Letters       string      `json:"letters"`
	Slot          float64     `json:"slot"`
	Gap           float64     `json:"gap"`
	StageWidth    float64     `json:"stage_width"`
	Reduced       bool        `json:"reduced"`
	Plan          *Plan       `json:"plan,omitempty"`
	Path          []PathPoint `json:"path"`
	SettleStartMS int64       `json:"settle_start_ms,omitempty"`
	Cues          []Cue       `json:"cues"`
	DurationMS    int64       `json:"duration_ms"`
	SafetyMS      int64       `json:"safety_ms"`
	HandoffMS     int64       `json:"handoff_ms"`
	ImpactLifeMS  int64       `json:"impact_life_ms"`
}

// PathInterval is the sampling step of Timeline.Path.
const PathInterval = 16 * time.Millisecond

// CompileOptions tunes Compile.
type CompileOptions struct {
	Reduced bool
	// Safety is the caller's forced-completion timeout.
	Safety time.Duration
	// Handoff is the delay between hiding the overlay and flagging the
	// content as ready.
	Handoff time.Duration
}

// Compile plays the plan on a virtual clock and records its cues. The
// result is deterministic apart from impact identifiers.
func Compile(plan Plan, opts CompileOptions) Timeline {
	sched := motion.NewManualScheduler(motion.DefaultFrameInterval)

	tl := Timeline{
		Letters:      plan.Params.Letters,
		Slot:         plan.Params.Slot,
		Gap:          plan.Params.Gap,
		StageWidth:   plan.Params.StageWidth(),
		Reduced:      opts.Reduced,
		SafetyMS:     opts.Safety.Milliseconds(),
		HandoffMS:    opts.Handoff.Milliseconds(),
		ImpactLifeMS: plan.Params.ImpactLifetime.Milliseconds(),
	}
	if opts.Reduced {
		tl.Path = []PathPoint{{X: plan.Params.Step() * bounceCount}}
	} else {
		p := plan
		tl.Plan = &p
		tl.Path = plan.Path(PathInterval)
		tl.SettleStartMS = plan.SettleStart().Milliseconds()
	}

	c := NewController(sched, plan, WithObserver(func(e Event) {
		cue := Cue{AtMS: e.At.Milliseconds(), Kind: e.Kind, Revealed: e.Revealed}
		if e.Kind == EventImpact || e.Kind == EventImpactExpired {
			cue.ImpactID = e.Impact.ID
			cue.X = e.Impact.X
			cue.Intensity = e.Impact.Intensity
		}
		tl.Cues = append(tl.Cues, cue)
		if e.Kind == EventComplete {
			tl.DurationMS = cue.AtMS
		}
	}))
	c.Start(opts.Reduced)

	limit := plan.Total() + plan.Params.ImpactLifetime + plan.Params.ReducedEnter + plan.Params.ReducedDelay
	sched.RunUntilIdle(limit)
	return tl
}
