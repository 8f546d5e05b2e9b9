package application

import (
	"sync"

	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/motion/carousel"
	"github.com/scicolab/scico/internal/motion/intro"
)

// TrackView is the browser-facing configuration of one marquee track.
type TrackView struct {
	Name         string  `json:"name"`
	Items        int     `json:"items"`
	ItemWidth    float64 `json:"item_width"`
	PeriodMS     int64   `json:"period_ms"`
	Direction    string  `json:"direction"`
	PauseOnHover bool    `json:"pause_on_hover"`
	Length       float64 `json:"length"`
	StripWidth   float64 `json:"strip_width"`
}

// HeroView is the hero configuration for a viewer.
type HeroView struct {
	Mode           string          `json:"mode"`
	Video          string          `json:"video,omitempty"`
	Images         []string        `json:"images"`
	RotationMS     int64           `json:"rotation_ms"`
	Radius         float64         `json:"radius"`
	FrontThreshold float64         `json:"front_threshold"`
	Items          []carousel.Item `json:"items"`
}

// MotionService derives the motion configuration served to the page from
// the current content catalog. Compiled intro timelines are cached until
// the catalog changes.
type MotionService struct {
	provider *content.Provider

	mu        sync.Mutex
	version   int
	timelines map[bool]intro.Timeline
}

// NewMotionService creates a MotionService reading from provider.
func NewMotionService(provider *content.Provider) *MotionService {
	return &MotionService{provider: provider, timelines: make(map[bool]intro.Timeline)}
}

// IntroParams returns the intro tuning for the current catalog.
func (s *MotionService) IntroParams() intro.Params {
	p := intro.DefaultParams()
	if letters := s.provider.Get().Intro.Letters; letters != "" {
		p.Letters = letters
	}
	return p
}

// Timeline returns the compiled intro for a viewer with or without the
// reduced-motion preference.
func (s *MotionService) Timeline(reduced bool) intro.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v := s.provider.Version(); v != s.version {
		s.version = v
		clear(s.timelines)
	}
	if tl, ok := s.timelines[reduced]; ok {
		return tl
	}

	cat := s.provider.Get()
	tl := intro.Compile(intro.NewPlan(s.IntroParams()), intro.CompileOptions{
		Reduced: reduced,
		Safety:  cat.Intro.SafetyTimeout,
		Handoff: cat.Intro.Handoff,
	})
	s.timelines[reduced] = tl
	return tl
}

// Tracks returns every marquee track.
func (s *MotionService) Tracks() []TrackView {
	tracks := s.provider.Get().ModelTracks()
	out := make([]TrackView, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, TrackView{
			Name:         t.Name,
			Items:        t.Items,
			ItemWidth:    t.ItemWidth,
			PeriodMS:     t.Period.Milliseconds(),
			Direction:    string(t.Direction),
			PauseOnHover: t.PauseOnHover,
			Length:       t.Length(),
			StripWidth:   t.StripWidth(),
		})
	}
	return out
}

// Hero returns the hero configuration for a container of the given width.
func (s *MotionService) Hero(width float64, reduced bool) HeroView {
	h := s.provider.Get().Hero
	images := h.Images
	if len(images) > carousel.MaxItems {
		images = images[:carousel.MaxItems]
	}
	threshold := h.FrontThreshold
	if threshold <= 0 {
		threshold = carousel.DefaultFrontThreshold
	}
	base := h.BaseRadius
	if base <= 0 {
		base = carousel.DefaultBaseRadius
	}

	r := carousel.Radius(width, base)
	mode := carousel.SelectMode(h.Video, len(images), reduced)
	return HeroView{
		Mode:           mode.String(),
		Video:          h.Video,
		Images:         images,
		RotationMS:     h.Rotation.Milliseconds(),
		Radius:         r,
		FrontThreshold: threshold,
		Items:          carousel.Layout(0, carousel.Count(len(images)), r, threshold),
	}
}
