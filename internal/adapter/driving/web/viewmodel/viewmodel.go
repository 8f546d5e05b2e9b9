// Package viewmodel defines presentation-ready structs for the page
// components. View models decouple rendering from catalog and domain types.
package viewmodel

// PageViewModel holds everything needed to render the single page.
type PageViewModel struct {
	Title       string
	Tagline     string
	Description string
	Nav         []NavItemViewModel
	Intro       IntroViewModel
	Hero        HeroViewModel
	Podcasts    []string
	Sections    []SectionViewModel
	// BackgroundURL is the static particle field shown to reduced-motion
	// viewers.
	BackgroundURL string
	// Palette is the JSON gradient palette of the live particle field.
	Palette string
}

// NavItemViewModel is one link of the navigation pill.
type NavItemViewModel struct {
	ID    string
	Label string
	Href  string
}

// IntroViewModel drives the intro overlay.
type IntroViewModel struct {
	Letters     []string
	TimelineURL string
	SafetyMS    int64
}

// HeroViewModel describes the hero media for the initial render.
type HeroViewModel struct {
	Mode           string
	Video          string
	RotationMS     int64
	Radius         float64
	FrontThreshold float64
	Images         []HeroImageViewModel
}

// HeroImageViewModel is one carousel slot at angle zero.
type HeroImageViewModel struct {
	Src       string
	Alt       string
	Transform string
	Opacity   float64
	Blur      float64
	ZIndex    int
}

// TrackViewModel is one marquee strip. Items already holds both copies.
type TrackViewModel struct {
	Name         string
	Direction    string
	PeriodMS     int64
	Length       float64
	PauseOnHover bool
	ItemWidth    int
	ItemHeight   int
	Items        []TrackItemViewModel
}

// TrackItemViewModel is one image of a marquee strip.
type TrackItemViewModel struct {
	Src         string
	Placeholder string
	Alt         string
	// Duplicate marks the second copy, hidden from assistive technology.
	Duplicate bool
}

// SectionViewModel is one content block.
type SectionViewModel struct {
	ID       string
	Eyebrow  string
	Title    string
	BodyHTML string
	Tracks   []TrackViewModel
	CTA      string
	CTAHref  string
}

// FormViewModel holds the state of a form panel fragment.
type FormViewModel struct {
	Kind      string
	Title     string
	Action    string
	ReadyURL  string
	CSRFToken string
	Fields    []FieldViewModel
	Ready     bool
	Toast     *ToastViewModel
}

// FieldViewModel is one input of a form panel.
type FieldViewModel struct {
	Name      string
	Label     string
	Type      string
	Value     string
	Error     string
	Multiline bool
	MaxRunes  int
}

// ToastViewModel is a transient notification.
type ToastViewModel struct {
	Message   string
	Kind      string
	DismissMS int64
}
