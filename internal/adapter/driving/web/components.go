package web

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	vm "github.com/scicolab/scico/internal/adapter/driving/web/viewmodel"
)

// pageBody is the content of <body>: the intro overlay, the navigation and
// the application shell holding every section.
func pageBody(p vm.PageViewModel) g.Node {
	sections := make([]g.Node, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections = append(sections, sectionNode(s, p.Podcasts))
	}

	return g.Group([]g.Node{
		introOverlay(p.Intro),
		navbar(p.Title, p.Nav),
		Main(ID("app"), Class("app-shell"), g.Attr("aria-hidden", "true"),
			background(p.BackgroundURL, p.Palette),
			hero(p.Title, p.Tagline, p.Hero),
			g.Group(sections),
			connectSection(),
		),
		Div(ID("toasts"), Class("toast-stack"), g.Attr("aria-live", "polite")),
	})
}

// introOverlay renders the letters and the ball. The ball carries the last
// letter as its glyph and shows it once it morphs. motion.js plays the
// compiled timeline on top of it.
func introOverlay(in vm.IntroViewModel) g.Node {
	var glyph string
	if n := len(in.Letters); n > 0 {
		glyph = in.Letters[n-1]
	}
	letters := make([]g.Node, 0, len(in.Letters))
	for i, l := range in.Letters {
		letters = append(letters, Span(
			Class("intro__letter"),
			g.Attr("data-index", strconv.Itoa(i)),
			g.Text(l),
		))
	}
	return Div(ID("intro"), Class("intro"),
		g.Attr("role", "presentation"),
		g.Attr("data-timeline", in.TimelineURL),
		g.Attr("data-safety-ms", strconv.FormatInt(in.SafetyMS, 10)),
		Div(Class("intro__stage"),
			g.Group(letters),
			Span(Class("intro__ball"), g.Attr("aria-hidden", "true"),
				Span(Class("intro__glyph"), g.Text(glyph)),
			),
			Div(Class("intro__impacts"), g.Attr("aria-hidden", "true")),
		),
	)
}

func navbar(title string, items []vm.NavItemViewModel) g.Node {
	links := make([]g.Node, 0, len(items))
	for _, it := range items {
		links = append(links, Li(A(Href(it.Href), g.Attr("data-section", it.ID), g.Text(it.Label))))
	}
	return Nav(Class("navbar"), g.Attr("aria-label", "Primary"),
		A(Href("#home"), Class("navbar__brand"), g.Text(title)),
		Ul(Class("navbar__links"), g.Group(links)),
	)
}

// background holds the particle canvas. Reduced-motion viewers get the
// static snapshot instead.
func background(snapshotURL, palette string) g.Node {
	return Div(Class("bg-field"), g.Attr("aria-hidden", "true"),
		g.Attr("data-snapshot", snapshotURL),
		g.Attr("data-palette", palette),
		g.El("canvas", ID("particles")),
	)
}

func hero(title, tagline string, h vm.HeroViewModel) g.Node {
	return Section(ID("home"), Class("hero hero--"+h.Mode),
		g.Attr("data-mode", h.Mode),
		g.Attr("data-rotation-ms", strconv.FormatInt(h.RotationMS, 10)),
		g.Attr("data-radius", ftoa(h.Radius)),
		g.Attr("data-front-threshold", ftoa(h.FrontThreshold)),
		heroMedia(h),
		Div(Class("hero__wordmark"),
			H1(Class("hero__title"), g.Text(title)),
			P(Class("hero__tagline"), g.Text(tagline)),
		),
	)
}

func heroMedia(h vm.HeroViewModel) g.Node {
	switch h.Mode {
	case "video":
		return Video(Class("hero__video"), Src(h.Video),
			g.Attr("autoplay"), g.Attr("muted"), g.Attr("loop"), g.Attr("playsinline"),
		)
	case "rotating", "single":
		items := make([]g.Node, 0, len(h.Images))
		for i, im := range h.Images {
			items = append(items, Img(Class("hero__item"), Src(im.Src), Alt(im.Alt),
				g.Attr("data-index", strconv.Itoa(i)),
				Style(fmt.Sprintf("transform:%s;opacity:%.3f;filter:blur(%.2fpx);z-index:%d",
					im.Transform, im.Opacity, im.Blur, im.ZIndex)),
			))
		}
		return Div(Class("hero__ring"), g.Group(items))
	case "grid":
		items := make([]g.Node, 0, len(h.Images))
		for _, im := range h.Images {
			items = append(items, Img(Class("hero__cell"), Src(im.Src), Alt(im.Alt)))
		}
		return Div(Class("hero__grid"), g.Group(items))
	}
	return nil
}

func sectionNode(s vm.SectionViewModel, hooks []string) g.Node {
	var body g.Node
	if s.BodyHTML != "" {
		body = Div(Class("section__body"), g.Raw(s.BodyHTML))
	}
	var eyebrow g.Node
	if s.Eyebrow != "" {
		eyebrow = P(Class("section__eyebrow"), g.Text(s.Eyebrow))
	}
	var cta g.Node
	if s.CTA != "" {
		cta = A(Class("btn"), Href(s.CTAHref), g.Text(s.CTA))
	}
	var hookList g.Node
	if s.ID == "podcasts" && len(hooks) > 0 {
		hookList = podcastHooks(hooks)
	}

	tracks := make([]g.Node, 0, len(s.Tracks))
	for _, t := range s.Tracks {
		tracks = append(tracks, marquee(t))
	}

	return Section(ID(s.ID), Class("section section--"+s.ID),
		Div(Class("section__inner animate-in"), g.Attr("data-animate"),
			eyebrow,
			H2(Class("section__title"), g.Text(s.Title)),
			body,
			hookList,
		),
		g.Group(tracks),
		cta,
	)
}

func podcastHooks(hooks []string) g.Node {
	items := make([]g.Node, 0, len(hooks))
	for i, h := range hooks {
		cls := "podcast-hooks__item"
		if i == 0 {
			cls += " is-active"
		}
		items = append(items, Li(Class(cls), g.Text(h)))
	}
	return Ul(Class("podcast-hooks"), g.Group(items))
}

// marquee renders a track with both copies of its content in one strip.
func marquee(t vm.TrackViewModel) g.Node {
	items := make([]g.Node, 0, len(t.Items))
	for _, it := range t.Items {
		alt, hidden := it.Alt, g.Node(nil)
		if it.Duplicate {
			alt, hidden = "", g.Attr("aria-hidden", "true")
		}
		items = append(items, Img(Class("marquee__item"), Src(it.Src), Alt(alt),
			Width(strconv.Itoa(t.ItemWidth)), Height(strconv.Itoa(t.ItemHeight)),
			g.Attr("loading", "lazy"),
			g.Attr("data-placeholder", it.Placeholder),
			hidden,
		))
	}

	attrs := []g.Node{
		Class("marquee marquee--" + t.Direction),
		g.Attr("data-track", t.Name),
		g.Attr("data-direction", t.Direction),
		g.Attr("data-period-ms", strconv.FormatInt(t.PeriodMS, 10)),
		g.Attr("data-length", ftoa(t.Length)),
	}
	if t.PauseOnHover {
		attrs = append(attrs, g.Attr("data-pause-on-hover", "true"))
	}
	return Div(g.Group(attrs), Div(Class("marquee__strip"), g.Group(items)))
}

// connectSection holds the two form panels. They are loaded as fragments so
// a statically built page still receives a CSRF cookie.
func connectSection() g.Node {
	return Section(ID("connect"), Class("connect-section"),
		Div(Class("connect-section__inner"),
			Div(Class("connect-cards"),
				formSlot("join"),
				formSlot("contact"),
			),
		),
	)
}

func formSlot(kind string) g.Node {
	return Div(ID("form-"+kind), Class("connect-card connect-card--loading"),
		g.Attr("hx-get", "/forms/"+kind),
		g.Attr("hx-trigger", "load"),
		g.Attr("hx-swap", "outerHTML"),
	)
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
