package web

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	vm "github.com/scicolab/scico/internal/adapter/driving/web/viewmodel"
	"github.com/scicolab/scico/internal/application"
	"github.com/scicolab/scico/internal/content"
	"github.com/scicolab/scico/internal/domain/model"
	"github.com/scicolab/scico/internal/motion/intro"
	"github.com/scicolab/scico/internal/motion/particles"
)

// fieldSpec is the presentation of one form field.
type fieldSpec struct {
	label     string
	inputType string
	multiline bool
	maxRunes  int
}

var fieldSpecs = map[string]fieldSpec{
	model.FieldName:          {label: "Name", inputType: "text"},
	model.FieldEmail:         {label: "Email", inputType: "email"},
	model.FieldAboutYourself: {label: "Tell me about yourself", multiline: true},
	model.FieldWhyJoin:       {label: "Why do you want to join us?", multiline: true},
	model.FieldWhyHire:       {label: "Why should we hire you? (one line)", inputType: "text", maxRunes: model.WhyHireMaxRunes},
	model.FieldSubject:       {label: "Subject", inputType: "text"},
	model.FieldDescription:   {label: "Description", multiline: true},
	model.FieldContactEmail:  {label: "Contact Email", inputType: "email"},
}

var formTitles = map[model.FormKind]string{
	model.FormJoin:    "Join Us",
	model.FormContact: "Contact Us",
}

// toPageViewModel builds the page from the catalog and the hero
// configuration for the default viewport.
func toPageViewModel(cat *content.Catalog, hero application.HeroView, timeline intro.Timeline) vm.PageViewModel {
	nav := make([]vm.NavItemViewModel, 0, len(cat.Nav))
	for _, n := range cat.Nav {
		nav = append(nav, vm.NavItemViewModel{ID: n.ID, Label: n.Label, Href: "#" + n.ID})
	}

	sections := make([]vm.SectionViewModel, 0, len(cat.Sections))
	for _, s := range cat.Sections {
		sections = append(sections, toSectionViewModel(cat, s))
	}

	return vm.PageViewModel{
		Title:       cat.Site.Title,
		Tagline:     cat.Site.Tagline,
		Description: cat.Site.Description,
		Nav:         nav,
		Intro: vm.IntroViewModel{
			Letters:     strings.Split(timeline.Letters, ""),
			TimelineURL: "/api/v1/intro/timeline",
			SafetyMS:    timeline.SafetyMS,
		},
		Hero:          toHeroViewModel(hero),
		Podcasts:      cat.Podcasts,
		Sections:      sections,
		BackgroundURL: "/background.svg",
		Palette:       paletteJSON(),
	}
}

func paletteJSON() string {
	b, err := json.Marshal(particles.Browser())
	if err != nil {
		return ""
	}
	return string(b)
}

func toHeroViewModel(h application.HeroView) vm.HeroViewModel {
	images := make([]vm.HeroImageViewModel, 0, len(h.Items))
	for _, it := range h.Items {
		images = append(images, vm.HeroImageViewModel{
			Src:       h.Images[it.Index],
			Alt:       fmt.Sprintf("Hero image %d", it.Index+1),
			Transform: it.Transform(),
			Opacity:   it.Opacity,
			Blur:      it.Blur,
			ZIndex:    it.ZIndex,
		})
	}
	return vm.HeroViewModel{
		Mode:           h.Mode,
		Video:          h.Video,
		RotationMS:     h.RotationMS,
		Radius:         h.Radius,
		FrontThreshold: h.FrontThreshold,
		Images:         images,
	}
}

func toSectionViewModel(cat *content.Catalog, s content.Section) vm.SectionViewModel {
	sec := vm.SectionViewModel{
		ID:       s.ID,
		Eyebrow:  s.Eyebrow,
		Title:    s.Title,
		BodyHTML: RenderMarkdown(s.Body),
		CTA:      s.CTA,
	}
	if s.CTA != "" {
		sec.CTAHref = "#connect"
	}
	for _, ref := range []string{s.Track, s.ExtraTrack} {
		if t, ok := cat.Track(ref); ok {
			sec.Tracks = append(sec.Tracks, toTrackViewModel(t))
		}
	}
	return sec
}

// toTrackViewModel lays out both copies of a track's content.
func toTrackViewModel(t content.Track) vm.TrackViewModel {
	m := t.Model()
	style, _ := m.Placeholder.Style()

	items := make([]vm.TrackItemViewModel, 0, t.Items)
	for n := 1; n <= t.Items; n++ {
		items = append(items, vm.TrackItemViewModel{
			Src:         t.ImageURL(n),
			Placeholder: placeholderURL(m.Placeholder, n),
			Alt:         style.Label + " " + strconv.Itoa(n),
		})
	}
	doubled := model.Doubled(items)
	for i := len(items); i < len(doubled); i++ {
		doubled[i].Duplicate = true
	}

	return vm.TrackViewModel{
		Name:         m.Name,
		Direction:    string(m.Direction),
		PeriodMS:     m.Period.Milliseconds(),
		Length:       m.Length(),
		PauseOnHover: m.PauseOnHover,
		ItemWidth:    style.Width,
		ItemHeight:   style.Height,
		Items:        doubled,
	}
}

func placeholderURL(kind model.PlaceholderKind, n int) string {
	return fmt.Sprintf("/placeholder/%s/%d", kind, n)
}

// toFormViewModel renders the state of panel.
func toFormViewModel(panel *application.FormPanel, csrf string) vm.FormViewModel {
	kind := panel.Kind()
	values := panel.Values()
	errs := panel.Errors()

	fields := make([]vm.FieldViewModel, 0, len(model.FormFields[kind]))
	for _, name := range model.FormFields[kind] {
		spec := fieldSpecs[name]
		fields = append(fields, vm.FieldViewModel{
			Name:      name,
			Label:     spec.label,
			Type:      spec.inputType,
			Value:     values[name],
			Error:     errs[name],
			Multiline: spec.multiline,
			MaxRunes:  spec.maxRunes,
		})
	}

	form := vm.FormViewModel{
		Kind:      string(kind),
		Title:     formTitles[kind],
		Action:    "/forms/" + string(kind),
		ReadyURL:  "/forms/" + string(kind) + "/ready",
		CSRFToken: csrf,
		Fields:    fields,
		Ready:     panel.Ready(),
	}
	if t := panel.Toast(); t != nil {
		form.Toast = &vm.ToastViewModel{
			Message:   t.Message,
			Kind:      string(t.Kind),
			DismissMS: t.DismissAfter.Milliseconds(),
		}
	}
	return form
}
