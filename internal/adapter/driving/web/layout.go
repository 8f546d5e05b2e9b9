package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout wraps body in the HTML document shell with the site styles and
// scripts.
func Layout(title, description string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var content strings.Builder
		if err := body.Render(ctx, &content); err != nil {
			return err
		}
		return Doctype(
			HTML(Lang("en"),
				head(title, description),
				Body(Class("is-intro"),
					g.Raw(content.String()),
					scripts(),
				),
			),
		).Render(w)
	})
}

func head(title, description string) g.Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		Meta(Name("description"), Content(description)),
		TitleEl(g.Text(title)),
		Link(Rel("icon"), Href("/static/favicon.svg"), Type("image/svg+xml")),
		Link(Rel("stylesheet"), Href("/static/site.css")),
	)
}

func scripts() g.Node {
	return g.Group([]g.Node{
		Script(Src(htmxSrc), Defer()),
		Script(Src("/static/csrf.js"), Defer()),
		Script(Src("/static/motion.js"), Defer()),
	})
}

// nodeComponent adapts a gomponents node to templ.
func nodeComponent(n g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}
