// Package web implements the HTML driving adapter: the page shell, the form
// panel fragments and the generated graphics.
package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"github.com/scicolab/scico/internal/application"
	"github.com/scicolab/scico/internal/content"
)

// Handler is the web driving adapter that serves HTML via templ components.
type Handler struct {
	provider *content.Provider
	motion   *application.MotionService
	forms    *application.FormService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	provider *content.Provider,
	motion *application.MotionService,
	forms *application.FormService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		provider: provider,
		motion:   motion,
		forms:    forms,
		logger:   logger,
	}
}

// Page returns the full single-page document for the current catalog.
func (h *Handler) Page() templ.Component {
	cat := h.provider.Get()
	page := toPageViewModel(cat, h.motion.Hero(0, false), h.motion.Timeline(false))

	title := page.Title
	if page.Tagline != "" {
		title += " | " + page.Tagline
	}
	return Layout(title, page.Description, nodeComponent(pageBody(page)))
}

// RenderPage writes the full document to w.
func (h *Handler) RenderPage(ctx context.Context, w io.Writer) error {
	return h.Page().Render(ctx, w)
}

// Index renders the page on request instead of serving a built index.html.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	templ.Handler(h.Page()).ServeHTTP(w, r)
}

// render writes n as an HTML fragment.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, n g.Node) {
	templ.Handler(nodeComponent(n),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			h.logger.Error("failed to render fragment", "path", r.URL.Path, "error", err)
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}
