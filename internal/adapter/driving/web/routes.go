package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers the form, graphics and embedded asset routes on
// mux. The page itself is served from the build output unless the caller
// also mounts Index.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /forms/{kind}", h.FormPanel)
	mux.HandleFunc("POST /forms/{kind}", h.SubmitForm)
	mux.HandleFunc("GET /forms/{kind}/ready", h.FormReady)

	mux.HandleFunc("GET /placeholder/{kind}/{n}", h.Placeholder)
	mux.HandleFunc("GET /background.svg", h.Background)
}
