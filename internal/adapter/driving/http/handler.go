package httphandler

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/scicolab/scico/internal/application"
	"github.com/scicolab/scico/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the motion JSON API.
type Handler struct {
	motion  *application.MotionService
	outbox  driven.SubmissionOutbox
	version func() int
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a Handler. outbox may be nil when submissions are only
// logged; version reports the current content catalog version.
func NewHandler(
	motion *application.MotionService,
	outbox driven.SubmissionOutbox,
	version func() int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		motion:  motion,
		outbox:  outbox,
		version: version,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterAPIRoutes adds the API routes to mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/intro/timeline", h.IntroTimeline)
	mux.HandleFunc("GET /api/v1/tracks", h.ListTracks)
	mux.HandleFunc("GET /api/v1/hero", h.Hero)
}

// ApplyMiddleware wraps next with logging and recovery middleware.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	return loggingMiddleware(logger, wrapped)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// IntroTimeline returns the compiled intro sequence. The reduced query
// parameter selects the reduced-motion rendition.
func (h *Handler) IntroTimeline(w http.ResponseWriter, r *http.Request) {
	reduced, ok := boolParam(w, r, "reduced")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.motion.Timeline(reduced))
}

// ListTracks returns every marquee track.
func (h *Handler) ListTracks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TracksResponse{Tracks: h.motion.Tracks()})
}

// Hero returns the hero configuration for the viewer's container width.
func (h *Handler) Hero(w http.ResponseWriter, r *http.Request) {
	reduced, ok := boolParam(w, r, "reduced")
	if !ok {
		return
	}

	var width float64
	if raw := r.URL.Query().Get("width"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, "invalid width")
			return
		}
		width = v
	}

	writeJSON(w, http.StatusOK, h.motion.Hero(width, reduced))
}

// Health reports liveness, the content catalog version and, when an outbox
// is configured, the number of submissions awaiting delivery.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   h.now().UTC().Format(time.RFC3339),
	}
	if h.version != nil {
		resp.ContentVersion = h.version()
	}
	if h.outbox != nil {
		pending, err := h.outbox.ListPending(r.Context(), 0)
		if err != nil {
			h.logger.Error("failed to count pending submissions", "error", err)
			writeError(w, http.StatusServiceUnavailable, "submission store unavailable")
			return
		}
		total, err := h.outbox.Count(r.Context())
		if err != nil {
			h.logger.Error("failed to count submissions", "error", err)
			writeError(w, http.StatusServiceUnavailable, "submission store unavailable")
			return
		}
		n := len(pending)
		resp.PendingSubmissions = &n
		resp.TotalSubmissions = &total
	}
	writeJSON(w, http.StatusOK, resp)
}

// boolParam parses an optional boolean query parameter. It writes a 400 and
// returns false when the value is malformed.
func boolParam(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return false, false
	}
	return v, true
}
