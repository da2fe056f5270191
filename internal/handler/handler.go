package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"applogs/internal/logger"
)

// Facility is the part of *logger.Logger the routes need.
type Facility interface {
	Session() logger.Session
	Named(name string) *slog.Logger
	Unregistered(name string) *slog.Logger
}

// Handler exposes the log session over HTTP.
type Handler struct {
	logs Facility
	log  *slog.Logger
}

// New creates a new Handler. Requests are logged through log.
func New(logs Facility, log *slog.Logger) *Handler {
	return &Handler{logs: logs, log: log}
}

// Routes returns the chi router with all routes registered.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(h.log))

	r.Get("/healthz", h.health)
	r.Get("/api/session", h.getSession)
	r.Post("/api/logs", h.emitLog)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
