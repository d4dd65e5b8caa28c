// Package api serves the task list over HTTP: JSON task routes that drive the
// same screen view models as the TUI, and a server-sent event stream of the
// home screen state and its effects.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thenoetrevino/mytasks/internal/app"
)

// DefaultWriteTimeout bounds how long a write request waits for its screen to
// report an outcome
const DefaultWriteTimeout = 5 * time.Second

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	app          *app.App
	writeTimeout time.Duration
}

// New creates a new Handlers instance.
func New(a *app.App) *Handlers {
	return &Handlers{app: a, writeTimeout: DefaultWriteTimeout}
}

// Router mounts every route on a chi router
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Post("/tasks/{id}/toggle", h.ToggleTask)
		r.Get("/home/stream", h.HomeStream)
	})

	return r
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	return strconv.ParseInt(idStr, 10, 64)
}

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("api: failed to write response", "error", err)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorBody{Error: message})
}
