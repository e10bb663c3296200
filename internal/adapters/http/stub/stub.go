// Package stub serves a local stand-in for the development assistant API so
// the dashboard can run without the real backend.
package stub

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/statusboard/internal/backend"
)

// Default payloads.
const (
	DefaultMessage = "Intelligent Development Assistant API is running!"
	DefaultStatus  = "healthy"
)

// Handler is the stub backend.
type Handler struct {
	message string
	status  string
}

// Option configures a Handler.
type Option func(*Handler)

// WithMessage overrides the greeting returned by GET /.
func WithMessage(msg string) Option {
	return func(h *Handler) { h.message = msg }
}

// WithStatus overrides the status returned by GET /health.
func WithStatus(status string) Option {
	return func(h *Handler) { h.status = status }
}

// New creates a stub backend handler.
func New(opts ...Option) *Handler {
	h := &Handler{message: DefaultMessage, status: DefaultStatus}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the stub routes to r.
func (h *Handler) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Use(middleware.Recoverer)
	r.Get(backend.MessagePath, h.handleRoot)
	r.Get(backend.HealthPath, h.handleHealth)
}

// Router returns a chi router serving the stub routes.
func (h *Handler) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	h.Register(ctx, r)
	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, backend.MessageResponse{Message: h.message})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, backend.HealthResponse{Status: h.status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
