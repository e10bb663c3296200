// Package api declares the dashboard's HTTP routes and handlers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/statusboard/internal/dashboard"
	"github.com/okian/statusboard/pkg/logger"
)

// Dashboard is the state the HTTP layer renders and refreshes.
type Dashboard interface {
	FetchMessage(ctx context.Context)
	CheckHealth(ctx context.Context)
	Snapshot() dashboard.Snapshot
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	dashboardHandler *dashboardHandler
	stateHandler     *StateHandler
	healthHandler    *HealthHandler
}

// Option configures a Server.
type Option func(*options)

type options struct {
	title      string
	backendURL string
	version    string
	log        logger.Logger
	now        func() time.Time
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithBackendURL sets the backend address shown in the page footer.
func WithBackendURL(url string) Option {
	return func(o *options) { o.backendURL = url }
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(o *options) {
		if v != "" {
			o.version = v
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(d Dashboard, opts ...Option) *Server {
	o := options{
		title:   "Intelligent Development Assistant",
		version: "dev",
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		dashboardHandler: newDashboardHandler(d, o.title, o.backendURL, o.log),
		stateHandler:     NewStateHandler(d),
		healthHandler:    NewHealthHandler(o.version, o.now),
	}
}

// Handler returns a chi router with every dashboard route mounted.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

// Register attaches middleware and all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "index"))
	r.Post("/refresh/message", MetricsMiddleware(s.dashboardHandler.HandleRefreshMessage, "refresh_message"))
	r.Post("/refresh/health", MetricsMiddleware(s.dashboardHandler.HandleRefreshHealth, "refresh_health"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", MetricsMiddleware(s.stateHandler.HandleState, "api_state"))
		r.Post("/message/refresh", MetricsMiddleware(s.stateHandler.HandleRefreshMessage, "api_refresh_message"))
		r.Post("/health/refresh", MetricsMiddleware(s.stateHandler.HandleRefreshHealth, "api_refresh_health"))
	})

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Handle("/metrics", MetricsHandler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// detached keeps backend requests alive when the browser goes away; an
// in-flight fetch is never cancelled.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
