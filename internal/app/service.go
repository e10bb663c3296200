// Package app assembles the dashboard: backend client, fetcher and HTTP
// routes, and owns their lifecycle.
package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/statusboard/internal/adapters/http/api"
	"github.com/okian/statusboard/internal/adapters/http/swagger"
	"github.com/okian/statusboard/internal/backend"
	"github.com/okian/statusboard/internal/dashboard"
	"github.com/okian/statusboard/pkg/logger"
)

// Service owns the dashboard state for the lifetime of the process.
type Service struct {
	mu sync.Mutex

	backendURL     string
	requestTimeout time.Duration
	title          string
	version        string
	httpClient     *http.Client

	client  *backend.Client
	fetcher *dashboard.Fetcher
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBackendURL sets the backend base URL.
func WithBackendURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.backendURL = url
		}
	}
}

// WithRequestTimeout bounds each backend request. Zero means no timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.requestTimeout = d
		}
	}
}

// WithTitle sets the dashboard heading.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithVersion sets the version reported on /healthz.
func WithVersion(v string) Option {
	return func(s *Service) {
		if v != "" {
			s.version = v
		}
	}
}

// WithHTTPClient replaces the http.Client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) { s.httpClient = hc }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backendURL: backend.DefaultBaseURL,
		title:      "Intelligent Development Assistant",
		version:    "dev",
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	clientOpts := []backend.Option{backend.WithHTTPClient(s.httpClient), backend.WithTimeout(s.requestTimeout)}
	s.client = backend.New(s.backendURL, clientOpts...)
	s.fetcher = dashboard.NewFetcher(s.client, dashboard.WithLogger(s.logger.Named("fetcher")))
	return s
}

// Start performs the initial load of both slots and returns once both
// completed. Calling it again, or after StartAsync, is a no-op.
func (s *Service) Start(ctx context.Context) error {
	if !s.markStarted() {
		return nil
	}
	s.load(ctx)
	return nil
}

// StartAsync runs the initial load in the background and returns a channel
// that is closed once both slots completed. Until then the page shows the
// initial "Checking..." state. Calling it again, or after Start, returns an
// already closed channel.
func (s *Service) StartAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if !s.markStarted() {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		s.load(ctx)
	}()
	return done
}

func (s *Service) markStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

func (s *Service) load(ctx context.Context) {
	s.logger.Info(ctx, "loading dashboard", logger.String("backend_url", s.client.BaseURL()))
	s.fetcher.Load(ctx)
	snap := s.fetcher.Snapshot()
	s.logger.Info(ctx, "dashboard loaded",
		logger.String("health", snap.Health),
		logger.Bool("error", snap.HasError()),
	)
}

// Stop marks the service stopped. In-flight fetches are left to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Dashboard returns the fetcher backing the page.
func (s *Service) Dashboard() *dashboard.Fetcher { return s.fetcher }

// BackendURL returns the normalized backend base URL.
func (s *Service) BackendURL() string { return s.client.BaseURL() }

// Handler builds the HTTP handler serving the dashboard and its API docs.
func (s *Service) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	server := api.NewServer(s.fetcher,
		api.WithTitle(s.title),
		api.WithBackendURL(s.client.BaseURL()),
		api.WithVersion(s.version),
		api.WithLogger(s.logger.Named("http")),
	)
	server.Register(ctx, r)
	swagger.Register(ctx, r)
	return r
}
