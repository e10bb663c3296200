package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/statusboard/pkg/metrics"
)

// HealthResponse is the dashboard process's own liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthHandler handles liveness requests for the dashboard itself. It says
// nothing about the backend; that is what the dashboard displays.
type HealthHandler struct {
	version string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{version: version, started: now(), now: now}
}

// HandleHealth handles GET /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Uptime:    now.Sub(h.started).Round(time.Second).String(),
		Timestamp: now.UTC(),
	})
}

// MetricsHandler serves the custom Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
