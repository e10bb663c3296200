package api

import (
	"net/http"
)

// StateHandler exposes the dashboard state as JSON.
type StateHandler struct {
	d Dashboard
}

// NewStateHandler creates a new state handler.
func NewStateHandler(d Dashboard) *StateHandler {
	return &StateHandler{d: d}
}

// HandleState handles GET /api/state.
func (h *StateHandler) HandleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.d.Snapshot())
}

// HandleRefreshMessage handles POST /api/message/refresh.
func (h *StateHandler) HandleRefreshMessage(w http.ResponseWriter, r *http.Request) {
	h.d.FetchMessage(detached(r))
	writeJSON(w, http.StatusOK, h.d.Snapshot())
}

// HandleRefreshHealth handles POST /api/health/refresh.
func (h *StateHandler) HandleRefreshHealth(w http.ResponseWriter, r *http.Request) {
	h.d.CheckHealth(detached(r))
	writeJSON(w, http.StatusOK, h.d.Snapshot())
}
