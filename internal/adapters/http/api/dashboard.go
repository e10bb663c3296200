package api

import (
	"bytes"
	"net/http"

	"github.com/okian/statusboard/internal/dashboard"
	"github.com/okian/statusboard/pkg/logger"
)

type pageData struct {
	Title      string
	BackendURL string
	State      dashboard.Snapshot
}

// dashboardHandler serves the HTML page and its two refresh buttons.
type dashboardHandler struct {
	d          Dashboard
	title      string
	backendURL string
	log        logger.Logger
}

func newDashboardHandler(d Dashboard, title, backendURL string, log logger.Logger) *dashboardHandler {
	return &dashboardHandler{d: d, title: title, backendURL: backendURL, log: log}
}

// HandleDashboard handles GET / by rendering the current state.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	data := pageData{Title: h.title, BackendURL: h.backendURL, State: h.d.Snapshot()}
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.log.Error(r.Context(), "render dashboard", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrRender)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// HandleRefreshMessage handles POST /refresh/message ("Refresh Message").
func (h *dashboardHandler) HandleRefreshMessage(w http.ResponseWriter, r *http.Request) {
	h.d.FetchMessage(detached(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRefreshHealth handles POST /refresh/health ("Check Health").
func (h *dashboardHandler) HandleRefreshHealth(w http.ResponseWriter, r *http.Request) {
	h.d.CheckHealth(detached(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
