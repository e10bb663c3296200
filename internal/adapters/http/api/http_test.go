package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/okian/statusboard/internal/adapters/http/api"
	"github.com/okian/statusboard/internal/dashboard"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDashboard records refresh calls and returns a fixed snapshot.
type fakeDashboard struct {
	snap          dashboard.Snapshot
	messageCalls  int
	healthCalls   int
	onMessage     func(*dashboard.Snapshot)
	onHealthCheck func(*dashboard.Snapshot)
}

func (f *fakeDashboard) FetchMessage(context.Context) {
	f.messageCalls++
	if f.onMessage != nil {
		f.onMessage(&f.snap)
	}
}

func (f *fakeDashboard) CheckHealth(context.Context) {
	f.healthCalls++
	if f.onHealthCheck != nil {
		f.onHealthCheck(&f.snap)
	}
}

func (f *fakeDashboard) Snapshot() dashboard.Snapshot { return f.snap }

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		d := &fakeDashboard{snap: dashboard.Snapshot{Health: dashboard.HealthChecking}}
		h := api.NewServer(d, api.WithBackendURL("http://localhost:8000")).Handler(context.Background())

		Convey("Then the dashboard page is served", func() {
			w := serve(h, http.MethodGet, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, "🧠 Intelligent Development Assistant")
			So(w.Body.String(), ShouldContainSubstring, "Next steps: GitHub integration, code upload, and AI analysis.")
			So(w.Body.String(), ShouldContainSubstring, "<code>http://localhost:8000</code>")
			So(w.Body.String(), ShouldContainSubstring, "Checking...")
			So(w.Body.String(), ShouldContainSubstring, "No message received")
			So(w.Body.String(), ShouldContainSubstring, "Refresh Message")
			So(w.Body.String(), ShouldContainSubstring, "Check Health")
			So(w.Body.String(), ShouldNotContainSubstring, `role="alert"`)
		})

		Convey("And reloading the page renders state without fetching", func() {
			_ = serve(h, http.MethodGet, "/")
			_ = serve(h, http.MethodGet, "/")
			So(d.messageCalls, ShouldEqual, 0)
			So(d.healthCalls, ShouldEqual, 0)
		})

		Convey("And the liveness endpoint reports ok", func() {
			w := serve(h, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body api.HealthResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Status, ShouldEqual, "ok")
			So(body.Version, ShouldEqual, "dev")
		})

		Convey("And metrics are exposed", func() {
			_ = serve(h, http.MethodGet, "/")
			w := serve(h, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "statusboard_dashboard_http_requests_total")
		})

		Convey("And unknown routes return the error envelope", func() {
			w := serve(h, http.MethodGet, "/unknown")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
		})

		Convey("And refresh routes reject GET", func() {
			w := serve(h, http.MethodGet, "/refresh/health")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(d.healthCalls, ShouldEqual, 0)
		})
	})
}

func TestDashboardPage(t *testing.T) {
	Convey("Given a healthy backend with a message", t, func() {
		d := &fakeDashboard{snap: dashboard.Snapshot{Message: "hi <there>", Health: "healthy", Healthy: true}}
		h := api.NewServer(d, api.WithTitle("Ops Board")).Handler(context.Background())

		Convey("Then the status is styled healthy and the message is escaped", func() {
			body := serve(h, http.MethodGet, "/").Body.String()
			So(body, ShouldContainSubstring, "Ops Board")
			So(body, ShouldContainSubstring, `class="health healthy"`)
			So(body, ShouldContainSubstring, ">healthy</span>")
			So(body, ShouldContainSubstring, "hi &lt;there&gt;")
		})
	})

	Convey("Given any status other than healthy", t, func() {
		d := &fakeDashboard{snap: dashboard.Snapshot{Health: "degraded"}}
		h := api.NewServer(d).Handler(context.Background())

		Convey("Then it is styled unhealthy", func() {
			body := serve(h, http.MethodGet, "/").Body.String()
			So(body, ShouldContainSubstring, `class="health unhealthy"`)
			So(body, ShouldContainSubstring, ">degraded</span>")
		})
	})

	Convey("Given a failed fetch", t, func() {
		d := &fakeDashboard{snap: dashboard.Snapshot{Health: dashboard.HealthUnhealthy, Error: dashboard.ErrHealthBanner}}
		h := api.NewServer(d).Handler(context.Background())

		Convey("Then the error banner is shown", func() {
			body := serve(h, http.MethodGet, "/").Body.String()
			So(body, ShouldContainSubstring, `role="alert"`)
			So(body, ShouldContainSubstring, "Health check failed. Is the backend server running?")
		})
	})
}

func TestRefreshControls(t *testing.T) {
	Convey("Given a dashboard behind the router", t, func() {
		d := &fakeDashboard{
			snap:          dashboard.Snapshot{Message: "old", Health: "healthy", Healthy: true},
			onMessage:     func(s *dashboard.Snapshot) { s.Message = "new" },
			onHealthCheck: func(s *dashboard.Snapshot) { s.Health = "unhealthy"; s.Healthy = false },
		}
		h := api.NewServer(d).Handler(context.Background())

		Convey("When Refresh Message is clicked", func() {
			w := serve(h, http.MethodPost, "/refresh/message")

			Convey("Then only the message request is re-issued and the page is reloaded", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/")
				So(d.messageCalls, ShouldEqual, 1)
				So(d.healthCalls, ShouldEqual, 0)
				So(d.snap.Health, ShouldEqual, "healthy")
			})
		})

		Convey("When Check Health is clicked", func() {
			w := serve(h, http.MethodPost, "/refresh/health")

			Convey("Then only the health request is re-issued", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(d.healthCalls, ShouldEqual, 1)
				So(d.messageCalls, ShouldEqual, 0)
				So(d.snap.Message, ShouldEqual, "old")
			})
		})

		Convey("When the JSON refresh endpoints are called", func() {
			w := serve(h, http.MethodPost, "/api/health/refresh")
			var snap dashboard.Snapshot
			So(json.Unmarshal(w.Body.Bytes(), &snap), ShouldBeNil)

			Convey("Then the updated snapshot is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(snap.Health, ShouldEqual, "unhealthy")
				So(snap.Message, ShouldEqual, "old")
				So(d.messageCalls, ShouldEqual, 0)
			})

			Convey("And the message endpoint refreshes only the message", func() {
				w := serve(h, http.MethodPost, "/api/message/refresh")
				So(strings.Contains(w.Body.String(), `"message":"new"`), ShouldBeTrue)
				So(d.messageCalls, ShouldEqual, 1)
				So(d.healthCalls, ShouldEqual, 1)
			})
		})

		Convey("When the state is read", func() {
			w := serve(h, http.MethodGet, "/api/state")

			Convey("Then nothing is fetched", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(d.messageCalls+d.healthCalls, ShouldEqual, 0)
			})
		})
	})
}

func TestRegisterWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		s := api.NewServer(&fakeDashboard{})
		var r chi.Router

		Convey("Then Register panics", func() {
			So(func() { s.Register(context.Background(), r) }, ShouldPanic)
		})
	})
}
