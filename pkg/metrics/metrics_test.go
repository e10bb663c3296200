package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "sub")
			})
		})
	})
}

func TestBackendMetrics(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When fetches are recorded", func() {
			manager.RecordBackendFetch("/", OutcomeSuccess, 12)
			manager.RecordBackendFetch("/", OutcomeSuccess, 8)
			manager.RecordBackendFetch("/health", OutcomeFailure, 3)

			Convey("Then counters are split by endpoint and outcome", func() {
				So(testutil.ToFloat64(manager.backendFetches.WithLabelValues("/", OutcomeSuccess)), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.backendFetches.WithLabelValues("/health", OutcomeFailure)), ShouldEqual, 1)
			})
		})

		Convey("When the health gauge is toggled", func() {
			manager.SetBackendHealthy(true)
			So(testutil.ToFloat64(manager.backendHealthy), ShouldEqual, 1)
			manager.SetBackendHealthy(false)
			So(testutil.ToFloat64(manager.backendHealthy), ShouldEqual, 0)
		})

		Convey("When HTTP traffic is recorded", func() {
			manager.RecordHTTPRequest("index", "GET", "200", 1.5)
			manager.RecordHTTPError("refresh_health", "POST", "server_error")

			Convey("Then the exposition contains both families", func() {
				n, err := testutil.GatherAndCount(registry,
					"statusboard_dashboard_http_requests_total",
					"statusboard_dashboard_http_errors_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(func() {
			RecordBackendFetch("/", OutcomeSuccess, 1)
			SetBackendHealthy(true)
			RecordHTTPRequest("index", "GET", "200", 1)
			RecordHTTPError("index", "GET", "not_found")
		}, ShouldNotPanic)

		Convey("Then the custom registry exposes statusboard metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if strings.HasPrefix(f.GetName(), "statusboard_dashboard_backend_fetch_total") {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
