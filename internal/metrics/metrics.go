package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	MetricsEndpoint = "0.0.0.0:9090"
)

var (
	LayoutBuildCounter        *prometheus.CounterVec
	LayoutBuildRuntimeSummary *prometheus.SummaryVec

	DiagnosticsCounter *prometheus.CounterVec

	StoreQueryErrorCount *prometheus.CounterVec
	StoreRefreshCounter  *prometheus.CounterVec
)

func init() {
	LayoutBuildCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rackview_layout_builds_total",
			Help: "A counter metric to measure the total count of layouts built",
		},
		[]string{"layout"}, // elevation, chassis
	)

	LayoutBuildRuntimeSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "rackview_layout_build_duration_seconds",
			Help: "A summary metric to measure the time spent building each layout from an inventory snapshot",
		},
		[]string{"layout"},
	)

	DiagnosticsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rackview_diagnostics_total",
			Help: "A counter metric to measure the total count of inventory data integrity diagnostics reported",
		},
		[]string{"kind"},
	)

	StoreQueryErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rackview_store_query_error_count",
			Help: "A counter metric to measure the total count of errors querying the inventory store.",
		},
		[]string{"storeKind", "queryKind"},
	)

	StoreRefreshCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rackview_store_refresh_total",
			Help: "A counter metric to measure the total count of inventory snapshot refreshes",
		},
		[]string{"storeKind"},
	)
}

// ObserveLayoutBuild registers a layout build along with the time elapsed since start.
func ObserveLayoutBuild(layout string, start time.Time) {
	LayoutBuildCounter.WithLabelValues(layout).Inc()
	LayoutBuildRuntimeSummary.WithLabelValues(layout).Observe(time.Since(start).Seconds())
}

// ListenAndServe exposes prometheus metrics as /metrics
func ListenAndServe(addr string, logger logrus.FieldLogger) {
	if addr == "" {
		addr = MetricsEndpoint
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		server := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 2 * time.Second, // nolint:gomnd // time duration value is clear as is.
		}

		if err := server.ListenAndServe(); err != nil {
			logger.WithError(err).Warn("metrics listener exited")
		}
	}()
}
