package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// routeSegments are the static path segments the API exposes. Anything
// else in a path is treated as an identifier.
var routeSegments = map[string]bool{
	"api":            true,
	"v1":             true,
	"products":       true,
	"categories":     true,
	"suppliers":      true,
	"customers":      true,
	"sales":          true,
	"purchases":      true,
	"items":          true,
	"reconciliation": true,
	"transactions":   true,
	"report":         true,
	"health":         true,
	"ready":          true,
	"metrics":        true,
}

// normalizePath replaces identifier segments with :id to keep metric
// cardinality bounded.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	changed := false
	for i, seg := range segments {
		if seg == "" || routeSegments[seg] {
			continue
		}
		segments[i] = ":id"
		changed = true
	}
	if !changed {
		return path
	}
	return strings.Join(segments, "/")
}
