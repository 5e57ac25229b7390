package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the client's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "otgil",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend API requests issued.",
		},
		[]string{"method", "resource", "status"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "otgil",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "resource"},
	)

	refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "otgil",
			Subsystem: "state",
			Name:      "refresh_total",
			Help:      "Collection refreshes by outcome.",
		},
		[]string{"collection", "result"},
	)

	webRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "otgil",
			Subsystem: "web",
			Name:      "requests_total",
			Help:      "Total number of requests served by the local web front end.",
		},
		[]string{"method", "status"},
	)
)

func init() {
	Registry.MustRegister(
		apiRequests,
		apiDuration,
		refreshes,
		webRequests,
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveAPIRequest records one backend call. status is 0 when the request
// never produced a response.
func ObserveAPIRequest(method, path string, status int, duration time.Duration) {
	resource := Resource(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	apiRequests.WithLabelValues(method, resource, code).Inc()
	apiDuration.WithLabelValues(method, resource).Observe(duration.Seconds())
}

// ObserveRefresh records the outcome of a collection refresh.
func ObserveRefresh(collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	refreshes.WithLabelValues(collection, result).Inc()
}

// InstrumentHandler wraps next with request counting.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		webRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Resource reduces an API path to its top-level collection, keeping label
// cardinality bounded: "/items/42/goodbye" becomes "items".
func Resource(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return "root"
	}
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
