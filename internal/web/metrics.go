package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the web UI.
// Path labels use the matched route pattern to keep cardinality bounded.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	opens    *prometheus.CounterVec
	progress prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advent_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advent_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		opens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advent_open_attempts_total",
				Help: "Open attempts by outcome.",
			},
			[]string{"outcome"},
		),
		progress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "advent_progress",
				Help: "Number of opened calendar days.",
			},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.opens, m.progress)
	return m
}

// observeOpen records an open attempt. outcome is "opened" or the lowercased error code.
func (m *Metrics) observeOpen(outcome string, progress int) {
	m.opens.WithLabelValues(outcome).Inc()
	m.progress.Set(float64(progress))
}

// setProgress updates the progress gauge.
func (m *Metrics) setProgress(progress int) {
	m.progress.Set(float64(progress))
}

// instrument counts requests and observes latency.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// ServeMux sets Pattern on the request it routed
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.latency.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
