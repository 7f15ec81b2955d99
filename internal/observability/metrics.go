package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry with the dashboard's HTTP metrics and the
// inventory API call metrics.
type Metrics struct {
	registry *prometheus.Registry

	pages        *prometheus.CounterVec
	pageLatency  *prometheus.HistogramVec
	backendCalls *prometheus.CounterVec
	backendTime  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracknstock",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Dashboard requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		pageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tracknstock",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Dashboard latency by route, including backend round trips.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracknstock",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Calls to the inventory REST API by operation and outcome.",
		}, []string{"operation", "outcome"}),
		backendTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tracknstock",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Inventory REST API latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	m.registry.MustRegister(
		m.pages, m.pageLatency, m.backendCalls, m.backendTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts every request under its chi route pattern, so
// /products/1 and /products/2 share the /products/{id} series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
			route = pattern
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.pages.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		m.pageLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveBackendCall records one round trip to the inventory API. outcome is
// "ok", "transport_error", "server_error" or "decode_error".
func (m *Metrics) ObserveBackendCall(operation, outcome string, elapsed time.Duration) {
	m.backendCalls.WithLabelValues(operation, outcome).Inc()
	m.backendTime.WithLabelValues(operation).Observe(elapsed.Seconds())
}
