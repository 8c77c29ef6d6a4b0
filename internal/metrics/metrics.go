// Package metrics exposes Prometheus counters for the registry and a chi
// middleware that records per-request totals and latency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	RegistrationsDeleted prometheus.Counter
	UsageEvents          prometheus.Counter

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "car_registry_registrations_created_total",
			Help: "Total number of car number registrations created",
		}),
		RegistrationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "car_registry_registrations_deleted_total",
			Help: "Total number of car number registrations deleted",
		}),
		UsageEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "car_registry_usage_events_total",
			Help: "Total number of usage events recorded",
		}),
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Middleware records request counts and durations, labeled by the chi route
// pattern so path parameters don't explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}
		status := strconv.Itoa(ww.Status())

		m.requestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
