package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	recalculations      *prometheus.CounterVec
	rateLimited         prometheus.Counter
	monthsSaved         prometheus.Histogram
}

// newMetrics registers the server collectors on a private registry so
// handlers built in tests never collide on the global one.
func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status_code"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status_code"}),
		recalculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "amortizer_recalculations_total",
			Help: "Schedules computed, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "amortizer_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		monthsSaved: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "amortizer_months_saved",
			Help:    "Months saved against the original term per computed schedule.",
			Buckets: []float64{0, 1, 3, 6, 12, 24, 60, 120},
		}),
	}
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			routePattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				routePattern = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			code := strconv.Itoa(status)

			m.httpRequestsTotal.WithLabelValues(r.Method, routePattern, code).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, routePattern, code).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(ww, r)
	})
}
