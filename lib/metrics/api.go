package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var apiDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// APIMetrics is labeled by the route template, like
// `/api/v1/ballots/{id}`, not by the requested path.
type APIMetrics struct {
	RequestsTotal          metrics.Counter
	RequestErrorsTotal     metrics.Counter
	RequestDurationSeconds metrics.Histogram
}

func (m *APIMetrics) Observe(route, method string, status int, elapsed time.Duration) {
	s := strconv.Itoa(status)
	m.RequestsTotal.With("route", route, "method", method, "status", s).Add(1)

	switch {
	case status >= 500:
		m.RequestErrorsTotal.With("route", route, "kind", "server").Add(1)
	case status >= 400:
		m.RequestErrorsTotal.With("route", route, "kind", "client").Add(1)
	}

	m.RequestDurationSeconds.With("route", route, "method", method).Observe(elapsed.Seconds())
}

func PromAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests.",
		}, []string{"route", "method", "status"}),
		RequestErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of failed requests by kind, client or server.",
		}, []string{"route", "kind"}),
		RequestDurationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time to serve a request.",
			Buckets:   apiDurationBuckets,
		}, []string{"route", "method"}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal:          discard.NewCounter(),
		RequestErrorsTotal:     discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
	}
}
