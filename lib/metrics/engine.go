package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type EngineMetrics struct {
	TransactionsTotal       metrics.Counter
	ExecutionDurationSecond metrics.Histogram
}

func (m *EngineMetrics) Applied(opType string, started time.Time) {
	m.TransactionsTotal.With("type", opType, "status", TransactionApplied, "code", "").Add(1)
	m.ExecutionDurationSecond.With("type", opType).Observe(time.Since(started).Seconds())
}

func (m *EngineMetrics) Rejected(opType string, code uint, started time.Time) {
	m.TransactionsTotal.With(
		"type", opType,
		"status", TransactionRejected,
		"code", strconv.FormatUint(uint64(code), 10),
	).Add(1)
	m.ExecutionDurationSecond.With("type", opType).Observe(time.Since(started).Seconds())
}

func PromEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		TransactionsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of executed transactions.",
		}, []string{"type", "status", "code"}),
		ExecutionDurationSecond: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: EngineSubsystem,
			Name:      "execution_duration_seconds",
			Help:      "Time to execute one transaction.",
		}, []string{"type"}),
	}
}

func NopEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		TransactionsTotal:       discard.NewCounter(),
		ExecutionDurationSecond: discard.NewHistogram(),
	}
}
