package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	TxPoolAdded      = "added"
	TxPoolDuplicated = "duplicated"
	TxPoolFull       = "full"
)

// TxPoolMetrics watches the transactions waiting for the next block.
type TxPoolMetrics struct {
	Size           metrics.Gauge
	SubmittedTotal metrics.Counter
}

func (m *TxPoolMetrics) AddSize(delta int) {
	if delta == 0 {
		return
	}
	m.Size.Add(float64(delta))
}

// Submitted counts the submissions by result, one of `TxPoolAdded`,
// `TxPoolDuplicated` and `TxPoolFull`.
func (m *TxPoolMetrics) Submitted(result string) {
	m.SubmittedTotal.With("result", result).Add(1)
}

func PromTxPoolMetrics() *TxPoolMetrics {
	return &TxPoolMetrics{
		Size: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: TxPoolSubsystem,
			Name:      "size",
			Help:      "Number of transactions waiting for the next block.",
		}, []string{}),
		SubmittedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TxPoolSubsystem,
			Name:      "submitted_total",
			Help:      "Total number of submitted transactions by result.",
		}, []string{"result"}),
	}
}

func NopTxPoolMetrics() *TxPoolMetrics {
	return &TxPoolMetrics{
		Size:           discard.NewGauge(),
		SubmittedTotal: discard.NewCounter(),
	}
}
