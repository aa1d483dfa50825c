package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Height     metrics.Gauge
	TotalTxs   metrics.Gauge
	Validators metrics.Gauge
}

func (c *LedgerMetrics) SetHeight(height uint64) {
	c.Height.Set(float64(height))
}

func (c *LedgerMetrics) SetTotalTxs(total uint64) {
	c.TotalTxs.Set(float64(total))
}

func (c *LedgerMetrics) SetValidators(num int) {
	c.Validators.Set(float64(num))
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "height",
			Help:      "Height of the latest block.",
		}, []string{}),
		TotalTxs: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "total_txs",
			Help:      "Total number of transactions in blocks.",
		}, []string{}),
		Validators: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "validators",
			Help:      "Number of validators",
		}, []string{}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height:     discard.NewGauge(),
		TotalTxs:   discard.NewGauge(),
		Validators: discard.NewGauge(),
	}
}
