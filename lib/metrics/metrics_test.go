package metrics

import (
	"testing"
	"time"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	NopAPIMetrics().Observe("/api/v1/state", "GET", 200, time.Millisecond)
	NopTxPoolMetrics().Submitted(TxPoolAdded)
	NopTxPoolMetrics().AddSize(0)
	NopEngineMetrics().Rejected("create-voter", 0, time.Now())
	NopLedgerMetrics().SetHeight(1)
}

func TestPrometheusMetrics(t *testing.T) {
	InitPrometheusMetrics()
	defer func() {
		Engine = NopEngineMetrics()
		Ledger = NopLedgerMetrics()
		TxPool = NopTxPoolMetrics()
		API = NopAPIMetrics()
	}()

	SetVersion()
	API.Observe("/api/v1/ballots/{id}", "GET", 404, time.Millisecond)
	TxPool.Submitted(TxPoolFull)
	TxPool.AddSize(3)
	Engine.Applied("create-voter", time.Now())
	Ledger.SetHeight(7)

	families, err := stdprometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, name := range []string{
		"ballot_build_info",
		"ballot_api_requests_total",
		"ballot_api_request_errors_total",
		"ballot_api_request_duration_seconds",
		"ballot_txpool_size",
		"ballot_txpool_submitted_total",
		"ballot_engine_transactions_total",
		"ballot_ledger_height",
	} {
		require.True(t, names[name], name)
	}
}
