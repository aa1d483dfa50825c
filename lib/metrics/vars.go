package metrics

// The metrics discard everything until `InitPrometheusMetrics` is called.
var (
	Engine = NopEngineMetrics()
	Ledger = NopLedgerMetrics()
	TxPool = NopTxPoolMetrics()
	API    = NopAPIMetrics()
)
