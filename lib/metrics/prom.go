package metrics

// InitPrometheusMetrics replaces the nop metrics; call it once, before the
// node starts.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Engine = PromEngineMetrics()
	Ledger = PromLedgerMetrics()
	TxPool = PromTxPoolMetrics()
	API = PromAPIMetrics()
}
