package metrics

const (
	Namespace       = "ballot"
	EngineSubsystem = "engine"
	LedgerSubsystem = "ledger"
	TxPoolSubsystem = "txpool"
	APISubsystem    = "api"
)

const (
	TransactionApplied  = "applied"
	TransactionRejected = "rejected"
)
