package common

import "time"

const (
	DefaultInitialVoterWeight uint64 = 100
	DefaultMaxProposals       int    = 10

	DefaultBlockTime   time.Duration = 5 * time.Second
	DefaultTxsLimit    int           = 1000
	DefaultTxPoolLimit int           = 10000

	// DefaultRateLimitAPI is in the `<limit>-<period>` format of
	// `github.com/ulule/limiter`
	DefaultRateLimitAPI string = "100-S"
	DefaultAPICacheSize int    = 256

	DefaultEndpoint string = "http://localhost:12345"
	DefaultStorage  string = "memory://"
)
