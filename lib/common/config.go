package common

import (
	"time"
)

// Config carries the parameters every node of one network must agree on,
// plus a few local knobs of the node itself.
type Config struct {
	NetworkID []byte

	// InitialVoterWeight is given to every new voter.
	InitialVoterWeight uint64

	// MaxProposals limits the number of proposals in one voting.
	MaxProposals int

	// Validators is the ordered validator set; the position of an address
	// is the validator id used to reserve ballot vote slots.
	Validators []string

	BlockTime time.Duration
	TxsLimit  int

	// Those fields are not consensus-related
	TxPoolLimit  int
	RateLimitAPI string
	APICacheSize int
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.InitialVoterWeight = DefaultInitialVoterWeight
	p.MaxProposals = DefaultMaxProposals

	p.BlockTime = DefaultBlockTime
	p.TxsLimit = DefaultTxsLimit

	p.TxPoolLimit = DefaultTxPoolLimit
	p.RateLimitAPI = DefaultRateLimitAPI
	p.APICacheSize = DefaultAPICacheSize

	return p
}

// ValidatorID returns the position of address in the validator set.
func (c Config) ValidatorID(address string) (int, bool) {
	return InStringArray(c.Validators, address)
}
