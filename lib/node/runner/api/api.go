package api

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	PostTransactionPattern             = "/transactions"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	GetVoterHandlerPattern             = "/voters/{id}"
	GetChairpersonHandlerPattern       = "/chairperson"
	GetVotingsHandlerPattern           = "/votings"
	GetVotingHandlerPattern            = "/votings/{id}"
	GetVotingResultHandlerPattern      = "/votings/{id}/result"
	GetBallotsHandlerPattern           = "/ballots"
	GetBallotHandlerPattern            = "/ballots/{id}"
	GetBallotVotesHandlerPattern       = "/ballots/{id}/votes"
	GetBallotVoteHandlerPattern        = "/ballots/{id}/votes/{slot}"
	GetBallotResultHandlerPattern      = "/ballots/{id}/result"
	GetBlocksHandlerPattern            = "/blocks"
	GetBlockHandlerPattern             = "/blocks/{hashOrHeight}"
	GetStateHandlerPattern             = "/state"
)

// NetworkHandlerAPI serves the reads of the committed state and takes new
// transactions. Every read works on its own snapshot of the storage, so a
// block committed while a request runs is not seen half-way.
type NetworkHandlerAPI struct {
	conf      common.Config
	storage   *storage.LevelDBBackend
	pool      *transaction.Pool
	urlPrefix string
	version   string

	// parsed proposal lists by their hash; the list of a hash never changes.
	proposalLists *lru.Cache

	PostTransaction func([]byte) (transaction.Transaction, error)
}

func NewNetworkHandlerAPI(conf common.Config, storage *storage.LevelDBBackend, pool *transaction.Pool, urlPrefix string) (*NetworkHandlerAPI, error) {
	size := conf.APICacheSize
	if size < 1 {
		size = common.DefaultAPICacheSize
	}

	proposalLists, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &NetworkHandlerAPI{
		conf:          conf,
		storage:       storage,
		pool:          pool,
		urlPrefix:     urlPrefix,
		version:       APIVersionV1,
		proposalLists: proposalLists,
	}, nil
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// snapshot must be released by the caller.
func (api NetworkHandlerAPI) snapshot() (*storage.LevelDBBackend, error) {
	return api.storage.Snapshot()
}

func (api NetworkHandlerAPI) proposalList(data ballot.BallotData) (ballot.ProposalList, error) {
	if cached, found := api.proposalLists.Get(data.ProposalsHash); found {
		return cached.(ballot.ProposalList), nil
	}

	list, err := data.ProposalList()
	if err != nil {
		return ballot.ProposalList{}, errors.InternalError.Describe(err)
	}
	api.proposalLists.Add(data.ProposalsHash, list)

	return list, nil
}

// ledgerTime is the time the latest block was executed with; readers use it
// to tell whether a voting is closed.
func ledgerTime(st *storage.LevelDBBackend) (uint64, error) {
	latest, err := block.GetLatestBlock(st)
	if err != nil {
		if errors.BlockNotFound.Is(errors.FromError(err)) {
			return 0, nil
		}
		return 0, err
	}

	return latest.Timestamp, nil
}
