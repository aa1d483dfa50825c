package ballot

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/transaction"
)

// BallotData is the record of a posted proposal list.
type BallotData struct {
	ProposalsHash common.Hash `json:"proposals_hash"`
	Source        string      `json:"source"`
	TxHash        string      `json:"tx_hash"`
	Proposals     string      `json:"proposals"`
	VotesRoot     common.Hash `json:"votes_root"`
	Validators    uint64      `json:"validators"`
	Ordinal       uint64      `json:"ordinal"`
}

func (b BallotData) ProposalList() (ProposalList, error) {
	return ParseProposalList(b.Proposals)
}

// MaybeVote is one vote slot of a ballot; a nil `Vote` is the no-vote
// sentinel reserved when the ballot is posted.
type MaybeVote struct {
	Vote *transaction.Transaction `json:"vote"`
}

func NoVote() MaybeVote {
	return MaybeVote{}
}

func NewMaybeVote(tx transaction.Transaction) MaybeVote {
	return MaybeVote{Vote: &tx}
}

func (m MaybeVote) IsNone() bool {
	return m.Vote == nil
}
