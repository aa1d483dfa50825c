package operation

import (
	"boscoin.io/ballot/lib/common"
)

// PostBallot publishes a proposal list, given as JSON text. The text is
// parsed while the transaction is executed, so a malformed list is
// rejected with `errors.InvalidProposals` and recorded.
type PostBallot struct {
	Proposals string `json:"proposals"`
}

func NewPostBallot(proposals string) PostBallot {
	return PostBallot{Proposals: proposals}
}

func (o PostBallot) IsWellFormed(common.Config) error {
	return nil
}

// VoteBallot fills the validator's vote slot of the ballot identified by
// `ProposalsHash`.
type VoteBallot struct {
	ProposalsHash   string `json:"proposals_hash"`
	ProposalID      uint64 `json:"proposal_id"`
	ProposalSubject string `json:"proposal_subject"`
}

func NewVoteBallot(proposalsHash string, proposalID uint64, subject string) VoteBallot {
	return VoteBallot{
		ProposalsHash:   proposalsHash,
		ProposalID:      proposalID,
		ProposalSubject: subject,
	}
}

func (o VoteBallot) IsWellFormed(common.Config) error {
	return nil
}
