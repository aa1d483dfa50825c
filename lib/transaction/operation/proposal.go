package operation

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

// NewProposals opens a new voting over the given subjects. A zero
// `Duration`, in seconds of ledger time, makes a voting without deadline.
type NewProposals struct {
	Proposals []string `json:"proposals"`
	Duration  uint64   `json:"duration"`
}

func NewNewProposals(duration uint64, subjects ...string) NewProposals {
	return NewProposals{Proposals: subjects, Duration: duration}
}

func (o NewProposals) IsWellFormed(conf common.Config) error {
	if len(o.Proposals) < 1 {
		return errors.InvalidOperation.Describe("empty proposals")
	}
	if len(o.Proposals) > conf.MaxProposals {
		return errors.ExcessMaxProposals
	}
	return nil
}

type VoteProposal struct {
	VotingID   uint64 `json:"voting_id"`
	ProposalID uint64 `json:"proposal_id"`
}

func NewVoteProposal(votingID, proposalID uint64) VoteProposal {
	return VoteProposal{VotingID: votingID, ProposalID: proposalID}
}

func (o VoteProposal) IsWellFormed(common.Config) error {
	return nil
}
