package ballot

import (
	"math"

	"boscoin.io/ballot/lib/common"
)

type Proposal struct {
	Subject   string `json:"subject"`
	VoteCount uint64 `json:"vote_count"`
}

func NewProposal(subject string) Proposal {
	return Proposal{Subject: subject}
}

func (p Proposal) AddVotes(weight uint64) Proposal {
	p.VoteCount += weight
	return p
}

// Voting is one proposal list opened by `new-proposals`. The roots of its
// proposals and of its voted markers are kept in the record, so the root of
// all the votings commits to every vote.
type Voting struct {
	ID            uint64      `json:"id"`
	Creator       string      `json:"creator"`
	Proposals     uint64      `json:"proposals"`
	StartTime     uint64      `json:"start_time"`
	Duration      uint64      `json:"duration"`
	Deadline      uint64      `json:"deadline"`
	ProposalsRoot common.Hash `json:"proposals_root"`
	VotedRoot     common.Hash `json:"voted_root"`
}

// DeadlineOf saturates at math.MaxUint64 instead of wrapping.
func DeadlineOf(startTime, duration uint64) uint64 {
	if duration > math.MaxUint64-startTime {
		return math.MaxUint64
	}
	return startTime + duration
}

func NewVoting(id uint64, creator string, proposals int, startTime, duration uint64) Voting {
	v := Voting{
		ID:        id,
		Creator:   creator,
		Proposals: uint64(proposals),
		StartTime: startTime,
		Duration:  duration,
	}
	if duration > 0 {
		v.Deadline = DeadlineOf(startTime, duration)
	}

	return v
}

func (v Voting) HasDeadline() bool {
	return v.Duration > 0
}

// IsClosed is true once ledger time passed the deadline; a voting without
// deadline never closes.
func (v Voting) IsClosed(ledgerTime uint64) bool {
	return v.HasDeadline() && ledgerTime > v.Deadline
}
