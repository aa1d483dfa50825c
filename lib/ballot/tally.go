package ballot

import (
	"boscoin.io/ballot/lib/transaction/operation"
)

// Winner returns the index of the proposal with the most votes. On a tie,
// zero votes included, the lowest index wins. Only an empty list has no
// winner.
func Winner(proposals []Proposal) (int, bool) {
	if len(proposals) < 1 {
		return -1, false
	}

	winner, max := 0, proposals[0].VoteCount
	for i := 1; i < len(proposals); i++ {
		if proposals[i].VoteCount > max {
			winner, max = i, proposals[i].VoteCount
		}
	}

	return winner, true
}

type VotingResult struct {
	Voting      Voting     `json:"voting"`
	Proposals   []Proposal `json:"proposals"`
	TotalWeight uint64     `json:"total_weight"`
	Done        bool       `json:"done"`
	Winner      *int       `json:"winner,omitempty"`
}

func NewVotingResult(voting Voting, proposals []Proposal, ledgerTime uint64) VotingResult {
	r := VotingResult{
		Voting:    voting,
		Proposals: proposals,
		Done:      voting.IsClosed(ledgerTime),
	}
	for _, p := range proposals {
		r.TotalWeight += p.VoteCount
	}
	if winner, found := Winner(proposals); found {
		r.Winner = &winner
	}

	return r
}

type BallotCount struct {
	BallotProposal
	Votes uint64 `json:"votes"`
}

type BallotResult struct {
	Ballot BallotData    `json:"ballot"`
	Counts []BallotCount `json:"counts"`
	Voted  uint64        `json:"voted"`
	Winner *int          `json:"winner,omitempty"`
}

// TallyBallot counts one vote per filled slot. The winner is an index of
// `list.Proposals`.
func TallyBallot(data BallotData, list ProposalList, votes []MaybeVote) BallotResult {
	r := BallotResult{Ballot: data}

	proposals := make([]Proposal, len(list.Proposals))
	for i, p := range list.Proposals {
		r.Counts = append(r.Counts, BallotCount{BallotProposal: p})
		proposals[i] = NewProposal(p.Subject)
	}

	for _, v := range votes {
		if v.IsNone() {
			continue
		}
		r.Voted++

		body, ok := v.Vote.B.Operation.B.(operation.VoteBallot)
		if !ok {
			continue
		}
		if i, found := list.Index(body.ProposalID, body.ProposalSubject); found {
			r.Counts[i].Votes++
			proposals[i] = proposals[i].AddVotes(1)
		}
	}

	if winner, found := Winner(proposals); found {
		r.Winner = &winner
	}

	return r
}
