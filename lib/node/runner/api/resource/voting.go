package resource

import (
	"strconv"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/merkle"
)

type Voting struct {
	v         *ballot.Voting
	proposals []ballot.Proposal
	proof     *merkle.Proof
}

// NewVoting takes the proposals of the voting only for the single voting
// view; lists leave them out.
func NewVoting(v *ballot.Voting, proposals []ballot.Proposal, proof *merkle.Proof) *Voting {
	return &Voting{v: v, proposals: proposals, proof: proof}
}

func (v Voting) GetMap() hal.Entry {
	m := hal.Entry{
		"id":             v.v.ID,
		"creator":        v.v.Creator,
		"proposals":      v.v.Proposals,
		"start_time":     v.v.StartTime,
		"duration":       v.v.Duration,
		"deadline":       v.v.Deadline,
		"proposals_root": v.v.ProposalsRoot,
		"voted_root":     v.v.VotedRoot,
	}
	if v.proposals != nil {
		m["proposal_list"] = v.proposals
	}
	if v.proof != nil {
		m["proof"] = v.proof
	}

	return m
}

func (v Voting) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("creator", hal.NewLink(expandURL(URLVoters, v.v.Creator)))
	r.AddLink("result", hal.NewLink(expandURL(URLVotingResult, v.id())))

	return r
}

func (v Voting) LinkSelf() string {
	return expandURL(URLVoting, v.id())
}

func (v Voting) id() string {
	return strconv.FormatUint(v.v.ID, 10)
}

type VotingResult struct {
	r *ballot.VotingResult
}

func NewVotingResult(r *ballot.VotingResult) *VotingResult {
	return &VotingResult{r: r}
}

func (v VotingResult) GetMap() hal.Entry {
	m := hal.Entry{
		"id":           v.r.Voting.ID,
		"proposals":    v.r.Proposals,
		"total_weight": v.r.TotalWeight,
		"done":         v.r.Done,
	}
	if v.r.Winner != nil {
		m["winner"] = *v.r.Winner
	}

	return m
}

func (v VotingResult) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("voting", hal.NewLink(expandURL(URLVoting, strconv.FormatUint(v.r.Voting.ID, 10))))

	return r
}

func (v VotingResult) LinkSelf() string {
	return expandURL(URLVotingResult, strconv.FormatUint(v.r.Voting.ID, 10))
}
