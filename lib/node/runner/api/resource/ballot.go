package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/merkle"
)

type Ballot struct {
	b     *ballot.BallotData
	list  *ballot.ProposalList
	proof *merkle.Proof
}

func NewBallot(b *ballot.BallotData, list *ballot.ProposalList, proof *merkle.Proof) *Ballot {
	return &Ballot{b: b, list: list, proof: proof}
}

func (b Ballot) GetMap() hal.Entry {
	m := hal.Entry{
		"hash":       b.b.ProposalsHash,
		"source":     b.b.Source,
		"tx_hash":    b.b.TxHash,
		"votes_root": b.b.VotesRoot,
		"validators": b.b.Validators,
		"ordinal":    b.b.Ordinal,
	}
	if b.list != nil {
		m["proposals"] = b.list
	} else {
		m["proposals"] = b.b.Proposals
	}
	if b.proof != nil {
		m["proof"] = b.proof
	}

	return m
}

func (b Ballot) Resource() *hal.Resource {
	hash := b.b.ProposalsHash.String()

	r := hal.NewResource(b, b.LinkSelf())
	r.AddLink("transaction", hal.NewLink(expandURL(URLTransactionByHash, b.b.TxHash)))
	r.AddLink("votes", hal.NewLink(expandURL(URLBallotVotes, hash)))
	r.AddLink("result", hal.NewLink(expandURL(URLBallotResult, hash)))

	return r
}

func (b Ballot) LinkSelf() string {
	return expandURL(URLBallot, b.b.ProposalsHash.String())
}

// VoteSlot is one slot of a ballot; `vote` is null until the validator of
// the slot votes.
type VoteSlot struct {
	hash        string
	validatorID int
	validator   string
	vote        ballot.MaybeVote
	proof       *merkle.Proof
}

func NewVoteSlot(hash string, validatorID int, validator string, vote ballot.MaybeVote, proof *merkle.Proof) *VoteSlot {
	return &VoteSlot{
		hash:        hash,
		validatorID: validatorID,
		validator:   validator,
		vote:        vote,
		proof:       proof,
	}
}

func (v VoteSlot) GetMap() hal.Entry {
	m := hal.Entry{
		"validator_id": v.validatorID,
		"validator":    v.validator,
		"vote":         v.vote.Vote,
	}
	if v.proof != nil {
		m["proof"] = v.proof
	}

	return m
}

func (v VoteSlot) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	if !v.vote.IsNone() {
		r.AddLink("transaction", hal.NewLink(expandURL(URLTransactionByHash, v.vote.Vote.GetHash())))
	}

	return r
}

func (v VoteSlot) LinkSelf() string {
	return strings.Replace(expandURL(URLBallotVote, v.hash), "{slot}", strconv.Itoa(v.validatorID), -1)
}

type BallotResult struct {
	r *ballot.BallotResult
}

func NewBallotResult(r *ballot.BallotResult) *BallotResult {
	return &BallotResult{r: r}
}

func (b BallotResult) GetMap() hal.Entry {
	m := hal.Entry{
		"hash":   b.r.Ballot.ProposalsHash,
		"counts": b.r.Counts,
		"voted":  b.r.Voted,
		"slots":  b.r.Ballot.Validators,
	}
	if b.r.Winner != nil {
		m["winner"] = *b.r.Winner
	}

	return m
}

func (b BallotResult) Resource() *hal.Resource {
	r := hal.NewResource(b, b.LinkSelf())
	r.AddLink("ballot", hal.NewLink(expandURL(URLBallot, b.r.Ballot.ProposalsHash.String())))

	return r
}

func (b BallotResult) LinkSelf() string {
	return expandURL(URLBallotResult, b.r.Ballot.ProposalsHash.String())
}
