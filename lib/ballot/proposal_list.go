package ballot

import (
	"encoding/json"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

type BallotProposal struct {
	ID          uint64 `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// ProposalList is the payload of `post-ballot`. A ballot is identified by
// the hash of its canonical form, the JSON re-encoding of the parsed list,
// so the same list always lands on the same ballot.
type ProposalList struct {
	ID        uint64           `json:"id"`
	Deadline  uint64           `json:"deadline"`
	Proposals []BallotProposal `json:"proposals"`
}

type rawBallotProposal struct {
	ID          *uint64 `json:"id"`
	Subject     *string `json:"subject"`
	Description string  `json:"description"`
}

type rawProposalList struct {
	ID        *uint64              `json:"id"`
	Deadline  *uint64              `json:"deadline"`
	Proposals *[]rawBallotProposal `json:"proposals"`
}

// ParseProposalList fails with `errors.InvalidProposals`, carrying the
// parser message, when s is not a complete proposal list.
func ParseProposalList(s string) (list ProposalList, err error) {
	var raw rawProposalList
	if err = json.Unmarshal([]byte(s), &raw); err != nil {
		err = errors.InvalidProposals.Describe(err)
		return
	}

	switch {
	case raw.ID == nil:
		err = errors.InvalidProposals.Describe("missing field `id`")
		return
	case raw.Deadline == nil:
		err = errors.InvalidProposals.Describe("missing field `deadline`")
		return
	case raw.Proposals == nil:
		err = errors.InvalidProposals.Describe("missing field `proposals`")
		return
	}

	list.ID = *raw.ID
	list.Deadline = *raw.Deadline
	list.Proposals = []BallotProposal{}
	for _, p := range *raw.Proposals {
		if p.ID == nil {
			err = errors.InvalidProposals.Describe("missing field `id` in proposal")
			return
		}
		if p.Subject == nil {
			err = errors.InvalidProposals.Describe("missing field `subject` in proposal")
			return
		}
		list.Proposals = append(list.Proposals, BallotProposal{
			ID:          *p.ID,
			Subject:     *p.Subject,
			Description: p.Description,
		})
	}

	return
}

func (p ProposalList) Bytes() []byte {
	return common.MustMarshalJSON(p)
}

func (p ProposalList) String() string {
	return string(p.Bytes())
}

func (p ProposalList) Hash() common.Hash {
	return common.BytesToHash(common.MakeHash(p.Bytes()))
}

func (p ProposalList) HasDuplicateID() bool {
	seen := map[uint64]struct{}{}
	for _, proposal := range p.Proposals {
		if _, found := seen[proposal.ID]; found {
			return true
		}
		seen[proposal.ID] = struct{}{}
	}

	return false
}

// Contains is true when both id and subject match the same proposal.
func (p ProposalList) Contains(id uint64, subject string) bool {
	_, found := p.Index(id, subject)
	return found
}

func (p ProposalList) Index(id uint64, subject string) (int, bool) {
	for i, proposal := range p.Proposals {
		if proposal.ID == id && proposal.Subject == subject {
			return i, true
		}
	}

	return -1, false
}
