package ballot

import (
	"encoding/json"
	"fmt"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/index"
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

const (
	VotersName             = "ballot.voters"
	ChairpersonName        = "ballot.chairperson"
	VotingsName            = "ballot.votings"
	BallotsName            = "ballot.ballots"
	BallotsOrdinalName     = "ballot.ballots.ordinal"
	TransactionResultsName = "ballot.tx-results"
)

func votingProposalsName(id uint64) string {
	return fmt.Sprintf("ballot.votings.%d.proposals", id)
}

func votingVotedName(id uint64) string {
	return fmt.Sprintf("ballot.votings.%d.voted", id)
}

func votesName(hash common.Hash) string {
	return fmt.Sprintf("ballot.votes.%s", hash)
}

// Schema is the typed view of the ledger state over one storage view. Over
// a snapshot it only reads; over a fork it also writes.
type Schema struct {
	st *storage.LevelDBBackend
}

func NewSchema(st *storage.LevelDBBackend) *Schema {
	return &Schema{st: st}
}

func (s *Schema) Storage() *storage.LevelDBBackend {
	return s.st
}

func (s *Schema) voters() *index.MapIndex {
	return index.NewMapIndex(s.st, VotersName)
}

func (s *Schema) chairperson() *index.Entry {
	return index.NewEntry(s.st, ChairpersonName)
}

func (s *Schema) votings() *index.ListIndex {
	return index.NewListIndex(s.st, VotingsName)
}

func (s *Schema) ballots() *index.MapIndex {
	return index.NewMapIndex(s.st, BallotsName)
}

func (s *Schema) ballotsOrdinal() *index.ListIndex {
	return index.NewListIndex(s.st, BallotsOrdinalName)
}

func (s *Schema) votes(hash common.Hash) *index.ListIndex {
	return index.NewListIndex(s.st, votesName(hash))
}

func (s *Schema) transactionResults() *index.MapIndex {
	return index.NewMapIndex(s.st, TransactionResultsName)
}

//
// Voters
//

// Voter returns nil when address is not registered.
func (s *Schema) Voter(address string) (*Voter, error) {
	var v Voter
	if found, err := s.voters().Get([]byte(address), &v); err != nil || !found {
		return nil, err
	}

	return &v, nil
}

func (s *Schema) VoterWithProof(address string) (*Voter, *merkle.Proof, error) {
	v, err := s.Voter(address)
	if err != nil {
		return nil, nil, err
	}

	proof, err := s.voters().GetWithProof([]byte(address))
	if err != nil {
		return nil, nil, err
	}

	return v, proof, nil
}

func (s *Schema) SetVoter(v Voter) error {
	return s.voters().Put([]byte(v.Address), v)
}

// Chairperson returns nil before the first voter is registered.
func (s *Schema) Chairperson() (*Chairperson, error) {
	var c Chairperson
	if found, err := s.chairperson().Get(&c); err != nil || !found {
		return nil, err
	}

	return &c, nil
}

func (s *Schema) SetChairperson(c Chairperson) error {
	return s.chairperson().Set(c)
}

//
// Votings
//

func (s *Schema) VotingsLen() (uint64, error) {
	return s.votings().Len()
}

// Voting returns nil when there is no voting with id.
func (s *Schema) Voting(id uint64) (*Voting, error) {
	var v Voting
	if found, err := s.votings().Get(id, &v); err != nil || !found {
		return nil, err
	}

	return &v, nil
}

func (s *Schema) VotingWithProof(id uint64) (*Voting, *merkle.Proof, error) {
	v, err := s.Voting(id)
	if err != nil {
		return nil, nil, err
	}

	proof, err := s.votings().GetWithProof(id)
	if err != nil {
		return nil, nil, err
	}

	return v, proof, nil
}

func decodeRecord(raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.StorageCoreError.Describe(err)
	}
	return nil
}

func (s *Schema) Votings(offset, limit uint64) (votings []Voting, err error) {
	err = s.votings().Iterate(offset, limit, func(_ uint64, raw []byte) (bool, error) {
		var v Voting
		if err := decodeRecord(raw, &v); err != nil {
			return false, err
		}
		votings = append(votings, v)
		return true, nil
	})

	return
}

// Proposals returns nil when there is no voting with id.
func (s *Schema) Proposals(votingID uint64) (proposals []Proposal, err error) {
	var voting *Voting
	if voting, err = s.Voting(votingID); err != nil || voting == nil {
		return
	}

	proposals = []Proposal{}
	err = index.NewListIndex(s.st, votingProposalsName(votingID)).Iterate(0, 0, func(_ uint64, raw []byte) (bool, error) {
		var p Proposal
		if err := decodeRecord(raw, &p); err != nil {
			return false, err
		}
		proposals = append(proposals, p)
		return true, nil
	})

	return
}

// Proposal returns nil when the voting or the proposal does not exist.
func (s *Schema) Proposal(votingID, proposalID uint64) (*Proposal, error) {
	var p Proposal
	found, err := index.NewListIndex(s.st, votingProposalsName(votingID)).Get(proposalID, &p)
	if err != nil || !found {
		return nil, err
	}

	return &p, nil
}

func (s *Schema) HasVoted(votingID uint64, address string) (bool, error) {
	return index.NewKeySetIndex(s.st, votingVotedName(votingID)).Contains([]byte(address))
}

// CreateVoting appends a new voting whose proposals all start with zero
// votes.
func (s *Schema) CreateVoting(creator string, subjects []string, startTime, duration uint64) (voting Voting, err error) {
	var id uint64
	if id, err = s.votings().Len(); err != nil {
		return
	}

	proposals := index.NewListIndex(s.st, votingProposalsName(id))
	for _, subject := range subjects {
		if _, err = proposals.Push(NewProposal(subject)); err != nil {
			return
		}
	}

	voting = NewVoting(id, creator, len(subjects), startTime, duration)
	if voting.ProposalsRoot, err = proposals.Root(); err != nil {
		return
	}
	if voting.VotedRoot, err = index.NewKeySetIndex(s.st, votingVotedName(id)).Root(); err != nil {
		return
	}

	if _, err = s.votings().Push(voting); err != nil {
		return
	}

	return
}

// AddVote adds the weight of voter to the proposal and marks the voter as
// voted in the same view.
func (s *Schema) AddVote(voting Voting, proposalID uint64, voter Voter) (err error) {
	proposals := index.NewListIndex(s.st, votingProposalsName(voting.ID))
	voted := index.NewKeySetIndex(s.st, votingVotedName(voting.ID))

	var p Proposal
	var found bool
	if found, err = proposals.Get(proposalID, &p); err != nil {
		return
	} else if !found {
		return errors.ProposalNoneExists
	}

	if err = proposals.Set(proposalID, p.AddVotes(voter.Weight)); err != nil {
		return
	}
	if err = voted.Insert([]byte(voter.Address)); err != nil {
		return
	}

	if voting.ProposalsRoot, err = proposals.Root(); err != nil {
		return
	}
	if voting.VotedRoot, err = voted.Root(); err != nil {
		return
	}

	return s.votings().Set(voting.ID, voting)
}

func (s *Schema) VotingResult(id uint64, ledgerTime uint64) (*VotingResult, error) {
	voting, err := s.Voting(id)
	if err != nil || voting == nil {
		return nil, err
	}

	proposals, err := s.Proposals(id)
	if err != nil {
		return nil, err
	}

	r := NewVotingResult(*voting, proposals, ledgerTime)
	return &r, nil
}

//
// Ballots
//

// Ballot returns nil when no ballot has hash.
func (s *Schema) Ballot(hash common.Hash) (*BallotData, error) {
	var b BallotData
	if found, err := s.ballots().Get(hash.Bytes(), &b); err != nil || !found {
		return nil, err
	}

	return &b, nil
}

func (s *Schema) BallotWithProof(hash common.Hash) (*BallotData, *merkle.Proof, error) {
	b, err := s.Ballot(hash)
	if err != nil {
		return nil, nil, err
	}

	proof, err := s.ballots().GetWithProof(hash.Bytes())
	if err != nil {
		return nil, nil, err
	}

	return b, proof, nil
}

func (s *Schema) BallotsLen() (uint64, error) {
	return s.ballotsOrdinal().Len()
}

// Ballots lists the ballots in the order they were posted.
func (s *Schema) Ballots(offset, limit uint64) (ballots []BallotData, err error) {
	var hashes []common.Hash
	err = s.ballotsOrdinal().Iterate(offset, limit, func(_ uint64, raw []byte) (bool, error) {
		var h common.Hash
		if err := decodeRecord(raw, &h); err != nil {
			return false, err
		}
		hashes = append(hashes, h)
		return true, nil
	})
	if err != nil {
		return
	}

	for _, h := range hashes {
		var b *BallotData
		if b, err = s.Ballot(h); err != nil {
			return
		} else if b == nil {
			err = errors.InternalError.Describe(fmt.Sprintf("ballot, %s in ordinal list, does not exist", h))
			return
		}
		ballots = append(ballots, *b)
	}

	return
}

// PostBallot stores the ballot and reserves one empty vote slot per
// validator.
func (s *Schema) PostBallot(list ProposalList, source, txHash string, validators int) (data BallotData, err error) {
	hash := list.Hash()

	votes := s.votes(hash)
	for i := 0; i < validators; i++ {
		if _, err = votes.Push(NoVote()); err != nil {
			return
		}
	}

	var ordinal uint64
	if ordinal, err = s.ballotsOrdinal().Push(hash); err != nil {
		return
	}

	data = BallotData{
		ProposalsHash: hash,
		Source:        source,
		TxHash:        txHash,
		Proposals:     list.String(),
		Validators:    uint64(validators),
		Ordinal:       ordinal,
	}
	if data.VotesRoot, err = votes.Root(); err != nil {
		return
	}

	err = s.ballots().Put(hash.Bytes(), data)

	return
}

// Votes returns every slot of the ballot, nil when the ballot does not
// exist.
func (s *Schema) Votes(hash common.Hash) (votes []MaybeVote, err error) {
	var b *BallotData
	if b, err = s.Ballot(hash); err != nil || b == nil {
		return
	}

	votes = []MaybeVote{}
	err = s.votes(hash).Iterate(0, 0, func(_ uint64, raw []byte) (bool, error) {
		var v MaybeVote
		if err := decodeRecord(raw, &v); err != nil {
			return false, err
		}
		votes = append(votes, v)
		return true, nil
	})

	return
}

// VoteSlot returns nil when the slot was never reserved.
func (s *Schema) VoteSlot(hash common.Hash, validatorID uint64) (*MaybeVote, error) {
	var v MaybeVote
	if found, err := s.votes(hash).Get(validatorID, &v); err != nil || !found {
		return nil, err
	}

	return &v, nil
}

func (s *Schema) VoteSlotWithProof(hash common.Hash, validatorID uint64) (*MaybeVote, *merkle.Proof, error) {
	v, err := s.VoteSlot(hash, validatorID)
	if err != nil {
		return nil, nil, err
	}

	proof, err := s.votes(hash).GetWithProof(validatorID)
	if err != nil {
		return nil, nil, err
	}

	return v, proof, nil
}

// SetVote fills the slot and refreshes the votes root of the ballot.
func (s *Schema) SetVote(data BallotData, validatorID uint64, tx transaction.Transaction) (err error) {
	votes := s.votes(data.ProposalsHash)
	if err = votes.Set(validatorID, NewMaybeVote(tx)); err != nil {
		return
	}

	if data.VotesRoot, err = votes.Root(); err != nil {
		return
	}

	return s.ballots().Put(data.ProposalsHash.Bytes(), data)
}

func (s *Schema) BallotResult(hash common.Hash) (*BallotResult, error) {
	data, err := s.Ballot(hash)
	if err != nil || data == nil {
		return nil, err
	}

	list, err := data.ProposalList()
	if err != nil {
		return nil, errors.InternalError.Describe(err)
	}

	votes, err := s.Votes(hash)
	if err != nil {
		return nil, err
	}

	r := TallyBallot(*data, list, votes)
	return &r, nil
}

//
// Transaction results
//

// TransactionResult returns nil when the transaction was never executed.
func (s *Schema) TransactionResult(hash string) (*TransactionResult, error) {
	var r TransactionResult
	if found, err := s.transactionResults().Get([]byte(hash), &r); err != nil || !found {
		return nil, err
	}

	return &r, nil
}

func (s *Schema) SetTransactionResult(r TransactionResult) error {
	return s.transactionResults().Put([]byte(r.Hash), r)
}

//
// State hash
//

// StateHashNames is the order of the roots in `StateHash()`.
var StateHashNames = []string{
	VotersName,
	ChairpersonName,
	VotingsName,
	BallotsName,
	BallotsOrdinalName,
	TransactionResultsName,
}

// StateHash returns the roots of the top level indexes, in the order of
// `StateHashNames`.
func (s *Schema) StateHash() ([]common.Hash, error) {
	roots := []interface {
		Root() (common.Hash, error)
	}{
		s.voters(),
		s.chairperson(),
		s.votings(),
		s.ballots(),
		s.ballotsOrdinal(),
		s.transactionResults(),
	}

	var hashes []common.Hash
	for _, r := range roots {
		h, err := r.Root()
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}

	return hashes, nil
}

// StateRoot commits to the whole state in one hash.
func (s *Schema) StateRoot() (common.Hash, error) {
	hashes, err := s.StateHash()
	if err != nil {
		return common.Hash{}, err
	}

	return common.BytesToHash(common.MustMakeObjectHash(hashes)), nil
}
