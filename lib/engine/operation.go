package engine

import (
	"math"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

func precheckOperation(c *ExecutionChecker) error {
	source := c.Transaction.Source()

	switch body := c.Transaction.B.Operation.B.(type) {
	case operation.CreateVoter:
		return precheckCreateVoter(c, source)
	case operation.ChangeChairperson:
		return precheckChangeChairperson(c, source, body)
	case operation.SetVoterActiveState:
		return precheckSetVoterActiveState(c, source, body)
	case operation.NewProposals:
		return precheckNewProposals(c, source, body)
	case operation.VoteProposal:
		return precheckVoteProposal(c, source, body)
	case operation.PostBallot:
		return precheckPostBallot(c, source, body)
	case operation.VoteBallot:
		return precheckVoteBallot(c, source, body)
	default:
		return errors.UnknownOperationType
	}
}

func applyOperation(c *ExecutionChecker) error {
	source := c.Transaction.Source()

	switch body := c.Transaction.B.Operation.B.(type) {
	case operation.CreateVoter:
		return applyCreateVoter(c, source, body)
	case operation.ChangeChairperson:
		return c.Schema.SetChairperson(ballot.NewChairperson(*c.target))
	case operation.SetVoterActiveState:
		return c.Schema.SetVoter(c.target.WithActiveState(body.Active))
	case operation.NewProposals:
		return applyNewProposals(c, source, body)
	case operation.VoteProposal:
		return c.Schema.AddVote(*c.voting, body.ProposalID, *c.voter)
	case operation.PostBallot:
		return applyPostBallot(c, source)
	case operation.VoteBallot:
		return c.Schema.SetVote(*c.ballotData, uint64(c.validatorID), c.Transaction)
	default:
		return errors.UnknownOperationType
	}
}

//
// Voters
//

func precheckCreateVoter(c *ExecutionChecker, source string) error {
	voter, err := c.Schema.Voter(source)
	if err != nil {
		return err
	}
	if voter != nil {
		return errors.VoterAlreadyExists
	}

	return nil
}

// applyCreateVoter registers the source; the first voter becomes the
// chairperson.
func applyCreateVoter(c *ExecutionChecker, source string, body operation.CreateVoter) error {
	voter := ballot.NewVoter(source, body.Name, c.Engine.conf.InitialVoterWeight)
	if err := c.Schema.SetVoter(voter); err != nil {
		return err
	}

	chairperson, err := c.Schema.Chairperson()
	if err != nil {
		return err
	}
	if chairperson != nil {
		return nil
	}

	c.Log.Debug("first voter becomes chairperson", "address", source)
	return c.Schema.SetChairperson(ballot.NewChairperson(voter))
}

func requireChairperson(c *ExecutionChecker, source string) error {
	chairperson, err := c.Schema.Chairperson()
	if err != nil {
		return err
	}
	if chairperson == nil || chairperson.Address != source {
		return errors.ChairpersonPermissionRequired
	}

	return nil
}

func loadTarget(c *ExecutionChecker, address string) (err error) {
	if c.target, err = c.Schema.Voter(address); err != nil {
		return
	}
	if c.target == nil {
		return errors.VoterNoneExists
	}

	return
}

func precheckChangeChairperson(c *ExecutionChecker, source string, body operation.ChangeChairperson) error {
	if err := requireChairperson(c, source); err != nil {
		return err
	}
	if err := loadTarget(c, body.Target); err != nil {
		return err
	}
	if !c.target.IsActive {
		return errors.VoterInactive
	}

	return nil
}

func precheckSetVoterActiveState(c *ExecutionChecker, source string, body operation.SetVoterActiveState) error {
	if source == body.Target {
		return errors.VoterActiveStateSelfChange
	}
	if err := requireChairperson(c, source); err != nil {
		return err
	}

	return loadTarget(c, body.Target)
}

//
// Votings
//

// requireActiveVoter loads the source as voter.
func requireActiveVoter(c *ExecutionChecker, source string) (err error) {
	if c.voter, err = c.Schema.Voter(source); err != nil {
		return
	}
	if c.voter == nil {
		return errors.VoterPermissionRequired
	}
	if !c.voter.IsActive {
		return errors.VoterInactive
	}

	return
}

func precheckNewProposals(c *ExecutionChecker, source string, body operation.NewProposals) error {
	if err := requireActiveVoter(c, source); err != nil {
		return err
	}
	if body.Duration > math.MaxUint64-c.LedgerTime {
		return errors.InvalidOperation.Clone().SetData("duration", body.Duration)
	}
	return nil
}

func applyNewProposals(c *ExecutionChecker, source string, body operation.NewProposals) error {
	voting, err := c.Schema.CreateVoting(source, body.Proposals, c.LedgerTime, body.Duration)
	if err != nil {
		return err
	}

	c.Log.Debug("voting opened", "id", voting.ID, "proposals", voting.Proposals, "deadline", voting.Deadline)
	return nil
}

func precheckVoteProposal(c *ExecutionChecker, source string, body operation.VoteProposal) (err error) {
	if err = requireActiveVoter(c, source); err != nil {
		return
	}

	if c.voting, err = c.Schema.Voting(body.VotingID); err != nil {
		return
	}
	if c.voting == nil {
		return errors.VotingNoneExists
	}
	if c.voting.IsClosed(c.LedgerTime) {
		return errors.VotingClosed
	}

	var voted bool
	if voted, err = c.Schema.HasVoted(body.VotingID, source); err != nil {
		return
	}
	if voted {
		return errors.VoterAlreadyVoted
	}

	if body.ProposalID >= c.voting.Proposals {
		return errors.ProposalNoneExists
	}

	return
}

//
// Ballots
//

func requireValidator(c *ExecutionChecker, source string) error {
	id, found := c.Engine.conf.ValidatorID(source)
	if !found {
		return errors.UnknownSender
	}
	c.validatorID = id

	return nil
}

func precheckPostBallot(c *ExecutionChecker, source string, body operation.PostBallot) (err error) {
	if err = requireValidator(c, source); err != nil {
		return
	}

	if c.list, err = ballot.ParseProposalList(body.Proposals); err != nil {
		return
	}
	if c.list.HasDuplicateID() {
		return errors.PostDuplicateProposalId
	}

	var posted *ballot.BallotData
	if posted, err = c.Schema.Ballot(c.list.Hash()); err != nil {
		return
	}
	if posted != nil {
		return errors.BallotAlreadyPosted
	}

	return
}

func applyPostBallot(c *ExecutionChecker, source string) error {
	data, err := c.Schema.PostBallot(c.list, source, c.Transaction.GetHash(), len(c.Engine.conf.Validators))
	if err != nil {
		return err
	}

	c.Log.Debug("ballot posted", "hash", data.ProposalsHash, "ordinal", data.Ordinal)
	return nil
}

func precheckVoteBallot(c *ExecutionChecker, source string, body operation.VoteBallot) (err error) {
	if err = requireValidator(c, source); err != nil {
		return
	}

	var hash common.Hash
	if hash, err = common.ParseHash(body.ProposalsHash); err != nil {
		return errors.BallotNoneExists
	}

	if c.ballotData, err = c.Schema.Ballot(hash); err != nil {
		return
	}
	if c.ballotData == nil {
		return errors.BallotNoneExists
	}

	var slot *ballot.MaybeVote
	if slot, err = c.Schema.VoteSlot(hash, uint64(c.validatorID)); err != nil {
		return
	}
	if slot == nil {
		return errors.InternalError.Describe("vote slot of validator is missing")
	}
	if !slot.IsNone() {
		return errors.AlreadyVoted
	}

	if c.list, err = c.ballotData.ProposalList(); err != nil {
		return errors.InternalError.Describe(err)
	}
	if !c.list.Contains(body.ProposalID, body.ProposalSubject) {
		return errors.VotedProposalNoneExists
	}

	return
}
