package engine

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
)

// ExecutionChecker carries one transaction through verify, precheck and
// apply. The prechecks keep what they loaded, so apply does not read it
// again.
type ExecutionChecker struct {
	common.DefaultChecker

	Engine      *Engine
	Schema      *ballot.Schema
	Transaction transaction.Transaction
	LedgerTime  uint64
	Log         logging.Logger

	voter       *ballot.Voter
	target      *ballot.Voter
	voting      *ballot.Voting
	list        ballot.ProposalList
	ballotData  *ballot.BallotData
	validatorID int
}

var ExecutionCheckerFuncs = []common.CheckerFunc{
	CheckTransactionWellFormed,
	CheckTransactionNotApplied,
	CheckPrecondition,
	ApplyOperation,
}

// CheckTransactionWellFormed verifies the signature and the operation
// before anything is read from the storage.
func CheckTransactionWellFormed(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecutionChecker)

	return checker.Transaction.IsWellFormed(checker.Engine.conf)
}

// CheckTransactionNotApplied rejects the replay of an applied transaction.
// A rejected transaction can be sent again and is evaluated again.
func CheckTransactionNotApplied(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecutionChecker)

	result, err := checker.Schema.TransactionResult(checker.Transaction.GetHash())
	if err != nil {
		return err
	}
	if result != nil && result.IsApplied() {
		return errors.TransactionAlreadyExists
	}

	return nil
}

func CheckPrecondition(c common.Checker, args ...interface{}) error {
	checker := c.(*ExecutionChecker)

	return precheckOperation(checker)
}

func ApplyOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecutionChecker)

	if err = applyOperation(checker); err != nil {
		checker.Log.Error("failed to apply operation", "error", err)
		return
	}

	return
}
