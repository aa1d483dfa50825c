package runner

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

// SubmitChecker takes a transaction sent to the node API up to the pool.
// Nothing here depends on the state the transaction will be executed
// against; that is the engine's job.
type SubmitChecker struct {
	common.DefaultChecker

	Conf    common.Config
	Storage *storage.LevelDBBackend
	Pool    *transaction.Pool
	Log     logging.Logger

	Body        []byte
	Transaction transaction.Transaction
}

var DefaultSubmitCheckerFuncs = []common.CheckerFunc{
	TransactionUnmarshal,
	TransactionWellFormed,
	TransactionNotApplied,
	PushIntoTransactionPool,
}

func TransactionUnmarshal(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SubmitChecker)

	var tx transaction.Transaction
	if tx, err = transaction.NewTransactionFromJSON(checker.Body); err != nil {
		return
	}

	checker.Transaction = tx
	checker.Log = checker.Log.New(logging.Ctx{"tx": tx.GetHash()})

	return
}

func TransactionWellFormed(c common.Checker, args ...interface{}) error {
	checker := c.(*SubmitChecker)

	return checker.Transaction.IsWellFormed(checker.Conf)
}

// TransactionNotApplied rejects a transaction which was already applied in
// a block. A rejected one may come again; the engine evaluates it again.
func TransactionNotApplied(c common.Checker, args ...interface{}) error {
	checker := c.(*SubmitChecker)

	result, err := ballot.NewSchema(checker.Storage).TransactionResult(checker.Transaction.GetHash())
	if err != nil {
		return errors.FromError(err)
	}
	if result != nil && result.IsApplied() {
		return errors.TransactionAlreadyExists
	}

	return nil
}

func PushIntoTransactionPool(c common.Checker, args ...interface{}) error {
	checker := c.(*SubmitChecker)

	if err := checker.Pool.Add(checker.Transaction); err != nil {
		return err
	}

	checker.Log.Debug("transaction pushed into the pool", "type", checker.Transaction.OperationType())

	return nil
}
