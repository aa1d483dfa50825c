package engine

import (
	"fmt"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

// Engine validates and applies ballot transactions. It keeps no state of its
// own; everything is read from and written to the given storage view, and
// the ledger time is always passed in by the caller.
type Engine struct {
	conf common.Config
	log  logging.Logger
}

func NewEngine(conf common.Config) *Engine {
	return &Engine{
		conf: conf,
		log:  log.New(logging.Ctx{"network-id": string(conf.NetworkID)}),
	}
}

func (e *Engine) Config() common.Config {
	return e.conf
}

// Execute runs one transaction against st, which must be writable. On
// success its effects are merged into st; on rejection st is untouched and
// the returned error is an `*errors.Error`.
func (e *Engine) Execute(st *storage.LevelDBBackend, tx transaction.Transaction, ledgerTime uint64) (err error) {
	var fork *storage.LevelDBBackend
	if fork, err = st.OpenBatch(); err != nil {
		return rejection(err)
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("panic while executing transaction", "tx", tx.GetHash(), "panic", r)
			err = errors.InternalError.Describe(r)
		}

		if err != nil {
			fork.Discard()
			return
		}

		if err = fork.Commit(); err != nil {
			err = rejection(err)
		}
	}()

	checker := &ExecutionChecker{
		DefaultChecker: common.DefaultChecker{Funcs: ExecutionCheckerFuncs},
		Engine:         e,
		Schema:         ballot.NewSchema(fork),
		Transaction:    tx,
		LedgerTime:     ledgerTime,
		Log:            e.log.New(logging.Ctx{"tx": tx.GetHash()}),
	}

	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		err = rejection(err)
		return
	}

	return
}

// ExecuteBlock executes txs in order at the given height and records the
// outcome of each one in the transaction results. A rejected transaction
// never affects the others; only a storage failure while recording stops
// the block.
func (e *Engine) ExecuteBlock(st *storage.LevelDBBackend, height, ledgerTime uint64, txs []transaction.Transaction) (results []ballot.TransactionResult, err error) {
	schema := ballot.NewSchema(st)

	for _, tx := range txs {
		started := time.Now()
		opType := string(tx.OperationType())

		execErr := e.Execute(st, tx, ledgerTime)
		result := ballot.NewTransactionResult(tx, height, execErr)
		results = append(results, result)

		if execErr != nil {
			code := result.Code
			metrics.Engine.Rejected(opType, code, started)
			e.log.Debug(
				"transaction rejected",
				"height", height,
				"tx", tx.GetHash(),
				"type", opType,
				"code", code,
				"message", result.Message,
			)

			// the first outcome of a transaction stays
			if errors.TransactionAlreadyExists.Is(errors.FromError(execErr)) {
				continue
			}
		} else {
			metrics.Engine.Applied(opType, started)
			e.log.Debug("transaction applied", "height", height, "tx", tx.GetHash(), "type", opType)
		}

		if err = schema.SetTransactionResult(result); err != nil {
			e.log.Error("failed to record transaction result", "tx", tx.GetHash(), "error", err)
			return
		}
	}

	return
}

// rejection keeps the domain kinds and turns storage failures into
// `errors.InternalError`.
func rejection(err error) *errors.Error {
	e := errors.FromError(err)
	if e == nil {
		return nil
	}

	if e.Code >= errors.StorageRecordDoesNotExist.Code && e.Code != errors.InternalError.Code {
		return errors.InternalError.Describe(fmt.Sprintf("%d: %s", e.Code, e.Message))
	}

	return e
}
