package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/transaction"
)

const (
	TransactionStatusPending  = "pending"
	TransactionStatusApplied  = ballot.TransactionStatusApplied
	TransactionStatusRejected = ballot.TransactionStatusRejected
)

// Transaction is a transaction included in a block, with the outcome of
// its latest execution.
type Transaction struct {
	bt     *block.BlockTransaction
	result *ballot.TransactionResult
}

func NewTransaction(bt *block.BlockTransaction, result *ballot.TransactionResult) *Transaction {
	return &Transaction{bt: bt, result: result}
}

func (t Transaction) GetMap() hal.Entry {
	m := hal.Entry{
		"hash":         t.bt.Hash,
		"block":        t.bt.Block,
		"block_height": t.bt.BlockHeight,
		"index":        t.bt.Index,
		"source":       t.bt.Transaction.Source(),
		"type":         t.bt.Transaction.OperationType(),
		"created":      t.bt.Transaction.H.Created,
		"operation":    t.bt.Transaction.B.Operation,
	}
	if t.result != nil {
		m["status"] = t.result.Status
		m["code"] = t.result.Code
		if t.result.Message != "" {
			m["message"] = t.result.Message
		}
	}

	return m
}

func (t Transaction) Resource() *hal.Resource {
	r := hal.NewResource(t, t.LinkSelf())
	r.AddLink("block", hal.NewLink(expandURL(URLBlock, t.bt.Block)))
	r.AddLink("source", hal.NewLink(expandURL(URLVoters, t.bt.Transaction.Source())))

	return r
}

func (t Transaction) LinkSelf() string {
	return expandURL(URLTransactionByHash, t.bt.Hash)
}

// TransactionPost is a transaction waiting in the pool.
type TransactionPost struct {
	tx transaction.Transaction
}

func NewTransactionPost(tx transaction.Transaction) *TransactionPost {
	return &TransactionPost{tx: tx}
}

func (t TransactionPost) GetMap() hal.Entry {
	return hal.Entry{
		"hash":      t.tx.GetHash(),
		"source":    t.tx.Source(),
		"type":      t.tx.OperationType(),
		"created":   t.tx.H.Created,
		"operation": t.tx.B.Operation,
		"status":    TransactionStatusPending,
	}
}

func (t TransactionPost) Resource() *hal.Resource {
	return hal.NewResource(t, t.LinkSelf())
}

func (t TransactionPost) LinkSelf() string {
	return expandURL(URLTransactionByHash, t.tx.GetHash())
}
