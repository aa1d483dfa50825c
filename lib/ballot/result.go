package ballot

import (
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction"
)

const (
	TransactionStatusApplied  = "applied"
	TransactionStatusRejected = "rejected"
)

// TransactionResult is the recorded outcome of an executed transaction.
type TransactionResult struct {
	Hash    string `json:"hash"`
	Source  string `json:"source"`
	Type    string `json:"type"`
	Height  uint64 `json:"height"`
	Status  string `json:"status"`
	Code    uint   `json:"code"`
	Message string `json:"message,omitempty"`
}

func NewTransactionResult(tx transaction.Transaction, height uint64, err error) TransactionResult {
	r := TransactionResult{
		Hash:   tx.GetHash(),
		Source: tx.Source(),
		Type:   string(tx.OperationType()),
		Height: height,
		Status: TransactionStatusApplied,
	}

	if e := errors.FromError(err); e != nil {
		r.Status = TransactionStatusRejected
		r.Code = e.Code
		r.Message = e.Message
	}

	return r
}

func (r TransactionResult) IsApplied() bool {
	return r.Status == TransactionStatusApplied
}

// Error returns the rejection as `*errors.Error`, nil when applied.
func (r TransactionResult) Error() *errors.Error {
	if r.IsApplied() {
		return nil
	}
	return errors.NewError(r.Code, r.Message)
}
