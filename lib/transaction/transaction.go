package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/transaction/operation"
)

const TransactionType = "transaction"

// Transaction carries exactly one operation, signed by its source.
type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source    string              `json:"source"`
	Nonce     uint64              `json:"nonce"`
	Operation operation.Operation `json:"operation"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

// NewTransaction makes an unsigned transaction. `nonce` only keeps
// otherwise identical transactions apart; it is not checked.
func NewTransaction(source string, nonce uint64, opb operation.Body) (tx Transaction, err error) {
	var op operation.Operation
	if op, err = operation.NewOperation(opb); err != nil {
		return
	}

	body := Body{
		Source:    source,
		Nonce:     nonce,
		Operation: op,
	}

	tx = Transaction{
		T: TransactionType,
		H: Header{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckSource,
	CheckHash,
	CheckVerifySignature,
	CheckOperation,
}

// IsWellFormed checks everything which does not need the state: the
// source address, the hash, the signature and the operation itself.
func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Config:         conf,
		Transaction:    tx,
	}

	return common.RunChecker(checker, common.DefaultDeferFunc)
}

func (tx Transaction) GetType() string {
	return tx.T
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) OperationType() operation.OperationType {
	return tx.B.Operation.H.Type
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}

func NewTransactionFromJSON(b []byte) (tx Transaction, err error) {
	if err = json.Unmarshal(b, &tx); err != nil {
		if e, ok := err.(*errors.Error); ok {
			return tx, e
		}
		err = errors.InvalidOperation.Describe(err)
	}

	return
}
