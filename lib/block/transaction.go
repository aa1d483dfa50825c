package block

import (
	"fmt"

	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

const BlockTransactionPrefixHash string = "bx-"

// BlockTransaction keeps a transaction with the block it was executed in.
// The outcome of the execution is in the ballot transaction results.
type BlockTransaction struct {
	Hash        string `json:"hash"`
	Block       string `json:"block"` /* `Block.Hash` */
	BlockHeight uint64 `json:"block_height"`
	Index       uint64 `json:"index"`

	Transaction transaction.Transaction `json:"transaction"`
}

func NewBlockTransaction(b Block, index uint64, tx transaction.Transaction) BlockTransaction {
	return BlockTransaction{
		Hash:        tx.GetHash(),
		Block:       b.Hash,
		BlockHeight: b.Height,
		Index:       index,
		Transaction: tx,
	}
}

func GetBlockTransactionKey(hash string) string {
	return fmt.Sprintf("%s%s", BlockTransactionPrefixHash, hash)
}

// Save keeps the first block a transaction was included in; a replayed
// transaction does not overwrite it.
func (bt BlockTransaction) Save(st *storage.LevelDBBackend) (err error) {
	key := GetBlockTransactionKey(bt.Hash)

	var exists bool
	if exists, err = st.Has(key); err != nil || exists {
		return
	}

	return st.New(key, bt)
}

func GetBlockTransaction(st *storage.LevelDBBackend, hash string) (bt BlockTransaction, err error) {
	if err = st.Get(GetBlockTransactionKey(hash), &bt); err != nil {
		if errors.StorageRecordDoesNotExist.Is(errors.FromError(err)) {
			err = errors.TransactionNotFound
		}
	}

	return
}

func ExistsBlockTransaction(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetBlockTransactionKey(hash))
}
