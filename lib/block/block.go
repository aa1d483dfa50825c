package block

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/observer"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

const (
	maxBlockHeightStringLength int = 20

	BlockPrefixHash   string = "bh-"
	BlockPrefixHeight string = "bt-"

	EventBlockSaved string = "bk-saved"
)

// Block is what the host stores after every execution round. Its timestamp
// is the ledger time the transactions were executed with.
type Block struct {
	Header
	Transactions []string `json:"transactions"` /* []Transaction.GetHash() */

	Hash     string `json:"hash"`
	Proposer string `json:"proposer"`
}

func (b Block) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(b)
	return
}

func (b Block) String() string {
	encoded, _ := json.MarshalIndent(b, "", "  ")
	return string(encoded)
}

// MakeGenesisBlock saves the block at height 0. It has no transactions and
// commits to the empty state.
func MakeGenesisBlock(st *storage.LevelDBBackend, timestamp uint64, stateRoot common.Hash) (b Block, err error) {
	var exists bool
	if exists, err = ExistsBlockByHeight(st, 0); err != nil {
		return
	} else if exists {
		err = errors.BlockAlreadyExists
		return
	}

	b = Block{
		Header: Header{
			Version:          BlockVersion,
			TransactionsRoot: getTransactionRoot([]string{}),
			Timestamp:        timestamp,
			StateRoot:        stateRoot,
		},
		Transactions: []string{},
	}
	b.Hash = base58.Encode(common.MustMakeObjectHash(b))

	err = b.Save(st)

	return
}

func NewBlock(proposer string, prev Block, timestamp uint64, transactions []string, stateRoot common.Hash) Block {
	b := Block{
		Header:       NewBlockHeader(prev.Header, prev.Hash, timestamp, transactions, stateRoot),
		Transactions: transactions,
		Proposer:     proposer,
	}

	log.Debug("NewBlock created", "PrevTotalTxs", prev.TotalTxs, "txs", len(transactions), "TotalTxs", b.TotalTxs)

	b.Hash = base58.Encode(common.MustMakeObjectHash(b))

	return b
}

func getTransactionRoot(txs []string) string {
	return common.MustMakeObjectHashString(txs)
}

func GetBlockKey(hash string) string {
	return fmt.Sprintf("%s%s", BlockPrefixHash, hash)
}

func GetBlockKeyPrefixHeight(height uint64) string {
	f := fmt.Sprintf("%%s%%0%dd", maxBlockHeightStringLength)
	return fmt.Sprintf(f, BlockPrefixHeight, height)
}

func (b Block) Save(st *storage.LevelDBBackend) (err error) {
	key := GetBlockKey(b.Hash)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	} else if exists {
		return errors.BlockAlreadyExists
	}

	if err = st.New(key, b); err != nil {
		return
	}
	if err = st.New(GetBlockKeyPrefixHeight(b.Height), b.Hash); err != nil {
		return
	}

	observer.BlockObserver.Trigger(EventBlockSaved, b)

	return
}

func GetBlock(st *storage.LevelDBBackend, hash string) (b Block, err error) {
	if err = st.Get(GetBlockKey(hash), &b); err != nil {
		if errors.StorageRecordDoesNotExist.Is(errors.FromError(err)) {
			err = errors.BlockNotFound
		}
	}

	return
}

func ExistsBlock(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetBlockKey(hash))
}

func ExistsBlockByHeight(st *storage.LevelDBBackend, height uint64) (bool, error) {
	return st.Has(GetBlockKeyPrefixHeight(height))
}

func GetBlockByHeight(st *storage.LevelDBBackend, height uint64) (b Block, err error) {
	var hash string
	if err = st.Get(GetBlockKeyPrefixHeight(height), &hash); err != nil {
		if errors.StorageRecordDoesNotExist.Is(errors.FromError(err)) {
			err = errors.BlockNotFound
		}
		return
	}

	return GetBlock(st, hash)
}

// GetBlocksByHeight iterates the committed blocks in height order.
func GetBlocksByHeight(st *storage.LevelDBBackend, options storage.ListOptions) (
	func() (Block, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(BlockPrefixHeight, options)

	return (func() (Block, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Block{}, false, item.Key
			}

			var hash string
			json.Unmarshal(item.Value, &hash)

			b, err := GetBlock(st, hash)
			if err != nil {
				return Block{}, false, item.Key
			}

			return b, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

func GetLatestBlock(st *storage.LevelDBBackend) (b Block, err error) {
	iterFunc, closeFunc := GetBlocksByHeight(st, storage.NewDefaultListOptions(true, nil, 1))
	b, _, _ = iterFunc()
	closeFunc()

	if b.Hash == "" {
		err = errors.BlockNotFound
		return
	}

	return
}
