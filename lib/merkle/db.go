package merkle

import (
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/syndtr/goleveldb/leveldb"

	"boscoin.io/ballot/lib/storage"
)

// NodePrefix is prepended to the hash of every trie node in the storage.
const NodePrefix = "tn-"

// NodeDB exposes a storage view as `ethdb.Database`, so trie nodes are
// read from and written to the same fork as the rest of the state.
type NodeDB struct {
	st *storage.LevelDBBackend
}

var _ ethdb.Database = (*NodeDB)(nil)

func NewNodeDB(st *storage.LevelDBBackend) *NodeDB {
	return &NodeDB{st: st}
}

func makeNodeKey(key []byte) []byte {
	k := make([]byte, 0, len(NodePrefix)+len(key))
	k = append(k, NodePrefix...)
	return append(k, key...)
}

func (db *NodeDB) Put(key []byte, value []byte) error {
	return db.st.Core.Put(makeNodeKey(key), value, nil)
}

func (db *NodeDB) Has(key []byte) (bool, error) {
	return db.st.Core.Has(makeNodeKey(key), nil)
}

func (db *NodeDB) Get(key []byte) ([]byte, error) {
	return db.st.Core.Get(makeNodeKey(key), nil)
}

func (db *NodeDB) Delete(key []byte) error {
	return db.st.Core.Delete(makeNodeKey(key), nil)
}

// Close does nothing; the storage is owned by the caller.
func (db *NodeDB) Close() {}

func (db *NodeDB) NewBatch() ethdb.Batch {
	return &nodeBatch{st: db.st, b: new(leveldb.Batch)}
}

type nodeBatch struct {
	st   *storage.LevelDBBackend
	b    *leveldb.Batch
	size int
}

func (b *nodeBatch) Put(key, value []byte) error {
	b.b.Put(makeNodeKey(key), value)
	b.size += len(value)
	return nil
}

func (b *nodeBatch) Delete(key []byte) error {
	b.b.Delete(makeNodeKey(key))
	b.size++
	return nil
}

func (b *nodeBatch) Write() error {
	return b.st.Core.Write(b.b, nil)
}

func (b *nodeBatch) ValueSize() int {
	return b.size
}

func (b *nodeBatch) Reset() {
	b.b.Reset()
	b.size = 0
}
