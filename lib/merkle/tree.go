package merkle

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/trie"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/storage"
)

// EmptyRoot is the root of a tree without any item, the keccak-256 of the
// RLP encoded empty string.
var EmptyRoot = common.BytesToHash(crypto.Keccak256([]byte{0x80}))

// Tree is a Merkle-Patricia trie whose nodes live in a storage view.
type Tree struct {
	db   *trie.Database
	trie *trie.Trie
}

func NewTree(st *storage.LevelDBBackend, root common.Hash) (*Tree, error) {
	if root == EmptyRoot {
		root = common.Hash{}
	}

	db := trie.NewDatabase(NewNodeDB(st))
	tr, err := trie.New(ethcommon.Hash(root), db)
	if err != nil {
		log.Error("failed to open tree", "root", root, "error", err)
		return nil, errors.StorageCoreError.Describe(err)
	}

	return &Tree{db: db, trie: tr}, nil
}

// Get returns nil when the key does not exist.
func (t *Tree) Get(key []byte) ([]byte, error) {
	v, err := t.trie.TryGet(key)
	if err != nil {
		return nil, errors.StorageCoreError.Describe(err)
	}
	return v, nil
}

// Update sets the value of key; an empty value removes the key.
func (t *Tree) Update(key, value []byte) error {
	if err := t.trie.TryUpdate(key, value); err != nil {
		return errors.StorageCoreError.Describe(err)
	}
	return nil
}

func (t *Tree) Delete(key []byte) error {
	if err := t.trie.TryDelete(key); err != nil {
		return errors.StorageCoreError.Describe(err)
	}
	return nil
}

func (t *Tree) Hash() common.Hash {
	return common.Hash(t.trie.Hash())
}

// Commit writes the dirty nodes into the storage view and returns the new
// root.
func (t *Tree) Commit() (common.Hash, error) {
	root, err := t.trie.Commit(nil)
	if err != nil {
		return common.Hash{}, errors.StorageCoreError.Describe(err)
	}

	if common.Hash(root) != EmptyRoot {
		if err = t.db.Commit(root, false); err != nil {
			return common.Hash{}, errors.StorageCoreError.Describe(err)
		}
	}

	log.Debug("tree committed", "root", common.Hash(root))

	return common.Hash(root), nil
}

// Prove makes a proof of inclusion, or of absence when key is not in the
// tree.
func (t *Tree) Prove(key []byte) (*Proof, error) {
	value, err := t.Get(key)
	if err != nil {
		return nil, err
	}

	var nodes proofNodes
	if err = t.trie.Prove(key, 0, &nodes); err != nil {
		return nil, errors.StorageCoreError.Describe(err)
	}

	return &Proof{
		Root:  t.Hash(),
		Key:   key,
		Value: value,
		Nodes: nodes,
	}, nil
}

var log logging.Logger = common.NewModuleLogger("merkle", common.DefaultLogLevel)

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetModuleLogging(log, level, handler)
}
