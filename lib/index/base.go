package index

import (
	"encoding/json"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

// RootPrefix prefixes the storage key which keeps the current root of an
// index.
const RootPrefix = "im-root-"

type base struct {
	st   *storage.LevelDBBackend
	name string
}

func (b base) Name() string {
	return b.name
}

func (b base) rootKey() string {
	return RootPrefix + b.name
}

func (b base) Root() (common.Hash, error) {
	var root common.Hash
	if err := b.st.Get(b.rootKey(), &root); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return merkle.EmptyRoot, nil
		}
		return common.Hash{}, err
	}

	return root, nil
}

func (b base) tree() (*merkle.Tree, error) {
	root, err := b.Root()
	if err != nil {
		return nil, err
	}

	return merkle.NewTree(b.st, root)
}

func (b base) commit(tree *merkle.Tree) error {
	root, err := tree.Commit()
	if err != nil {
		return err
	}

	return b.st.Put(b.rootKey(), root)
}

func (b base) getRaw(key []byte) ([]byte, error) {
	tree, err := b.tree()
	if err != nil {
		return nil, err
	}

	return tree.Get(key)
}

func (b base) get(key []byte, v interface{}) (bool, error) {
	raw, err := b.getRaw(key)
	if err != nil || raw == nil {
		return false, err
	}

	if err = json.Unmarshal(raw, v); err != nil {
		return false, errors.StorageCoreError.Describe(err)
	}

	return true, nil
}

func (b base) put(key []byte, v interface{}) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return errors.StorageCoreError.Describe(err)
	}

	tree, err := b.tree()
	if err != nil {
		return err
	}
	if err = tree.Update(key, encoded); err != nil {
		return err
	}

	return b.commit(tree)
}

func (b base) remove(key []byte) error {
	tree, err := b.tree()
	if err != nil {
		return err
	}
	if err = tree.Delete(key); err != nil {
		return err
	}

	return b.commit(tree)
}

func (b base) prove(key []byte) (*merkle.Proof, error) {
	tree, err := b.tree()
	if err != nil {
		return nil, err
	}

	return tree.Prove(key)
}
