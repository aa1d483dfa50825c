package index

import (
	"encoding/json"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

// lengthKey can not clash with the 8 byte position keys, so the length is
// committed by the same root as the items.
var lengthKey = []byte("length")

// ListIndex is an authenticated append-only list; items are addressed by
// position.
type ListIndex struct {
	base
}

func NewListIndex(st *storage.LevelDBBackend, name string) *ListIndex {
	return &ListIndex{base: base{st: st, name: name}}
}

func positionKey(i uint64) []byte {
	return common.EncodeUint64(i)
}

func (l *ListIndex) length(tree *merkle.Tree) (uint64, error) {
	raw, err := tree.Get(lengthKey)
	if err != nil || raw == nil {
		return 0, err
	}

	n, ok := common.DecodeUint64(raw)
	if !ok {
		return 0, errors.StorageCoreError.Describe("broken list length")
	}

	return n, nil
}

func (l *ListIndex) Len() (uint64, error) {
	tree, err := l.tree()
	if err != nil {
		return 0, err
	}

	return l.length(tree)
}

// GetRaw returns nil when i is out of range.
func (l *ListIndex) GetRaw(i uint64) ([]byte, error) {
	return l.getRaw(positionKey(i))
}

func (l *ListIndex) Get(i uint64, v interface{}) (bool, error) {
	return l.get(positionKey(i), v)
}

func (l *ListIndex) Last(v interface{}) (bool, error) {
	n, err := l.Len()
	if err != nil || n < 1 {
		return false, err
	}

	return l.Get(n-1, v)
}

// Push appends v and returns its position.
func (l *ListIndex) Push(v interface{}) (uint64, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return 0, errors.StorageCoreError.Describe(err)
	}

	tree, err := l.tree()
	if err != nil {
		return 0, err
	}

	n, err := l.length(tree)
	if err != nil {
		return 0, err
	}

	if err = tree.Update(positionKey(n), encoded); err != nil {
		return 0, err
	}

	if err = tree.Update(lengthKey, common.EncodeUint64(n+1)); err != nil {
		return 0, err
	}

	return n, l.commit(tree)
}

// Set replaces the item at i; i must be in range.
func (l *ListIndex) Set(i uint64, v interface{}) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	if i >= n {
		return errors.StorageRecordDoesNotExist
	}

	return l.put(positionKey(i), v)
}

// Iterate calls f for items in [offset, offset+limit) in order, stopping
// when f returns false. A zero limit means no limit.
func (l *ListIndex) Iterate(offset, limit uint64, f func(uint64, []byte) (bool, error)) error {
	tree, err := l.tree()
	if err != nil {
		return err
	}

	n, err := l.length(tree)
	if err != nil {
		return err
	}

	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}

	for i := offset; i < end; i++ {
		raw, err := tree.Get(positionKey(i))
		if err != nil {
			return err
		}
		if next, err := f(i, raw); err != nil {
			return err
		} else if !next {
			break
		}
	}

	return nil
}

func (l *ListIndex) GetWithProof(i uint64) (*merkle.Proof, error) {
	return l.prove(positionKey(i))
}
