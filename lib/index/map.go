package index

import (
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

// MapIndex is an authenticated key-value map. Values are stored as JSON.
type MapIndex struct {
	base
}

func NewMapIndex(st *storage.LevelDBBackend, name string) *MapIndex {
	return &MapIndex{base: base{st: st, name: name}}
}

// Get decodes the value of key into v; it returns false without error when
// the key does not exist.
func (m *MapIndex) Get(key []byte, v interface{}) (bool, error) {
	return m.get(key, v)
}

// GetRaw returns the encoded value, nil when the key does not exist.
func (m *MapIndex) GetRaw(key []byte) ([]byte, error) {
	return m.getRaw(key)
}

func (m *MapIndex) Has(key []byte) (bool, error) {
	raw, err := m.getRaw(key)
	return raw != nil, err
}

func (m *MapIndex) Put(key []byte, v interface{}) error {
	return m.put(key, v)
}

func (m *MapIndex) Remove(key []byte) error {
	return m.remove(key)
}

func (m *MapIndex) GetWithProof(key []byte) (*merkle.Proof, error) {
	return m.prove(key)
}
