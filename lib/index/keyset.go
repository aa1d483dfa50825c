package index

import (
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

// KeySetIndex is an authenticated set of keys.
type KeySetIndex struct {
	base
}

func NewKeySetIndex(st *storage.LevelDBBackend, name string) *KeySetIndex {
	return &KeySetIndex{base: base{st: st, name: name}}
}

func (s *KeySetIndex) Insert(key []byte) error {
	return s.put(key, true)
}

func (s *KeySetIndex) Contains(key []byte) (bool, error) {
	raw, err := s.getRaw(key)
	return raw != nil, err
}

func (s *KeySetIndex) Remove(key []byte) error {
	return s.remove(key)
}

func (s *KeySetIndex) GetWithProof(key []byte) (*merkle.Proof, error) {
	return s.prove(key)
}
