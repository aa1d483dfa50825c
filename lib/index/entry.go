package index

import (
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

var entryKey = []byte("entry")

// Entry is a single-slot cell; setting it replaces the previous value.
type Entry struct {
	base
}

func NewEntry(st *storage.LevelDBBackend, name string) *Entry {
	return &Entry{base: base{st: st, name: name}}
}

func (e *Entry) Get(v interface{}) (bool, error) {
	return e.get(entryKey, v)
}

func (e *Entry) Set(v interface{}) error {
	return e.put(entryKey, v)
}

func (e *Entry) Clear() error {
	return e.remove(entryKey)
}

func (e *Entry) GetWithProof() (*merkle.Proof, error) {
	return e.prove(entryKey)
}
