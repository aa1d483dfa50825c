package storage

import "os"

// CleanDB removes the database directory made by a test.
func CleanDB(path string) {
	os.RemoveAll(path)
}

// NewTestStorage opens an in-memory database; it panics on failure.
func NewTestStorage() *LevelDBBackend {
	config, err := NewConfigFromString("memory://")
	if err != nil {
		panic(err)
	}

	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		panic(err)
	}

	return st
}
