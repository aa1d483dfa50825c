package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"

	"boscoin.io/ballot/lib/errors"
)

// ReadOnlyCore serves the reads of a leveldb snapshot. The API reads the
// schema through it while the block loop writes a fork.
type ReadOnlyCore struct {
	*leveldb.Snapshot
}

func newReadOnlyCore(db *leveldb.DB) (*ReadOnlyCore, error) {
	snapshot, err := db.GetSnapshot()
	if err != nil {
		return nil, err
	}

	return &ReadOnlyCore{Snapshot: snapshot}, nil
}

func (*ReadOnlyCore) Put([]byte, []byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (*ReadOnlyCore) Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (*ReadOnlyCore) Delete([]byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

// IsReadOnly is true for the view made by `Snapshot`.
func (st *LevelDBBackend) IsReadOnly() bool {
	_, ok := st.Core.(*ReadOnlyCore)
	return ok
}
