package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

// LevelDBBackend is a view of the database. The view made by `Init` writes
// directly; `OpenBatch` makes a fork and `Snapshot` makes a read-only view.
type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

// coreError wraps the errors of goleveldb into `StorageCoreError`.
func coreError(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case *errors.Error:
		return err
	default:
		return errors.StorageCoreError.Describe(err)
	}
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			err = coreError(err)
			return
		}
	case "memory":
		sto := leveldbStorage.NewMemStorage()
		if db, err = leveldb.Open(sto, nil); err != nil {
			err = coreError(err)
			return
		}
	default:
		err = coreError(fmt.Errorf("unknown storage scheme: %q", config.Scheme))
		return
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

// OpenBatch opens a fork on top of this view. Forks can be nested; the
// changes of a fork are visible to its parent only after `Commit`.
func (st *LevelDBBackend) OpenBatch() (*LevelDBBackend, error) {
	if st.IsReadOnly() {
		return nil, errors.NotImplemented
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: NewBatchBackend(st.Core),
	}, nil
}

// Snapshot opens a read-only view of the committed state.
func (st *LevelDBBackend) Snapshot() (*LevelDBBackend, error) {
	snapshot, err := newReadOnlyCore(st.DB)
	if err != nil {
		return nil, coreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: snapshot,
	}, nil
}

func (st *LevelDBBackend) Release() {
	if s, ok := st.Core.(*ReadOnlyCore); ok {
		s.Release()
	}
}

func (st *LevelDBBackend) Discard() error {
	bb, ok := st.Core.(*BatchBackend)
	if !ok {
		return coreError(fmt.Errorf("this is not *BatchBackend"))
	}

	bb.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	bb, ok := st.Core.(*BatchBackend)
	if !ok {
		return coreError(fmt.Errorf("this is not *BatchBackend"))
	}

	return coreError(bb.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, coreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		err = errors.StorageRecordDoesNotExist
		return
	}
	err = coreError(err)

	return
}

func (st *LevelDBBackend) Get(k string, i interface{}) error {
	b, err := st.GetRaw(k)
	if err != nil {
		return err
	}

	return coreError(json.Unmarshal(b, i))
}

// mustExist fails with `StorageRecordAlreadyExists` or
// `StorageRecordDoesNotExist` unless the existence of k is `exists`.
func (st *LevelDBBackend) mustExist(k string, exists bool) error {
	found, err := st.Has(k)
	switch {
	case err != nil:
		return err
	case found && !exists:
		return errors.StorageRecordAlreadyExists
	case !found && exists:
		return errors.StorageRecordDoesNotExist
	}
	return nil
}

func (st *LevelDBBackend) put(k string, v interface{}) error {
	var encoded []byte
	var err error
	if serializable, ok := v.(common.Serializable); ok {
		encoded, err = serializable.Serialize()
	} else {
		encoded, err = json.Marshal(v)
	}
	if err != nil {
		return coreError(err)
	}

	return coreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

// New writes a record which must not exist yet.
func (st *LevelDBBackend) New(k string, v interface{}) error {
	if err := st.mustExist(k, false); err != nil {
		return err
	}
	return st.put(k, v)
}

// Set overwrites an existing record.
func (st *LevelDBBackend) Set(k string, v interface{}) error {
	if err := st.mustExist(k, true); err != nil {
		return err
	}
	return st.put(k, v)
}

// Put writes the value whether or not the key exists.
func (st *LevelDBBackend) Put(k string, v interface{}) error {
	return st.put(k, v)
}

func (st *LevelDBBackend) Remove(k string) error {
	if err := st.mustExist(k, true); err != nil {
		return err
	}
	return coreError(st.Core.Delete(st.makeKey(k), nil))
}

// GetIterator iterates the keys under prefix in key order. The cursor is
// inclusive. Pending writes of a fork are not visible to the iterator.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse = false
	var cursor []byte
	var limit uint64 = 0
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var ok bool
	switch {
	case cursor != nil:
		ok = iter.Seek(cursor)
		if reverse {
			if !ok {
				ok = iter.Last()
			} else if !bytes.Equal(iter.Key(), cursor) {
				ok = iter.Prev()
			}
		}
	case reverse:
		ok = iter.Last()
	default:
		ok = iter.First()
	}

	funcNext := iter.Next
	if reverse {
		funcNext = iter.Prev
	}

	var n uint64
	started := false
	return func() (IterItem, bool) {
			if limit != 0 && n >= limit {
				return IterItem{}, false
			}

			if started && ok {
				ok = funcNext()
			}
			started = true

			if !ok {
				return IterItem{}, false
			}

			n++
			return IterItem{
				N:     n,
				Key:   append([]byte{}, iter.Key()...),
				Value: append([]byte{}, iter.Value()...),
			}, true
		},
		func() {
			iter.Release()
		}
}
