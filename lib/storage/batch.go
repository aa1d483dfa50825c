package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"
)

// BatchBackend buffers writes on top of another core. `Commit` writes the
// buffered batch into the core in one `Write`, so when the core is another
// `BatchBackend` the changes are merged into the parent fork.
type BatchBackend struct {
	sync.RWMutex

	core  LevelDBCore
	batch *leveldb.Batch

	inserted map[string][]byte
	deleted  map[string]struct{}
}

func NewBatchBackend(core LevelDBCore) *BatchBackend {
	bb := &BatchBackend{core: core}
	bb.clear()

	return bb
}

func (bb *BatchBackend) convertKey(key []byte) string {
	return string(key)
}

func (bb *BatchBackend) Has(key []byte, opt *leveldbOpt.ReadOptions) (bool, error) {
	bb.RLock()
	defer bb.RUnlock()

	k := bb.convertKey(key)
	if _, found := bb.inserted[k]; found {
		return true, nil
	}
	if _, found := bb.deleted[k]; found {
		return false, nil
	}

	return bb.core.Has(key, opt)
}

func (bb *BatchBackend) Get(key []byte, opt *leveldbOpt.ReadOptions) (b []byte, err error) {
	bb.RLock()
	defer bb.RUnlock()

	k := bb.convertKey(key)
	var found bool
	if b, found = bb.inserted[k]; found {
		return
	}
	if _, found = bb.deleted[k]; found {
		err = leveldb.ErrNotFound
		return
	}

	return bb.core.Get(key, opt)
}

// NewIterator does not work with `BatchBackend`; it iterates the core only.
func (bb *BatchBackend) NewIterator(r *leveldbUtil.Range, opt *leveldbOpt.ReadOptions) leveldbIterator.Iterator {
	return bb.core.NewIterator(r, opt)
}

func (bb *BatchBackend) Put(key []byte, v []byte, opt *leveldbOpt.WriteOptions) error {
	bb.Lock()
	defer bb.Unlock()

	bb.put(key, v)

	return nil
}

func (bb *BatchBackend) Delete(key []byte, opt *leveldbOpt.WriteOptions) error {
	bb.Lock()
	defer bb.Unlock()

	bb.delete(key)

	return nil
}

// Write merges the given batch into the buffered one. Nothing reaches the
// core before `Commit`.
func (bb *BatchBackend) Write(batch *leveldb.Batch, opt *leveldbOpt.WriteOptions) error {
	if batch == nil {
		return nil
	}

	bb.Lock()
	defer bb.Unlock()

	return batch.Replay(batchReplay{bb: bb})
}

func (bb *BatchBackend) Discard() {
	bb.Lock()
	defer bb.Unlock()

	bb.clear()
}

func (bb *BatchBackend) Commit() (err error) {
	bb.Lock()
	defer bb.Unlock()

	if bb.batch.Len() > 0 {
		if err = bb.core.Write(bb.batch, nil); err != nil {
			return
		}
	}

	bb.clear()

	return
}

func (bb *BatchBackend) Len() int {
	bb.RLock()
	defer bb.RUnlock()

	return bb.batch.Len()
}

func (bb *BatchBackend) Dump() []byte {
	bb.RLock()
	defer bb.RUnlock()

	return bb.batch.Dump()
}

func (bb *BatchBackend) put(key, v []byte) {
	k := bb.convertKey(key)
	bb.inserted[k] = append([]byte{}, v...)
	delete(bb.deleted, k)
	bb.batch.Put(key, v)
}

func (bb *BatchBackend) delete(key []byte) {
	k := bb.convertKey(key)
	delete(bb.inserted, k)
	bb.deleted[k] = struct{}{}
	bb.batch.Delete(key)
}

func (bb *BatchBackend) clear() {
	bb.batch = &leveldb.Batch{}
	bb.inserted = map[string][]byte{}
	bb.deleted = map[string]struct{}{}
}

type batchReplay struct {
	bb *BatchBackend
}

func (r batchReplay) Put(key, value []byte) {
	r.bb.put(key, value)
}

func (r batchReplay) Delete(key []byte) {
	r.bb.delete(key)
}
