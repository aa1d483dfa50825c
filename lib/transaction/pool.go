package transaction

import (
	"container/list"
	"sync"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
	"boscoin.io/ballot/lib/metrics"
)

// Pool keeps the submitted transactions in arrival order until they are
// put into a block. It is safe for concurrent use; the api handlers add
// while the block loop takes and removes.
type Pool struct {
	sync.RWMutex

	queue   *list.List               // of Transaction, oldest at the front
	byHash  map[string]*list.Element // Transaction.GetHash()
	maxSize int
}

func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = common.DefaultTxPoolLimit
	}

	return &Pool{
		queue:   list.New(),
		byHash:  map[string]*list.Element{},
		maxSize: limit,
	}
}

func (tp *Pool) Len() int {
	tp.RLock()
	defer tp.RUnlock()

	return tp.queue.Len()
}

func (tp *Pool) Has(hash string) bool {
	_, found := tp.Get(hash)
	return found
}

func (tp *Pool) Get(hash string) (Transaction, bool) {
	tp.RLock()
	defer tp.RUnlock()

	e, found := tp.byHash[hash]
	if !found {
		return Transaction{}, false
	}
	return e.Value.(Transaction), true
}

// Add appends tx unless it is already queued or the pool is full.
func (tp *Pool) Add(tx Transaction) error {
	hash := tx.GetHash()

	tp.Lock()
	defer tp.Unlock()

	switch {
	case tp.byHash[hash] != nil:
		metrics.TxPool.Submitted(metrics.TxPoolDuplicated)
		return errors.TransactionAlreadyExists
	case tp.queue.Len() >= tp.maxSize:
		metrics.TxPool.Submitted(metrics.TxPoolFull)
		return errors.TransactionPoolFull
	}

	tp.byHash[hash] = tp.queue.PushBack(tx)

	metrics.TxPool.Submitted(metrics.TxPoolAdded)
	metrics.TxPool.AddSize(1)

	return nil
}

// Remove drops the given hashes; unknown ones are ignored.
func (tp *Pool) Remove(hashes ...string) {
	tp.Lock()
	defer tp.Unlock()

	var removed int
	for _, hash := range hashes {
		e, found := tp.byHash[hash]
		if !found {
			continue
		}
		tp.queue.Remove(e)
		delete(tp.byHash, hash)
		removed++
	}

	metrics.TxPool.AddSize(-removed)
}

// AvailableTransactions returns at most `limit` transactions, the oldest
// first.
func (tp *Pool) AvailableTransactions(limit int) []Transaction {
	if limit < 1 {
		return nil
	}

	tp.RLock()
	defer tp.RUnlock()

	var txs []Transaction
	for e := tp.queue.Front(); e != nil && len(txs) < limit; e = e.Next() {
		txs = append(txs, e.Value.(Transaction))
	}

	return txs
}
