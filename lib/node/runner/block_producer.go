package runner

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/ballot"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/storage"
	"boscoin.io/ballot/lib/transaction"
)

// ProduceBlock executes the pooled transactions in a new block on top of the
// latest one. The block, its transactions and the changed state are
// committed together; on any failure nothing is written and the pool is
// left as it was.
func (nr *NodeRunner) ProduceBlock() (block.Block, error) {
	nr.Lock()
	defer nr.Unlock()

	latest, err := block.GetLatestBlock(nr.storage)
	if err != nil {
		return block.Block{}, err
	}

	ledgerTime := LedgerTime(nr.clock, latest)
	txs := nr.pool.AvailableTransactions(nr.conf.TxsLimit)

	b, err := nr.produceBlock(latest, ledgerTime, txs)
	if err != nil {
		return block.Block{}, err
	}

	hashes := make([]string, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.GetHash()
	}
	nr.pool.Remove(hashes...)

	nr.log.Info(
		"block produced",
		logging.Ctx{
			"height":     b.Height,
			"block":      b.Hash,
			"txs":        len(txs),
			"state-root": b.StateRoot,
			"timestamp":  b.Timestamp,
		},
	)

	return b, nil
}

func (nr *NodeRunner) produceBlock(latest block.Block, ledgerTime uint64, txs []transaction.Transaction) (b block.Block, err error) {
	var fork *storage.LevelDBBackend
	if fork, err = nr.storage.OpenBatch(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			fork.Discard()
		}
	}()

	if _, err = nr.engine.ExecuteBlock(fork, latest.Height+1, ledgerTime, txs); err != nil {
		return
	}

	var root common.Hash
	if root, err = ballot.NewSchema(fork).StateRoot(); err != nil {
		return
	}

	hashes := make([]string, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.GetHash()
	}

	b = block.NewBlock(nr.proposer, latest, ledgerTime, hashes, root)
	if err = b.Save(fork); err != nil {
		return
	}
	for i, tx := range txs {
		if err = block.NewBlockTransaction(b, uint64(i), tx).Save(fork); err != nil {
			return
		}
	}

	err = fork.Commit()

	return
}
