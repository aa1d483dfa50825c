package block

import (
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/storage"
)

func InitTestBlockchain() (*storage.LevelDBBackend, Block) {
	st := storage.NewTestStorage()

	genesis, err := MakeGenesisBlock(st, 0, common.Hash{})
	if err != nil {
		panic(err)
	}

	return st, genesis
}

func TestMakeNewBlockWithPrevBlock(prev Block, txs []string) Block {
	return NewBlock("", prev, prev.Timestamp+1, txs, prev.StateRoot)
}
