package resource

import (
	"strconv"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
)

type Block struct {
	b *block.Block
}

func NewBlock(b *block.Block) *Block {
	return &Block{b: b}
}

func (blk Block) GetMap() hal.Entry {
	b := blk.b
	return hal.Entry{
		"version":           b.Version,
		"hash":              b.Hash,
		"height":            b.Height,
		"prev_block_hash":   b.PrevBlockHash,
		"transactions_root": b.TransactionsRoot,
		"state_root":        b.StateRoot,
		"timestamp":         b.Timestamp,
		"time":              common.UnixToISO8601(b.Timestamp),
		"total_txs":         b.TotalTxs,
		"proposer":          b.Proposer,
		"transactions":      b.Transactions,
	}
}

func (blk Block) Resource() *hal.Resource {
	r := hal.NewResource(blk, blk.LinkSelf())
	if blk.b.Height > 0 {
		r.AddLink("prev", hal.NewLink(expandURL(URLBlock, strconv.FormatUint(blk.b.Height-1, 10))))
	}

	return r
}

func (blk Block) LinkSelf() string {
	return expandURL(URLBlock, blk.b.Hash)
}
