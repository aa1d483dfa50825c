package block

import (
	"encoding/json"

	"boscoin.io/ballot/lib/common"
)

const BlockVersion uint32 = 1

type Header struct {
	Version          uint32      `json:"version"`
	PrevBlockHash    string      `json:"prev_block_hash"`
	TransactionsRoot string      `json:"transactions_root"`
	Timestamp        uint64      `json:"timestamp"` // ledger time, unix seconds
	Height           uint64      `json:"height"`
	TotalTxs         uint64      `json:"total_txs"`
	StateRoot        common.Hash `json:"state_root"`
}

func NewBlockHeader(prev Header, prevHash string, timestamp uint64, txs []string, stateRoot common.Hash) Header {
	return Header{
		Version:          BlockVersion,
		PrevBlockHash:    prevHash,
		TransactionsRoot: getTransactionRoot(txs),
		Timestamp:        timestamp,
		Height:           prev.Height + 1,
		TotalTxs:         prev.TotalTxs + uint64(len(txs)),
		StateRoot:        stateRoot,
	}
}

func (h Header) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(h)
	return
}

func (h Header) String() string {
	encoded, _ := json.MarshalIndent(h, "", "  ")
	return string(encoded)
}
