package merkle

import (
	"bytes"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/trie"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

// Proof binds the value of one key, or its absence when `Value` is empty,
// to a tree root.
type Proof struct {
	Root  common.Hash `json:"root"`
	Key   []byte      `json:"key"`
	Value []byte      `json:"value"`
	Nodes [][]byte    `json:"nodes"`
}

// Verify checks the proof against its own root.
func (p Proof) Verify() error {
	value, err := VerifyProof(p.Root, p.Key, p.Nodes)
	if err != nil {
		return err
	}

	if !bytes.Equal(value, p.Value) {
		return errors.InvalidProof.Describe("value does not match")
	}

	return nil
}

// IsAbsence is true when the proof shows that the key is not in the tree.
func (p Proof) IsAbsence() bool {
	return len(p.Value) < 1
}

// VerifyProof rebuilds the path to key from the proof nodes only and returns
// the value, nil for a proof of absence. Nodes are addressed by their own
// hash, so a node which does not belong to the root can not be used.
func VerifyProof(root common.Hash, key []byte, nodes [][]byte) ([]byte, error) {
	if root == EmptyRoot {
		return nil, nil
	}

	memdb := ethdb.NewMemDatabase()
	for _, n := range nodes {
		if err := memdb.Put(crypto.Keccak256(n), n); err != nil {
			return nil, errors.InvalidProof.Describe(err)
		}
	}

	tr, err := trie.New(ethcommon.Hash(root), trie.NewDatabase(memdb))
	if err != nil {
		return nil, errors.InvalidProof.Describe(err)
	}

	value, err := tr.TryGet(key)
	if err != nil {
		return nil, errors.InvalidProof.Describe(err)
	}

	return value, nil
}

type proofNodes [][]byte

func (p *proofNodes) Put(key []byte, value []byte) error {
	*p = append(*p, append([]byte{}, value...))
	return nil
}
