package transaction

import (
	"math/rand"

	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/transaction/operation"
)

// TestMakeTransaction makes a transaction signed by kp.
func TestMakeTransaction(networkID []byte, kp *keypair.Full, opb operation.Body) Transaction {
	tx, err := NewTransaction(kp.Address(), rand.Uint64(), opb)
	if err != nil {
		panic(err)
	}
	tx.Sign(kp, networkID)

	return tx
}
