package transaction

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Config      common.Config
	Transaction Transaction
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if _, err = keypair.Parse(checker.Transaction.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Transaction.H.Hash != checker.Transaction.B.MakeHashString() {
		err = errors.InvalidTransactionHash
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var kp keypair.KP
	if kp, err = keypair.Parse(checker.Transaction.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}

	err = keypair.VerifySignature(
		kp,
		checker.Config.NetworkID,
		checker.Transaction.H.Hash,
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		err = errors.InvalidSignature
		return
	}

	return
}

func CheckOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	return checker.Transaction.B.Operation.IsWellFormed(checker.Config)
}
