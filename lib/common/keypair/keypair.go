// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions
// to sign and verify ballot transactions
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

func signatureInput(networkID []byte, hash string) []byte {
	input := make([]byte, 0, len(networkID)+len(hash))
	input = append(input, networkID...)
	return append(input, []byte(hash)...)
}

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(signatureInput(networkID, hash))
}

// VerifySignature checks the signature over network id and hash
func VerifySignature(kp KP, networkID []byte, hash string, signature []byte) error {
	return kp.Verify(signatureInput(networkID, hash), signature)
}
