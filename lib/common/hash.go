package common

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

const HashLength = 32

// Hash is a keccak-256 digest. Its text form is base58.
type Hash [HashLength]byte

func BytesToHash(b []byte) (h Hash) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return
}

func ParseHash(s string) (h Hash, err error) {
	b := base58.Decode(s)
	if len(b) != HashLength {
		err = fmt.Errorf("invalid hash: %q", s)
		return
	}
	copy(h[:], b)
	return
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return
	}
	*h, err = ParseHash(s)
	return
}

func MakeHash(b []byte) []byte {
	return crypto.Keccak256(b)
}

func MakeObjectHash(i interface{}) (b []byte, err error) {
	var e []byte
	if e, err = rlp.EncodeToBytes(i); err != nil {
		return
	}

	b = MakeHash(e)

	return
}

func MustMakeObjectHash(i interface{}) (b []byte) {
	b, _ = MakeObjectHash(i)
	return
}

func MakeObjectHashString(i interface{}) (string, error) {
	b, err := MakeObjectHash(i)
	if err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}

func MustMakeObjectHashString(i interface{}) string {
	s, _ := MakeObjectHashString(i)
	return s
}
