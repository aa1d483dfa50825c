package common

import "encoding/binary"

// Uint64Size is the length of the big endian keys and values of the
// numbered records, which keeps them sorted in leveldb.
const Uint64Size = 8

func EncodeUint64(i uint64) []byte {
	b := make([]byte, Uint64Size)
	binary.BigEndian.PutUint64(b, i)
	return b
}

func DecodeUint64(b []byte) (uint64, bool) {
	if len(b) != Uint64Size {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}
