// Package checksum computes the Base58Check integrity tag: the first four bytes of a double SHA-256.
package checksum

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Size is the tag length in bytes.
const Size = 4

// Tag is a Base58Check checksum.
type Tag [Size]byte

// Sum returns the tag of the payload.
func Sum(payload []byte) Tag {
	first := sha256.Sum256(payload)
	return truncate(sha256.Sum256(first[:]))
}

// SumVersioned returns the tag of the version byte followed by the payload.
func SumVersioned(version byte, payload []byte) Tag {
	h := sha256.New()
	h.Write([]byte{version})
	h.Write(payload)

	var first [sha256.Size]byte
	h.Sum(first[:0])
	return truncate(sha256.Sum256(first[:]))
}

// Verify reports whether tag is the checksum of the payload.
func Verify(payload, tag []byte) bool {
	if len(tag) != Size {
		return false
	}
	expected := Sum(payload)
	return subtle.ConstantTimeCompare(expected[:], tag) == 1
}

func truncate(digest [sha256.Size]byte) Tag {
	var t Tag
	copy(t[:], digest[:Size])
	return t
}
