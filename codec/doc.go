// Package codec implements Base58 and Base58Check.
//
// Three modes are available in both directions:
//   - plain: the payload converted to base58 text,
//   - checked: the payload followed by a 4 byte double SHA-256 checksum,
//   - versioned: a version byte, the payload and the checksum over both.
//
// Decoding errors are reported in this order: ErrInvalidAlphabet, ErrInvalidCharacter,
// ErrTooShort, ErrChecksumMismatch and ErrVersionMismatch. A failed decoding never
// returns partial data.
package codec
