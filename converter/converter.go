// Package converter re-expresses byte buffers as base58 digits and back.
//
// The buffer is read as a big-endian unsigned integer. Base conversion alone cannot tell 0x00 from
// nothing, so every leading zero byte is written as one leading zero symbol of the alphabet and
// every leading zero symbol decodes to one zero byte.
package converter

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bartossh/Base58/alphabet"
)

// ErrInvalidCharacter is matched by every *InvalidCharacterError.
var ErrInvalidCharacter = errors.New("invalid base58 character")

// InvalidCharacterError reports the first character that is not part of the alphabet.
type InvalidCharacterError struct {
	Char     rune
	Position int // byte offset in the decoded text
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrInvalidCharacter, e.Char, e.Position)
}

func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// EncodedLen returns the maximum length of the encoding of n bytes.
func EncodedLen(n int) int {
	// log(256) / log(58) is a bit below 1.38.
	return n*138/100 + 1
}

// DecodedLen returns the maximum length of the decoding of n symbols.
func DecodedLen(n int) int {
	// log(58) / log(256) is a bit below 0.733.
	return n*733/1000 + 1
}

// Encode returns the base58 text of src in the given alphabet.
// An empty buffer encodes to an empty string.
func Encode(src []byte, a *alphabet.Alphabet) string {
	return string(AppendEncode(nil, src, a))
}

// AppendEncode appends the base58 encoding of src to dst and returns the extended buffer.
func AppendEncode(dst, src []byte, a *alphabet.Alphabet) []byte {
	zeros := 0
	for zeros < len(src) && src[zeros] == 0 {
		zeros++
	}

	size := EncodedLen(len(src) - zeros)
	digits := make([]byte, size)

	high := size - 1
	for _, b := range src[zeros:] {
		i := size - 1
		for carry := uint32(b); i > high || carry != 0; i-- {
			carry += 256 * uint32(digits[i])
			digits[i] = byte(carry % alphabet.Size)
			carry /= alphabet.Size
		}
		high = i
	}

	start := 0
	for start < size && digits[start] == 0 {
		start++
	}

	for i := 0; i < zeros; i++ {
		dst = append(dst, a.Zero())
	}
	for _, d := range digits[start:] {
		dst = append(dst, a.Symbol(d))
	}

	return dst
}

// Decode returns the bytes encoded in s with the given alphabet.
// An empty string decodes to an empty buffer. The first symbol outside the alphabet fails the
// whole decoding with an *InvalidCharacterError.
func Decode(s string, a *alphabet.Alphabet) ([]byte, error) {
	if len(s) == 0 {
		return []byte{}, nil
	}

	zero := a.Zero()
	zeros := 0
	for zeros < len(s) && s[zeros] == zero {
		zeros++
	}

	size := DecodedLen(len(s) - zeros)
	buf := make([]byte, size)

	high := size - 1
	for pos := zeros; pos < len(s); pos++ {
		d, ok := a.Digit(s[pos])
		if !ok {
			r, _ := utf8.DecodeRuneInString(s[pos:])
			return nil, &InvalidCharacterError{Char: r, Position: pos}
		}

		i := size - 1
		for carry := uint32(d); i > high || carry != 0; i-- {
			carry += alphabet.Size * uint32(buf[i])
			buf[i] = byte(carry)
			carry >>= 8
		}
		high = i
	}

	start := 0
	for start < size && buf[start] == 0 {
		start++
	}

	out := make([]byte, zeros+size-start)
	copy(out[zeros:], buf[start:])

	return out, nil
}
