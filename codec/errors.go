package codec

import (
	"errors"
	"fmt"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/converter"
)

var (
	ErrInvalidAlphabet  = alphabet.ErrInvalidAlphabet
	ErrInvalidCharacter = converter.ErrInvalidCharacter
	ErrTooShort         = errors.New("decoded data too short to hold a checksum")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrVersionMismatch  = errors.New("version mismatch")
	ErrUnknownErrorKind = errors.New("unknown error kind")
	errNotCodecError    = errors.New("not a codec error")
)

// Kind codes are stable names of decoding failures, safe to expose outside of the process.
const (
	KindInvalidAlphabet  = "invalid_alphabet"
	KindDecodeError      = "decode_error"
	KindTooShort         = "too_short"
	KindChecksumMismatch = "checksum_mismatch"
	KindVersionMismatch  = "version_mismatch"
)

var kinds = []struct {
	code string
	err  error
}{
	{KindInvalidAlphabet, ErrInvalidAlphabet},
	{KindDecodeError, ErrInvalidCharacter},
	{KindTooShort, ErrTooShort},
	{KindChecksumMismatch, ErrChecksumMismatch},
	{KindVersionMismatch, ErrVersionMismatch},
}

// TooShortError reports a checksummed input that decoded to fewer bytes than required.
type TooShortError struct {
	Length int
	Min    int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("%s: got %d bytes, need at least %d", ErrTooShort, e.Length, e.Min)
}

func (e *TooShortError) Unwrap() error {
	return ErrTooShort
}

// VersionMismatchError reports a versioned input that carries another version than expected.
type VersionMismatchError struct {
	Expected byte
	Actual   byte
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: expected 0x%02x, got 0x%02x", ErrVersionMismatch, e.Expected, e.Actual)
}

func (e *VersionMismatchError) Unwrap() error {
	return ErrVersionMismatch
}

// Kind returns the kind code of a codec error.
// It returns an error if err is nil or does not come from this package.
func Kind(err error) (string, error) {
	if err == nil {
		return "", errNotCodecError
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code, nil
		}
	}
	return "", errors.Join(errNotCodecError, err)
}

// FromKind returns an error of the kind code carrying the message.
// The result matches the sentinel of the kind with errors.Is.
func FromKind(code, message string) error {
	for _, k := range kinds {
		if k.code != code {
			continue
		}
		if message == "" {
			return k.err
		}
		return &kindError{err: k.err, msg: message}
	}
	return fmt.Errorf("%w: %q", ErrUnknownErrorKind, code)
}

type kindError struct {
	err error
	msg string
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.err
}
