package codec

import (
	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/checksum"
	"github.com/bartossh/Base58/converter"
)

const (
	versionLength     = 1
	minChecked        = checksum.Size
	minVersionChecked = versionLength + checksum.Size
)

// Codec encodes and decodes base58 text in one alphabet.
// Codec holds no mutable state and is safe for concurrent use.
type Codec struct {
	variant  alphabet.Variant
	alphabet *alphabet.Alphabet
}

// New creates a Codec for the alphabet variant.
func New(v alphabet.Variant) (*Codec, error) {
	a, err := alphabet.Get(v)
	if err != nil {
		return nil, err
	}
	return &Codec{variant: v, alphabet: a}, nil
}

// MustNew is like New but panics on an unknown variant.
func MustNew(v alphabet.Variant) *Codec {
	c, err := New(v)
	if err != nil {
		panic(err)
	}
	return c
}

// ForName creates a Codec for the alphabet registered under the name.
func ForName(name string) (*Codec, error) {
	v, err := alphabet.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return New(v)
}

// Variant returns the alphabet variant of the codec.
func (c *Codec) Variant() alphabet.Variant {
	return c.variant
}

// Alphabet returns the alphabet of the codec.
func (c *Codec) Alphabet() *alphabet.Alphabet {
	return c.alphabet
}

// Encode encodes the payload without a checksum.
func (c *Codec) Encode(payload []byte) string {
	return converter.Encode(payload, c.alphabet)
}

// Decode decodes text produced by Encode.
func (c *Codec) Decode(text string) ([]byte, error) {
	return converter.Decode(text, c.alphabet)
}

// EncodeChecked encodes the payload followed by its checksum.
func (c *Codec) EncodeChecked(payload []byte) string {
	tag := checksum.Sum(payload)

	buf := make([]byte, 0, len(payload)+checksum.Size)
	buf = append(buf, payload...)
	buf = append(buf, tag[:]...)

	return converter.Encode(buf, c.alphabet)
}

// DecodeChecked decodes text produced by EncodeChecked and verifies the checksum.
func (c *Codec) DecodeChecked(text string) ([]byte, error) {
	raw, err := converter.Decode(text, c.alphabet)
	if err != nil {
		return nil, err
	}
	if len(raw) < minChecked {
		return nil, &TooShortError{Length: len(raw), Min: minChecked}
	}

	payload, tag := raw[:len(raw)-checksum.Size], raw[len(raw)-checksum.Size:]
	if !checksum.Verify(payload, tag) {
		return nil, ErrChecksumMismatch
	}

	return payload, nil
}

// EncodeVersioned encodes the version byte, the payload and the checksum over both.
func (c *Codec) EncodeVersioned(version byte, payload []byte) string {
	tag := checksum.SumVersioned(version, payload)

	buf := make([]byte, 0, versionLength+len(payload)+checksum.Size)
	buf = append(buf, version)
	buf = append(buf, payload...)
	buf = append(buf, tag[:]...)

	return converter.Encode(buf, c.alphabet)
}

// DecodeVersioned decodes text produced by EncodeVersioned, verifies the checksum
// and returns the embedded version with the payload.
func (c *Codec) DecodeVersioned(text string) (byte, []byte, error) {
	raw, err := converter.Decode(text, c.alphabet)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) < minVersionChecked {
		return 0, nil, &TooShortError{Length: len(raw), Min: minVersionChecked}
	}

	body, tag := raw[:len(raw)-checksum.Size], raw[len(raw)-checksum.Size:]
	if !checksum.Verify(body, tag) {
		return 0, nil, ErrChecksumMismatch
	}

	return body[0], body[versionLength:], nil
}

// DecodeVersionedExpect is like DecodeVersioned but fails with a *VersionMismatchError
// when the embedded version is not the expected one.
func (c *Codec) DecodeVersionedExpect(text string, expected byte) ([]byte, error) {
	version, payload, err := c.DecodeVersioned(text)
	if err != nil {
		return nil, err
	}
	if version != expected {
		return nil, &VersionMismatchError{Expected: expected, Actual: version}
	}
	return payload, nil
}
