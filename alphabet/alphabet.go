package alphabet

import (
	"errors"
	"fmt"
)

// Size is the number of symbols in every alphabet.
const Size = 58

const invalidDigit = 0xff

var (
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	ErrWrongLength     = errors.New("alphabet must have exactly 58 symbols")
	ErrDuplicateSymbol = errors.New("alphabet symbols must be unique")
	ErrNotPrintable    = errors.New("alphabet symbols must be printable ASCII")
)

// Variant is one of the closed set of supported alphabets.
type Variant uint8

const (
	Bitcoin Variant = iota
	Monero
	Flickr
	Ripple
)

const (
	bitcoinSymbols = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	moneroSymbols  = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	flickrSymbols  = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	rippleSymbols  = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"
)

var variants = [...]Variant{Bitcoin, Monero, Flickr, Ripple}

var names = [...]string{
	Bitcoin: "bitcoin",
	Monero:  "monero",
	Flickr:  "flickr",
	Ripple:  "ripple",
}

var registry = [...]*Alphabet{
	Bitcoin: mustNew(bitcoinSymbols),
	Monero:  mustNew(moneroSymbols),
	Flickr:  mustNew(flickrSymbols),
	Ripple:  mustNew(rippleSymbols),
}

// String returns the variant name as accepted by ParseVariant.
func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
	return names[v]
}

func (v Variant) valid() bool {
	return int(v) < len(names)
}

// Variants returns all supported variants in registry order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants[:])
	return out
}

// ParseVariant maps a variant name to its Variant.
// Names are case sensitive and no default is substituted for an empty name.
func ParseVariant(name string) (Variant, error) {
	for _, v := range variants {
		if names[v] == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAlphabet, name)
}

// Get returns the alphabet of the given variant.
func Get(v Variant) (*Alphabet, error) {
	if !v.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAlphabet, v)
	}
	return registry[v], nil
}

// Lookup returns the alphabet registered under the given name.
func Lookup(name string) (*Alphabet, error) {
	v, err := ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return registry[v], nil
}

// Alphabet is an ordered set of 58 unique symbols together with its inverse mapping.
// Alphabet is immutable once created and safe for concurrent use.
type Alphabet struct {
	encode [Size]byte
	decode [256]byte
}

// New creates an Alphabet from exactly 58 unique printable ASCII symbols.
func New(symbols string) (*Alphabet, error) {
	if len(symbols) != Size {
		return nil, fmt.Errorf("%w, got %d", ErrWrongLength, len(symbols))
	}

	a := &Alphabet{}
	for i := range a.decode {
		a.decode[i] = invalidDigit
	}

	for i := 0; i < Size; i++ {
		c := symbols[i]
		if c <= ' ' || c > '~' {
			return nil, fmt.Errorf("%w, position %d", ErrNotPrintable, i)
		}
		if a.decode[c] != invalidDigit {
			return nil, fmt.Errorf("%w, symbol %q repeated at position %d", ErrDuplicateSymbol, c, i)
		}
		a.encode[i] = c
		a.decode[c] = byte(i)
	}

	return a, nil
}

func mustNew(symbols string) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Symbol returns the symbol of the digit. Digit must be lower than Size.
func (a *Alphabet) Symbol(digit byte) byte {
	return a.encode[digit]
}

// Digit returns the digit value of the symbol and reports whether the symbol belongs to the alphabet.
func (a *Alphabet) Digit(symbol byte) (byte, bool) {
	d := a.decode[symbol]
	return d, d != invalidDigit
}

// Zero returns the symbol that encodes digit 0 and stands for a leading zero byte.
func (a *Alphabet) Zero() byte {
	return a.encode[0]
}

// Contains reports whether r is one of the alphabet symbols.
func (a *Alphabet) Contains(r rune) bool {
	if r < 0 || r > 0x7f {
		return false
	}
	_, ok := a.Digit(byte(r))
	return ok
}

// InvalidChars returns every rune of s that is not part of the alphabet, in order of appearance.
func (a *Alphabet) InvalidChars(s string) []rune {
	var invalid []rune
	for _, r := range s {
		if !a.Contains(r) {
			invalid = append(invalid, r)
		}
	}
	return invalid
}

// String returns the 58 symbols in digit order.
func (a *Alphabet) String() string {
	return string(a.encode[:])
}
