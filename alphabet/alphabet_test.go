package alphabet

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariantSuccess(t *testing.T) {
	for _, v := range Variants() {
		p, err := ParseVariant(v.String())
		assert.Nil(t, err)
		assert.Equal(t, v, p)
	}
}

func TestParseVariantFail(t *testing.T) {
	for _, name := range []string{"", "Bitcoin", "BITCOIN", "base58", "bitcoin ", "stellar"} {
		_, err := ParseVariant(name)
		assert.ErrorIs(t, err, ErrInvalidAlphabet, name)
	}
}

func TestLookupUnknownName(t *testing.T) {
	a, err := Lookup("ethereum")
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
}

func TestGetOutOfRangeVariant(t *testing.T) {
	a, err := Get(Variant(42))
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrInvalidAlphabet)
	assert.Equal(t, "variant(42)", Variant(42).String())
}

func TestRegistryTables(t *testing.T) {
	expected := map[string]string{
		"bitcoin": "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz",
		"monero":  "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz",
		"flickr":  "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ",
		"ripple":  "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz",
	}
	for name, symbols := range expected {
		a, err := Lookup(name)
		require.Nil(t, err)
		assert.Equal(t, symbols, a.String(), name)
	}
}

func TestRegistryIsBijective(t *testing.T) {
	for _, v := range Variants() {
		a, err := Get(v)
		require.Nil(t, err)
		for d := 0; d < Size; d++ {
			digit, ok := a.Digit(a.Symbol(byte(d)))
			assert.True(t, ok)
			assert.Equal(t, byte(d), digit)
		}
	}
}

func TestBitcoinOmitsAmbiguousSymbols(t *testing.T) {
	a, err := Get(Bitcoin)
	require.Nil(t, err)
	for _, r := range "0OIl" {
		assert.False(t, a.Contains(r), string(r))
	}
	assert.Equal(t, byte('1'), a.Zero())
}

func TestRippleZeroSymbol(t *testing.T) {
	a, err := Get(Ripple)
	require.Nil(t, err)
	assert.Equal(t, byte('r'), a.Zero())
	for _, r := range "0OIl" {
		assert.False(t, a.Contains(r), string(r))
	}
}

func TestNewWrongLength(t *testing.T) {
	_, err := New("123")
	assert.ErrorIs(t, err, ErrWrongLength)

	_, err = New(bitcoinSymbols + "0")
	assert.ErrorIs(t, err, ErrWrongLength)
}

func TestNewDuplicateSymbol(t *testing.T) {
	symbols := "1" + bitcoinSymbols[1:57] + "1"
	_, err := New(symbols)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestNewNotPrintable(t *testing.T) {
	symbols := " " + bitcoinSymbols[1:]
	_, err := New(symbols)
	assert.ErrorIs(t, err, ErrNotPrintable)

	symbols = bitcoinSymbols[:57] + "\x80"
	_, err = New(symbols)
	assert.True(t, errors.Is(err, ErrNotPrintable))
}

func TestInvalidChars(t *testing.T) {
	a, err := Get(Bitcoin)
	require.Nil(t, err)
	assert.Nil(t, a.InvalidChars("3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"))
	assert.Equal(t, []rune{'0', 'O', 'ł'}, a.InvalidChars("a0bOcł"))
}

func TestVariantsIsACopy(t *testing.T) {
	vs := Variants()
	vs[0] = Ripple
	assert.Equal(t, Bitcoin, Variants()[0])
}

func TestConcurrentLookup(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := Variants()[i%len(variants)]
			a, err := Lookup(v.String())
			assert.Nil(t, err)
			assert.True(t, strings.ContainsRune(a.String(), rune(a.Zero())))
		}(i)
	}
	wg.Wait()
}

func BenchmarkLookup(b *testing.B) {
	for n := 0; n < b.N; n++ {
		_, _ = Lookup("ripple")
	}
}
