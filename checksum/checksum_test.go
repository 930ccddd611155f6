package checksum

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumEmpty(t *testing.T) {
	tag := Sum(nil)
	assert.Equal(t, "5df6e0e2", hex.EncodeToString(tag[:]))
	assert.Equal(t, tag, Sum([]byte{}))
}

func TestSumAddressVector(t *testing.T) {
	payload, err := hex.DecodeString("00010966776006953d5567439e5e39f86a0d273bee")
	require.Nil(t, err)
	tag := Sum(payload)
	assert.Equal(t, "d61967f6", hex.EncodeToString(tag[:]))
}

func TestSumVersionedEqualsPrependedSum(t *testing.T) {
	payload := []byte("This is test message.")
	for v := 0; v < 256; v++ {
		full := append([]byte{byte(v)}, payload...)
		assert.Equal(t, Sum(full), SumVersioned(byte(v), payload))
	}
}

func TestSumVersionedDoesNotTouchPayload(t *testing.T) {
	payload := []byte{1, 2, 3}
	_ = SumVersioned(9, payload)
	assert.Equal(t, []byte{1, 2, 3}, payload)
}

func TestSumIsDeterministic(t *testing.T) {
	payload := []byte{0, 0, 0, 1}
	assert.Equal(t, Sum(payload), Sum(payload))
	assert.NotEqual(t, Sum(payload), Sum([]byte{0, 0, 1}))
}

func TestVerify(t *testing.T) {
	payload := []byte("payload")
	tag := Sum(payload)
	assert.True(t, Verify(payload, tag[:]))

	tag[0] ^= 0x01
	assert.False(t, Verify(payload, tag[:]))
	assert.False(t, Verify(payload, nil))
	assert.False(t, Verify(payload, []byte{1, 2, 3, 4, 5}))
}

func BenchmarkSum(b *testing.B) {
	payload := make([]byte, 256)
	for n := 0; n < b.N; n++ {
		_ = Sum(payload)
	}
}
