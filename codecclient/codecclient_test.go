package codecclient

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/codec"
	"github.com/bartossh/Base58/codecserver"
	"github.com/bartossh/Base58/httpclient"
	"github.com/bartossh/Base58/telemetry"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(string) {}
func (nopLogger) Fatal(string) {}

func startServer(t *testing.T) *Client {
	app, err := codecserver.New(alphabet.Bitcoin, nopLogger{}, telemetry.New())
	require.Nil(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)

	go app.Listener(ln)
	t.Cleanup(func() { app.Shutdown() })

	return New(Config{URL: "http://" + ln.Addr().String() + "/", Timeout: 5 * time.Second})
}

func version(v byte) *byte {
	return &v
}

func TestValidateApiVersion(t *testing.T) {
	c := startServer(t)
	assert.Nil(t, c.ValidateApiVersion())
}

func TestAlphabets(t *testing.T) {
	c := startServer(t)
	list, err := c.Alphabets()
	require.Nil(t, err)
	assert.Equal(t, "bitcoin", list.Default)
	assert.Len(t, list.Alphabets, 4)
}

func TestRemoteRoundTrip(t *testing.T) {
	c := startServer(t)
	payload := []byte{0, 0, 1, 2, 3}

	enc, err := c.Encode(codecserver.EncodeRequest{Data: payload, Alphabet: "flickr", Mode: codecserver.ModeVersion, Version: version(5)})
	require.Nil(t, err)

	local, err := codec.EncodeVersioned(payload, 5, "flickr")
	require.Nil(t, err)
	assert.Equal(t, local, enc.Encoded)

	dec, err := c.Decode(codecserver.DecodeRequest{Encoded: enc.Encoded, Alphabet: "flickr", Mode: codecserver.ModeVersion})
	require.Nil(t, err)
	assert.Equal(t, payload, dec.Data)
	require.NotNil(t, dec.Version)
	assert.Equal(t, byte(5), *dec.Version)
}

func TestRemoteErrorsMatchSentinels(t *testing.T) {
	c := startServer(t)

	_, err := c.Decode(codecserver.DecodeRequest{Encoded: "0"})
	assert.ErrorIs(t, err, codec.ErrInvalidCharacter)

	_, err = c.Decode(codecserver.DecodeRequest{Encoded: "1", Mode: codecserver.ModeCheck})
	assert.ErrorIs(t, err, codec.ErrTooShort)

	_, err = c.Decode(codecserver.DecodeRequest{Encoded: "2NEpo7TZRRrLZSi2U", Mode: codecserver.ModeCheck})
	assert.ErrorIs(t, err, codec.ErrChecksumMismatch)

	_, err = c.Encode(codecserver.EncodeRequest{Data: []byte{1}, Alphabet: "nope"})
	assert.ErrorIs(t, err, codec.ErrInvalidAlphabet)

	_, err = c.Encode(codecserver.EncodeRequest{Data: []byte{1}, Mode: codecserver.ModeVersion})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestServerUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)
	addr := ln.Addr().String()
	require.Nil(t, ln.Close())

	c := New(Config{URL: "http://" + addr, Timeout: time.Second})
	assert.NotNil(t, c.ValidateApiVersion())

	_, err = c.Decode(codecserver.DecodeRequest{Encoded: "1"})
	require.NotNil(t, err)
	var se *httpclient.StatusError
	assert.False(t, errors.As(err, &se))
}
