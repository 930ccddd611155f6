package codecclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bartossh/Base58/codec"
	"github.com/bartossh/Base58/codecserver"
	"github.com/bartossh/Base58/httpclient"
	"github.com/bartossh/Base58/versioning"
)

var (
	ErrApiVersionMismatch = errors.New("api version mismatch")
	ErrApiHeaderMismatch  = errors.New("api header mismatch")
	ErrBadRequest         = errors.New("request rejected by server")
)

// Config is the configuration of the codec client.
type Config struct {
	URL     string        `yaml:"url"`     // Codec server URL.
	Timeout time.Duration `yaml:"timeout"` // Single request timeout.
}

// Client talks to the codec server over its REST API.
type Client struct {
	url     string
	timeout time.Duration
}

// New creates a new codec client.
func New(cfg Config) *Client {
	return &Client{url: strings.TrimSuffix(cfg.URL, "/"), timeout: cfg.Timeout}
}

// ValidateApiVersion makes a call to the server and validates the API version and header.
func (c *Client) ValidateApiVersion() error {
	var alive codecserver.AliveResponse
	if err := httpclient.MakeGet(c.timeout, c.url+codecserver.AliveURL, &alive); err != nil {
		return err
	}
	if alive.APIVersion != versioning.ApiVersion {
		return errors.Join(ErrApiVersionMismatch,
			fmt.Errorf("expected %s but got %s", versioning.ApiVersion, alive.APIVersion))
	}
	if alive.APIHeader != versioning.Header {
		return errors.Join(ErrApiHeaderMismatch,
			fmt.Errorf("expected %s but got %s", versioning.Header, alive.APIHeader))
	}
	return nil
}

// Alphabets lists the alphabets supported by the server.
func (c *Client) Alphabets() (codecserver.AlphabetsResponse, error) {
	var resp codecserver.AlphabetsResponse
	err := httpclient.MakeGet(c.timeout, c.url+codecserver.AlphabetsURL, &resp)
	return resp, err
}

// Encode encodes data on the server.
func (c *Client) Encode(req codecserver.EncodeRequest) (codecserver.EncodeResponse, error) {
	var resp codecserver.EncodeResponse
	if err := httpclient.MakePost(c.timeout, c.url+codecserver.EncodeURL, req, &resp); err != nil {
		return codecserver.EncodeResponse{}, remoteError(err)
	}
	return resp, nil
}

// Decode decodes text on the server.
// Codec failures are returned as errors matching the codec sentinel errors.
func (c *Client) Decode(req codecserver.DecodeRequest) (codecserver.DecodeResponse, error) {
	var resp codecserver.DecodeResponse
	if err := httpclient.MakePost(c.timeout, c.url+codecserver.DecodeURL, req, &resp); err != nil {
		return codecserver.DecodeResponse{}, remoteError(err)
	}
	return resp, nil
}

func remoteError(err error) error {
	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return err
	}
	var fail codecserver.ErrorResponse
	if jerr := json.Unmarshal(se.Body, &fail); jerr != nil || fail.Error == "" {
		return err
	}
	if fail.Error == codecserver.KindBadRequest {
		return fmt.Errorf("%w: %s", ErrBadRequest, fail.Message)
	}
	return codec.FromKind(fail.Error, fail.Message)
}
