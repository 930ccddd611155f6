package codecserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/codec"
	"github.com/bartossh/Base58/versioning"
)

// Modes select the encoding scheme of a request. An empty mode means ModePlain.
const (
	ModePlain   = "plain"
	ModeCheck   = "check"
	ModeVersion = "version"
)

// KindBadRequest is the error code of a request that could not be understood.
const KindBadRequest = "bad_request"

// AliveResponse is a response for alive and version check.
type AliveResponse struct {
	APIVersion string `json:"api_version"`
	APIHeader  string `json:"api_header"`
	Alive      bool   `json:"alive"`
}

// AlphabetResponse describes one supported alphabet.
type AlphabetResponse struct {
	Name    string `json:"name"`
	Symbols string `json:"symbols"`
}

// AlphabetsResponse lists supported alphabets.
type AlphabetsResponse struct {
	Alphabets []AlphabetResponse `json:"alphabets"`
	Default   string             `json:"default"`
}

// EncodeRequest is a request to encode data.
// Version is required in ModeVersion and ignored otherwise.
type EncodeRequest struct {
	Data     []byte `json:"data"`
	Alphabet string `json:"alphabet,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Version  *byte  `json:"version,omitempty"`
}

// EncodeResponse is a response with encoded text.
type EncodeResponse struct {
	Encoded  string `json:"encoded"`
	Alphabet string `json:"alphabet"`
}

// DecodeRequest is a request to decode text.
// In ModeVersion a set Version is the version the text must carry.
type DecodeRequest struct {
	Encoded  string `json:"encoded"`
	Alphabet string `json:"alphabet,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Version  *byte  `json:"version,omitempty"`
}

// DecodeResponse is a response with decoded data. Version is set in ModeVersion only.
type DecodeResponse struct {
	Data    []byte `json:"data"`
	Version *byte  `json:"version,omitempty"`
}

// ErrorResponse describes a failed request. Error holds a stable kind code.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *server) alive(c *fiber.Ctx) error {
	return c.JSON(
		AliveResponse{
			Alive:      true,
			APIVersion: versioning.ApiVersion,
			APIHeader:  versioning.Header,
		})
}

func (s *server) alphabets(c *fiber.Ctx) error {
	resp := AlphabetsResponse{Default: s.defaultVariant.String()}
	for _, v := range alphabet.Variants() {
		a, err := alphabet.Get(v)
		if err != nil {
			return err
		}
		resp.Alphabets = append(resp.Alphabets, AlphabetResponse{Name: v.String(), Symbols: a.String()})
	}
	return c.JSON(resp)
}

func (s *server) encode(c *fiber.Ctx) error {
	s.tele.IncrementGauge(requestsInFlightGauge)
	defer s.tele.DecrementGauge(requestsInFlightGauge)

	t := time.Now()
	defer func() { s.tele.RecordHistogramTime(encodeTelemetryHistogram, time.Since(t)) }()

	var req EncodeRequest
	if err := c.BodyParser(&req); err != nil {
		s.log.Error(fmt.Sprintf("%s endpoint, failed to parse request body: %s", EncodeURL, err.Error()))
		return s.badRequest(c, "request body is not valid JSON")
	}

	cd, err := s.codecFor(req.Alphabet)
	if err != nil {
		return s.failure(c, EncodeURL, err)
	}

	var encoded string
	switch req.Mode {
	case "", ModePlain:
		encoded = cd.Encode(req.Data)
	case ModeCheck:
		encoded = cd.EncodeChecked(req.Data)
	case ModeVersion:
		if req.Version == nil {
			return s.badRequest(c, "version is required in version mode")
		}
		encoded = cd.EncodeVersioned(*req.Version, req.Data)
	default:
		return s.badRequest(c, fmt.Sprintf("unknown mode %q", req.Mode))
	}

	return c.JSON(EncodeResponse{Encoded: encoded, Alphabet: cd.Variant().String()})
}

func (s *server) decode(c *fiber.Ctx) error {
	s.tele.IncrementGauge(requestsInFlightGauge)
	defer s.tele.DecrementGauge(requestsInFlightGauge)

	t := time.Now()
	defer func() { s.tele.RecordHistogramTime(decodeTelemetryHistogram, time.Since(t)) }()

	var req DecodeRequest
	if err := c.BodyParser(&req); err != nil {
		s.log.Error(fmt.Sprintf("%s endpoint, failed to parse request body: %s", DecodeURL, err.Error()))
		return s.badRequest(c, "request body is not valid JSON")
	}

	cd, err := s.codecFor(req.Alphabet)
	if err != nil {
		return s.failure(c, DecodeURL, err)
	}

	var resp DecodeResponse
	switch req.Mode {
	case "", ModePlain:
		resp.Data, err = cd.Decode(req.Encoded)
	case ModeCheck:
		resp.Data, err = cd.DecodeChecked(req.Encoded)
	case ModeVersion:
		var version byte
		if req.Version != nil {
			version = *req.Version
			resp.Data, err = cd.DecodeVersionedExpect(req.Encoded, version)
		} else {
			version, resp.Data, err = cd.DecodeVersioned(req.Encoded)
		}
		resp.Version = &version
	default:
		return s.badRequest(c, fmt.Sprintf("unknown mode %q", req.Mode))
	}
	if err != nil {
		return s.failure(c, DecodeURL, err)
	}

	return c.JSON(resp)
}

// codecFor returns the codec of the named alphabet, the default one when name is empty.
func (s *server) codecFor(name string) (*codec.Codec, error) {
	if name == "" {
		return codec.New(s.defaultVariant)
	}
	return codec.ForName(name)
}

func (s *server) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: KindBadRequest, Message: msg})
}

func (s *server) failure(c *fiber.Ctx, endpoint string, err error) error {
	kind, kerr := codec.Kind(err)
	if kerr != nil {
		s.log.Error(fmt.Sprintf("%s endpoint, unexpected failure: %s", endpoint, err.Error()))
		return fiber.ErrInternalServerError
	}

	status := fiber.StatusUnprocessableEntity
	if kind == codec.KindInvalidAlphabet {
		status = fiber.StatusBadRequest
	}
	if endpoint == DecodeURL {
		s.tele.IncrementCounter(decodeFailuresCounter, kind)
	}
	s.log.Debug(fmt.Sprintf("%s endpoint, %s: %s", endpoint, kind, err.Error()))

	return c.Status(status).JSON(ErrorResponse{Error: kind, Message: err.Error()})
}
