package codecserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/logger"
	"github.com/bartossh/Base58/telemetry"
	"github.com/bartossh/Base58/versioning"
)

const (
	AliveURL     = "/alive"     // URL to check is service alive.
	AlphabetsURL = "/alphabets" // URL to list supported alphabets.
	EncodeURL    = "/encode"    // URL to encode data.
	DecodeURL    = "/decode"    // URL to decode text.
	MetricsURL   = "/metrics"   // URL to serve service metrics over http.
)

const (
	encodeTelemetryHistogram = "encode_request_duration"
	decodeTelemetryHistogram = "decode_request_duration"
	decodeFailuresCounter    = "decode_failures_total"
	requestsInFlightGauge    = "requests_in_flight"
)

var (
	ErrWrongPortSpecified = errors.New("port must be between 1 and 65535")
	ErrMissingTelemetry   = errors.New("telemetry measurements are required")
)

// Config contains configuration of the codec server.
type Config struct {
	Port int `yaml:"port"` // Port to listen on.
}

type server struct {
	defaultVariant alphabet.Variant
	log            logger.Logger
	tele           *telemetry.Measurements
}

// Run initializes routing and runs the codec server. To stop the server cancel the context.
// It will block until the context is canceled.
// Requests that do not name an alphabet use defaultVariant.
func Run(
	ctx context.Context, cfg Config, defaultVariant alphabet.Variant, log logger.Logger, tele *telemetry.Measurements,
) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return ErrWrongPortSpecified
	}

	router, err := New(defaultVariant, log, tele)
	if err != nil {
		return err
	}

	ctxx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		if err := router.Listen(fmt.Sprintf("0.0.0.0:%v", cfg.Port)); err != nil {
			listenErr <- err
			cancel()
		}
	}()

	<-ctxx.Done()

	shutdownErr := router.Shutdown()

	select {
	case err := <-listenErr:
		return err
	default:
		return shutdownErr
	}
}

// New creates the fiber application serving the codec API without starting to listen.
func New(defaultVariant alphabet.Variant, log logger.Logger, tele *telemetry.Measurements) (*fiber.App, error) {
	if _, err := alphabet.Get(defaultVariant); err != nil {
		return nil, err
	}
	if tele == nil {
		return nil, ErrMissingTelemetry
	}

	tele.CreateObservableHistogram(encodeTelemetryHistogram, "encode request duration in microseconds")
	tele.CreateObservableHistogram(decodeTelemetryHistogram, "decode request duration in microseconds")
	tele.CreateCounter(decodeFailuresCounter, "number of failed decode requests", "kind")
	tele.CreateObservableGauge(requestsInFlightGauge, "number of encode and decode requests being served")

	s := &server{defaultVariant: defaultVariant, log: log, tele: tele}

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   time.Second * 5,
		WriteTimeout:  time.Second * 5,
		ServerHeader:  versioning.Header,
		AppName:       versioning.ApiVersion,
		Concurrency:   4096,
	})
	router.Use(recover.New())
	router.Get(MetricsURL, monitor.New(monitor.Config{Title: versioning.Header}))
	router.Get(AliveURL, s.alive)
	router.Get(AlphabetsURL, s.alphabets)
	router.Post(EncodeURL, s.encode)
	router.Post(DecodeURL, s.decode)

	return router, nil
}
