package configuration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/codecclient"
	"github.com/bartossh/Base58/codecserver"
	"github.com/bartossh/Base58/telemetry"
)

// Environment variables overriding the file configuration.
const (
	EnvDefaultAlphabet = "BASE58_DEFAULT_ALPHABET"
	EnvServerPort      = "BASE58_SERVER_PORT"
	EnvTelemetryPort   = "BASE58_TELEMETRY_PORT"
	EnvClientURL       = "BASE58_CLIENT_URL"
)

// DefaultAlphabet is used when neither the configuration nor the caller names an alphabet.
const DefaultAlphabet = "bitcoin"

var ErrInvalidPort = errors.New("port out of range")

// Codec is the codec configuration.
type Codec struct {
	DefaultAlphabet string `yaml:"default_alphabet"` // Alphabet used when a request does not name one.
}

// Configuration is the main configuration of the application that corresponds to the *.yaml file
// that holds the configuration.
type Configuration struct {
	Codec     Codec              `yaml:"codec"`
	Server    codecserver.Config `yaml:"server"`
	Client    codecclient.Config `yaml:"client"`
	Telemetry telemetry.Config   `yaml:"telemetry"`
}

// Default returns the configuration used when no file is given.
func Default() Configuration {
	return Configuration{
		Codec:     Codec{DefaultAlphabet: DefaultAlphabet},
		Server:    codecserver.Config{Port: 8080},
		Client:    codecclient.Config{URL: "http://localhost:8080", Timeout: 5 * time.Second},
		Telemetry: telemetry.Config{Port: 2112},
	}
}

// Read reads the configuration from the file and returns the Configuration with set fields according to the yaml setup.
// Fields missing in the file keep their default values.
func Read(path string) (Configuration, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}

	main := Default()
	err = yaml.Unmarshal(buf, &main)
	if err != nil {
		return Configuration{}, fmt.Errorf("in file %q: %w", path, err)
	}

	return main, nil
}

// LoadEnv loads the given .env files, missing files are skipped, and applies the environment
// variables on top of the configuration.
func LoadEnv(cfg *Configuration, files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("env file %q: %w", f, err)
		}
	}

	if v, ok := os.LookupEnv(EnvDefaultAlphabet); ok {
		cfg.Codec.DefaultAlphabet = v
	}
	if v, ok := os.LookupEnv(EnvClientURL); ok {
		cfg.Client.URL = v
	}
	if err := envInt(EnvServerPort, &cfg.Server.Port); err != nil {
		return err
	}
	if err := envInt(EnvTelemetryPort, &cfg.Telemetry.Port); err != nil {
		return err
	}
	return nil
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", name, err)
	}
	*dst = n
	return nil
}

// Validate checks that the configured alphabet exists and ports are in range.
func (c Configuration) Validate() error {
	if _, err := alphabet.Lookup(c.Codec.DefaultAlphabet); err != nil {
		return fmt.Errorf("codec default_alphabet: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Join(ErrInvalidPort, fmt.Errorf("server port %d", c.Server.Port))
	}
	if c.Telemetry.Port < 0 || c.Telemetry.Port > 65535 {
		return errors.Join(ErrInvalidPort, fmt.Errorf("telemetry port %d", c.Telemetry.Port))
	}
	return nil
}

// DefaultVariant returns the configured default alphabet variant.
func (c Configuration) DefaultVariant() (alphabet.Variant, error) {
	return alphabet.ParseVariant(c.Codec.DefaultAlphabet)
}
