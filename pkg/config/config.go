package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g. KIOSK_ADDR.
const Prefix = "KIOSK"

// ID sources accepted in Config.IDSource.
const (
	IDSourceUUID     = "uuid"
	IDSourceSequence = "sequence"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the kiosk process settings.
type Config struct {
	// Address the HTTP adapter listens on
	Address string `envconfig:"ADDR" default:":8080"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogDev    bool   `envconfig:"LOG_DEV" default:"false"`

	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"kiosk"`

	// IDSource selects the transaction id generator (uuid or sequence)
	IDSource string `envconfig:"ID_SOURCE" default:"uuid"`

	PaymentDelay time.Duration `envconfig:"PAYMENT_DELAY" default:"2s"`
	ScanTick     time.Duration `envconfig:"SCAN_TICK" default:"30ms"`
	ScanStep     int           `envconfig:"SCAN_STEP" default:"2"`
	ScanPause    time.Duration `envconfig:"SCAN_PAUSE" default:"500ms"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads the given .env files, if they exist, and then the process
// environment. Variables already set in the environment win over .env files.
func Load(envFiles ...string) (Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", name, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case c.LogFormat != "json" && c.LogFormat != "console":
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	case c.IDSource != IDSourceUUID && c.IDSource != IDSourceSequence:
		return fmt.Errorf("%w: id source %q", ErrInvalidConfig, c.IDSource)
	case c.PaymentDelay <= 0:
		return fmt.Errorf("%w: payment delay must be positive", ErrInvalidConfig)
	case c.ScanTick <= 0:
		return fmt.Errorf("%w: scan tick must be positive", ErrInvalidConfig)
	case c.ScanStep <= 0 || c.ScanStep > 100:
		return fmt.Errorf("%w: scan step must be in 1..100", ErrInvalidConfig)
	case c.ScanPause <= 0:
		return fmt.Errorf("%w: scan pause must be positive", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
