package telemetry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "ARGCHECK_"

// ErrParsingConfig is returned when environment variables cannot be parsed.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config contains the telemetry configuration for argcheck.
type Config struct {
	// ServiceName identifies the process in logs and metrics.
	ServiceName string `env:"SERVICE_NAME" envDefault:"argcheck"`

	// Environment specifies the deployment environment (development, production).
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Logging contains logging configuration.
	Logging LoggingConfig `envPrefix:"LOG_"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn, error, fatal).
	Level string `env:"LEVEL" envDefault:"info"`

	// Format specifies the log format (console, json).
	Format string `env:"FORMAT" envDefault:"console"`

	// Output specifies where logs are written (stdout, stderr, file path).
	Output string `env:"OUTPUT" envDefault:"stderr"`

	// EnableCaller adds file:line caller information to logs.
	EnableCaller bool `env:"CALLER" envDefault:"false"`

	// TimeFormat specifies the timestamp format (unix, unixms, rfc3339).
	TimeFormat string `env:"TIME_FORMAT" envDefault:"rfc3339"`
}

// MetricsConfig configures metrics collection.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// ListenAddress is the address for the metrics HTTP endpoint.
	ListenAddress string `env:"LISTEN_ADDRESS" envDefault:":9090"`

	// Path is the HTTP path for metrics.
	Path string `env:"PATH" envDefault:"/metrics"`

	// Namespace is the metrics namespace prefix.
	Namespace string `env:"NAMESPACE" envDefault:"argcheck"`
}

// DefaultConfig returns a default telemetry configuration.
func DefaultConfig() *Config {
	return &Config{
		ServiceName: "argcheck",
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: "rfc3339",
		},
		Metrics: MetricsConfig{
			ListenAddress: ":9090",
			Path:          "/metrics",
			Namespace:     "argcheck",
		},
	}
}

// LoadConfig reads the configuration from ARGCHECK_ prefixed environment
// variables. Each existing dotenv file is loaded first; variables already set
// in the environment win over dotenv values.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	for _, file := range dotenvFiles {
		// Missing files are fine, the environment may be configured directly.
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.ListenAddress == "" {
		return fmt.Errorf("metrics listen address is required when metrics are enabled")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q (must start with '/')", c.Metrics.Path)
	}

	return nil
}
