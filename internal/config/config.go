// ABOUTME: Configuration loading and parsing for showcase
// ABOUTME: YAML files with ${VAR} expansion, SHOWCASE_* overrides and duration parsing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/store"
)

// Config represents the complete showcase configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Clock   ClockConfig   `yaml:"clock"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" env:"SHOWCASE_HTTP_ADDR"`
}

// StorageConfig selects the key-value backend for persisted settings
type StorageConfig struct {
	Backend string `yaml:"backend" env:"SHOWCASE_STORAGE_BACKEND"` // sqlite, sqlite3, toml, memory
	Path    string `yaml:"path" env:"SHOWCASE_STORAGE_PATH"`
}

// ClockConfig holds clock widget configuration
type ClockConfig struct {
	Locale   string `yaml:"locale" env:"SHOWCASE_LOCALE"`     // fallback when Accept-Language doesn't match
	Timezone string `yaml:"timezone" env:"SHOWCASE_TIMEZONE"` // IANA name or "Local"

	TickInterval time.Duration  `yaml:"-"`
	Location     *time.Location `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TickIntervalRaw string `yaml:"tick_interval" env:"SHOWCASE_TICK_INTERVAL"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"SHOWCASE_LOG_LEVEL"`
	Format string `yaml:"format" env:"SHOWCASE_LOG_FORMAT"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: "127.0.0.1:8080",
		},
		Storage: StorageConfig{
			Backend: store.BackendSQLite,
			Path:    "showcase.db",
		},
		Clock: ClockConfig{
			Locale:          "en-US",
			Timezone:        "Local",
			TickIntervalRaw: "1s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Values missing from the file keep their defaults. Environment variables in the
// format ${VAR_NAME} are expanded, then SHOWCASE_* variables override the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return finish(Default())
	}
	return cfg, err
}

func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
// It also resolves Clock.Location.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	switch c.Storage.Backend {
	case store.BackendSQLite, store.BackendSQLite3, store.BackendTOML:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
		}
	case store.BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of sqlite, sqlite3, toml, memory (got %q)", c.Storage.Backend)
	}

	if _, err := clock.ParseLocale(c.Clock.Locale); err != nil {
		return fmt.Errorf("clock.locale: %w", err)
	}

	loc, err := time.LoadLocation(c.Clock.Timezone)
	if err != nil {
		return fmt.Errorf("clock.timezone: %w", err)
	}
	c.Clock.Location = loc

	if c.Clock.TickInterval <= 0 {
		return fmt.Errorf("clock.tick_interval must be positive")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Clock.TickIntervalRaw != "" {
		d, err := time.ParseDuration(cfg.Clock.TickIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing tick_interval %q: %w", cfg.Clock.TickIntervalRaw, err)
		}
		cfg.Clock.TickInterval = d
	}
	return nil
}
