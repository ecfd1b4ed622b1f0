// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Docs     DocsConfig     `yaml:"docs"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig configures generation history persistence.
// An empty path keeps history in memory only.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures optional API-key protection of the generate and
// history endpoints. KeyHash is a bcrypt hash of the key; keys are compared,
// never stored in plaintext.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Header  string `yaml:"header"`   // default: X-API-Key
	KeyHash string `yaml:"key_hash"` // bcrypt hash
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DocsConfig configures the Swagger UI endpoint.
type DocsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Environment variable names. These override file values and allow running
// without a config file at all.
const (
	EnvServerHost   = "FORGE_SERVER_HOST"
	EnvServerPort   = "FORGE_SERVER_PORT"
	EnvDatabasePath = "FORGE_DATABASE_PATH"
	EnvLogLevel     = "FORGE_LOG_LEVEL"
	EnvLogFormat    = "FORGE_LOG_FORMAT"
	EnvAuthKeyHash  = "FORGE_AUTH_KEY_HASH"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			Header: "X-API-Key",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{Enabled: true},
		Docs:    DocsConfig{Enabled: true},
	}
}

// Load reads configuration from a YAML file, applies environment overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithFallback loads from the file when it exists, otherwise from
// defaults plus environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvServerHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvAuthKeyHash); v != "" {
		cfg.Auth.Enabled = true
		cfg.Auth.KeyHash = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Auth.Enabled && c.Auth.KeyHash == "" {
		return fmt.Errorf("auth.enabled requires auth.key_hash")
	}
	return nil
}
