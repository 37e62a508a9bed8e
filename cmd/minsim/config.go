package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the scan flags so a corpus can carry its parameters in a
// TOML file. Flags set on the command line override file values.
type Config struct {
	ShingleSize int     `toml:"shingle_size"`
	NumHashes   int     `toml:"num_hashes"`
	Threshold   float64 `toml:"threshold"`
	Workers     int     `toml:"workers"`
	Seed        int64   `toml:"seed"`
	OnError     string  `toml:"on_error"`

	Logging LoggingConfig `toml:"logging"`
}

// LoggingConfig configures the slog handler used by the CLI.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		ShingleSize: 3,
		NumHashes:   100,
		Threshold:   0.5,
		OnError:     "skip",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path means
// defaults only.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the CLI-level settings. Core parameters are re-validated by
// minsim at construction.
func (c *Config) Validate() error {
	switch c.OnError {
	case "skip", "abort":
	default:
		return fmt.Errorf("on_error must be skip or abort, got %q", c.OnError)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// newLogger builds the slog logger described by the logging config, writing
// to stderr so report output on stdout stays clean.
func newLogger(cfg LoggingConfig) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}
