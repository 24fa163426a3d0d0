package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/timeline"
)

const (
	DefaultDataDir      = ".castplay"
	DefaultTheme        = "minimal"
	DefaultLogLevel     = "warn"
	DefaultFetchTimeout = 30 * time.Second
	DefaultBucket       = 1.0
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	DataDir       string         `yaml:"data_dir"`
	IdleTimeLimit *float64       `yaml:"idle_time_limit,omitempty"`
	StartAt       string         `yaml:"start_at,omitempty"`
	Theme         string         `yaml:"theme"`
	LogLevel      string         `yaml:"log_level"`
	Fetch         FetchConfig    `yaml:"fetch"`
	Activity      ActivityConfig `yaml:"activity"`
}

type FetchConfig struct {
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

type ActivityConfig struct {
	// Bucket is the width of one activity bucket in seconds.
	Bucket float64 `yaml:"bucket"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Fetch: FetchConfig{
			Timeout: DefaultFetchTimeout,
		},
		Activity: ActivityConfig{
			Bucket: DefaultBucket,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.IdleTimeLimit != nil && !positive(*c.IdleTimeLimit) {
		return fmt.Errorf("%w: idle_time_limit must be positive, got %g", ErrInvalid, *c.IdleTimeLimit)
	}
	if _, err := timeline.ParseStartAt(c.StartAt); err != nil {
		return fmt.Errorf("%w: start_at: %v", ErrInvalid, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("%w: fetch.timeout must not be negative", ErrInvalid)
	}
	if !positive(c.Activity.Bucket) {
		return fmt.Errorf("%w: activity.bucket must be positive, got %g", ErrInvalid, c.Activity.Bucket)
	}
	return nil
}

// positive reports whether v is finite and greater than zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// StartPosition parses StartAt.
func (c *Config) StartPosition() (timeline.StartAt, error) {
	return timeline.ParseStartAt(c.StartAt)
}

func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{Headers: c.Fetch.Headers, Timeout: c.Fetch.Timeout}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return level, nil
}
