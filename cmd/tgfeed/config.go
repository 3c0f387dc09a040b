package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/tgfeed"
	"github.com/fwojciec/tgfeed/channel"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the optional config file. Command-line
// flags override individual values.
type Config struct {
	Database    string        `yaml:"database"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"`
	Retries     int           `yaml:"retries"`
	Concurrency int           `yaml:"concurrency"`
	Pages       int           `yaml:"pages"`
	Channels    []string      `yaml:"channels"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     channel.DefaultBaseURL,
		Timeout:     10 * time.Second,
		RateLimit:   1,
		Retries:     3,
		Concurrency: 4,
		Pages:       1,
	}
}

// LoadConfig reads the YAML file at path over DefaultConfig. A missing file
// is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if any setting is out of range.
func (c *Config) Validate() error {
	switch {
	case c.Timeout <= 0:
		return tgfeed.Errorf(tgfeed.EINVALID, "config: timeout must be positive")
	case c.RateLimit < 0:
		return tgfeed.Errorf(tgfeed.EINVALID, "config: rate_limit must not be negative")
	case c.Retries < 0:
		return tgfeed.Errorf(tgfeed.EINVALID, "config: retries must not be negative")
	case c.Concurrency < 1:
		return tgfeed.Errorf(tgfeed.EINVALID, "config: concurrency must be at least 1")
	case c.Pages < 1:
		return tgfeed.Errorf(tgfeed.EINVALID, "config: pages must be at least 1")
	}
	return nil
}

// RetryDelays returns exponential backoff delays starting at one second,
// one per configured retry.
func (c *Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, c.Retries)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".tgfeed", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tgfeed.db"
	}
	dir := filepath.Join(home, ".tgfeed")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tgfeed.db")
}
