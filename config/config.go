package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/attach"
	"github.com/rustyeddy/tradejournal/chart"
)

// Environment variables that override the config file.
const (
	EnvStore    = "TRADEJOURNAL_STORE"
	EnvPath     = "TRADEJOURNAL_PATH"
	EnvKey      = "TRADEJOURNAL_KEY"
	EnvLogLevel = "TRADEJOURNAL_LOG_LEVEL"
	EnvMaxBytes = "TRADEJOURNAL_ATTACH_MAX_BYTES"
)

// Config represents the complete journal configuration
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Chart  ChartConfig  `json:"chart" yaml:"chart"`
	Attach AttachConfig `json:"attach" yaml:"attach"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// StoreConfig selects where the ledger is kept
type StoreConfig struct {
	Type string `json:"type" yaml:"type"` // "memory", "file" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// ChartConfig is the default chart size in terminal cells
type ChartConfig struct {
	Width      int  `json:"width" yaml:"width"`
	Height     int  `json:"height" yaml:"height"`
	Cumulative bool `json:"cumulative,omitempty" yaml:"cumulative,omitempty"`
}

// AttachConfig limits screenshot attachments
type AttachConfig struct {
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// LogConfig sets the log level
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadEnv reads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// DefaultPath is the store location used for a backend when none is
// given: a directory for "file", a database file for "sqlite".
func DefaultPath(storeType string) string {
	switch storeType {
	case "file":
		return "./tradejournal"
	case "sqlite":
		return "./tradejournal.sqlite"
	}
	return ""
}

// ApplyEnv overrides fields from TRADEJOURNAL_* environment variables.
// Switching the store type without a path moves to that type's default
// path.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvStore); v != "" && v != c.Store.Type {
		c.Store.Type = v
		c.Store.Path = DefaultPath(v)
	}
	if v := os.Getenv(EnvPath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvKey); v != "" {
		c.Store.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvMaxBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxBytes, err)
		}
		c.Attach.MaxBytes = n
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Type {
	case "memory":
	case "file", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s store", c.Store.Type)
		}
	default:
		return fmt.Errorf("store.type must be 'memory', 'file' or 'sqlite'")
	}
	if strings.ContainsAny(c.Store.Key, `/\`) {
		return fmt.Errorf("store.key must not contain path separators")
	}
	if c.Chart.Width < chart.MinWidth {
		return fmt.Errorf("chart.width must be at least %d", chart.MinWidth)
	}
	if c.Chart.Height < chart.MinHeight {
		return fmt.Errorf("chart.height must be at least %d", chart.MinHeight)
	}
	if c.Attach.MaxBytes <= 0 {
		return fmt.Errorf("attach.max_bytes must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Type: "sqlite",
			Path: DefaultPath("sqlite"),
			Key:  "trades",
		},
		Chart: ChartConfig{
			Width:  chart.DefaultWidth,
			Height: chart.DefaultHeight,
		},
		Attach: AttachConfig{
			MaxBytes: attach.DefaultMaxBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
