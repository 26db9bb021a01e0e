// Package config loads and validates the volknob YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chaz8081/volknob/internal/deviceid"
)

// MaxDeviceNameLen is the longest advertised name that fits in a legacy
// advertising packet next to the HID service UUID.
const MaxDeviceNameLen = 20

// Config holds all application configuration.
type Config struct {
	Device       DeviceConfig  `yaml:"device"`
	Backend      string        `yaml:"backend"` // "ble" or "local"
	PollInterval time.Duration `yaml:"poll_interval"`
	Encoder      EncoderConfig `yaml:"encoder"`
	LogLevel     string        `yaml:"log_level"`
}

// DeviceConfig holds the advertised identity.
type DeviceConfig struct {
	NamePrefix   string `yaml:"name_prefix"`
	ID           string `yaml:"id"` // overrides the MAC-derived ID when set
	Manufacturer string `yaml:"manufacturer"`
}

// EncoderConfig binds key combos to encoder gestures.
type EncoderConfig struct {
	Clockwise        []string `yaml:"clockwise"`
	CounterClockwise []string `yaml:"counter_clockwise"`
	Click            []string `yaml:"click"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "volknob")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			NamePrefix:   "CM-",
			Manufacturer: "volknob",
		},
		Backend:      "ble",
		PollInterval: 50 * time.Millisecond,
		Encoder: EncoderConfig{
			Clockwise:        []string{"ctrl", "alt", "up"},
			CounterClockwise: []string{"ctrl", "alt", "down"},
			Click:            []string{"ctrl", "alt", "m"},
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// WriteDefault writes the default config to DefaultConfigPath unless a
// file already exists there. It returns the path.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, fmt.Errorf("checking config file: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return path, fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Device.NamePrefix == "" {
		return fmt.Errorf("device.name_prefix must not be empty")
	}

	// BLE local names must fit a legacy advertising packet alongside the
	// flags and the HID service UUID. Without an override the derived ID
	// is deviceid.IDLen characters.
	idLen := len(c.Device.ID)
	if idLen == 0 {
		idLen = deviceid.IDLen
	}
	if n := len(c.Device.NamePrefix) + idLen; n > MaxDeviceNameLen {
		return fmt.Errorf("device name_prefix + id must be at most %d bytes, got %d", MaxDeviceNameLen, n)
	}

	switch c.Backend {
	case "ble", "local":
	default:
		return fmt.Errorf("backend must be \"ble\" or \"local\", got %q", c.Backend)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0")
	}

	if len(c.Encoder.Clockwise) == 0 && len(c.Encoder.CounterClockwise) == 0 && len(c.Encoder.Click) == 0 {
		return fmt.Errorf("encoder must bind at least one of clockwise, counter_clockwise, click")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a config log level to a slog.Level. Unknown values
// map to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
