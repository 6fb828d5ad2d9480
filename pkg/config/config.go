package config

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/tokfile/pkg/codec"
)

// Byte order names accepted in the config file
const (
	ByteOrderLittle = "little"
	ByteOrderBig    = "big"
)

// Config represents the tokfile configuration
type Config struct {
	Sentinel   string  `yaml:"sentinel"`
	ByteOrder  string  `yaml:"byte_order"`
	FlushEvery int     `yaml:"flush_every"`
	BufferSize int     `yaml:"buffer_size"`
	Fsync      bool    `yaml:"fsync"`
	Logging    Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Sentinel:   "ffff",
		ByteOrder:  ByteOrderLittle,
		FlushEvery: codec.DefaultFlushEvery,
		BufferSize: 64 * 1024,
		Fsync:      false,
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
// Fields missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field and rejects unsupported hosts
func (c *Config) Validate() error {
	if err := codec.CheckHost(); err != nil {
		return err
	}
	if _, err := c.Format(); err != nil {
		return err
	}
	if c.FlushEvery <= 0 {
		return fmt.Errorf("flush_every must be positive, got %d", c.FlushEvery)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}

// Format returns the codec format described by the sentinel and byte order fields
func (c *Config) Format() (codec.Format, error) {
	sentinel, err := codec.ParseSentinel(c.Sentinel)
	if err != nil {
		return codec.Format{}, err
	}

	var order binary.ByteOrder
	switch c.ByteOrder {
	case ByteOrderLittle, "":
		order = binary.LittleEndian
	case ByteOrderBig:
		order = binary.BigEndian
	default:
		return codec.Format{}, fmt.Errorf("unknown byte order %q", c.ByteOrder)
	}

	return codec.Format{Sentinel: &sentinel, ByteOrder: order}, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./tokfile.yaml"
	}

	// For Linux/macOS, use ~/.config/tokfile/config.yaml
	configDir := filepath.Join(homeDir, ".config", "tokfile")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
