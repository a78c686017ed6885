// Package config loads the encoder server configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jeongseonghan/ofdm-phy/internal/phy"
)

// Config represents the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	PHY    PHYConfig    `yaml:"phy"`
}

// ServerConfig contains web server settings.
type ServerConfig struct {
	Listen        string `yaml:"listen"`
	EnableMetrics bool   `yaml:"enable_metrics"`
}

// PHYConfig contains encoder defaults.
type PHYConfig struct {
	DefaultRateMbps int `yaml:"default_rate_mbps"`
	ScramblerSeed   int `yaml:"scrambler_seed"`
	QueueDepth      int `yaml:"queue_depth"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:        "0.0.0.0:8080",
			EnableMetrics: true,
		},
		PHY: PHYConfig{
			DefaultRateMbps: 24,
			ScramblerSeed:   int(phy.DefaultScramblerSeed),
			QueueDepth:      16,
		},
	}
}

// Load reads and validates a YAML configuration file. Missing fields
// fall back to defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if _, err := phy.LookupRate(c.PHY.DefaultRateMbps); err != nil {
		return fmt.Errorf("phy.default_rate_mbps: %w", err)
	}
	if c.PHY.ScramblerSeed < 0 || c.PHY.ScramblerSeed > 127 {
		return fmt.Errorf("phy.scrambler_seed must be 0..127, got %d", c.PHY.ScramblerSeed)
	}
	if c.PHY.QueueDepth < 1 {
		return fmt.Errorf("phy.queue_depth must be at least 1")
	}
	return nil
}
