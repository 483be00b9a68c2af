package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds simulator settings.
type Config struct {
	// MaxCycles is the default cycle budget for Run. Default: 1000.
	MaxCycles int `json:"max_cycles"`

	// FrequencyMHz is the core clock used by RunClocked. Default: 100.
	FrequencyMHz float64 `json:"frequency_mhz"`

	// Trace enables the per-cycle trace in the CLI.
	Trace bool `json:"trace"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxCycles:    1000,
		FrequencyMHz: 100,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.MaxCycles <= 0 {
		return fmt.Errorf("max_cycles must be > 0")
	}
	if c.FrequencyMHz <= 0 {
		return fmt.Errorf("frequency_mhz must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
