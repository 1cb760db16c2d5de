// Package config provides configuration loading for the converter.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/casework/case-exiftool/graph"
	"github.com/casework/case-exiftool/mapper"
)

// Config represents the run-wide conversion settings.
type Config struct {
	// BasePrefix is the namespace for generated node identifiers.
	BasePrefix string `yaml:"base_prefix"`
	// DeterministicIDs derives node identifiers from stable inputs
	// instead of randomly, for reproducible re-runs.
	DeterministicIDs bool `yaml:"deterministic_ids"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
	// OutputFormat forces the output syntax (turtle, ntriples, json-ld).
	// Empty means guess from the output file extension.
	OutputFormat string `yaml:"output_format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BasePrefix: mapper.DefaultBasePrefix,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BasePrefix == "" {
		return fmt.Errorf("base_prefix is required")
	}
	if !strings.HasSuffix(c.BasePrefix, "/") && !strings.HasSuffix(c.BasePrefix, "#") {
		return fmt.Errorf("base_prefix must end with '/' or '#': %s", c.BasePrefix)
	}
	if c.OutputFormat != "" {
		if _, err := graph.ParseFormat(c.OutputFormat); err != nil {
			return err
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.BasePrefix != "" {
		c.BasePrefix = other.BasePrefix
	}
	if other.DeterministicIDs {
		c.DeterministicIDs = true
	}
	if other.Debug {
		c.Debug = true
	}
	if other.OutputFormat != "" {
		c.OutputFormat = other.OutputFormat
	}
}
