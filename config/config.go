// Package config provides configuration loading and management for sicindex.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sicindex/source"
)

// Config represents the complete sicindex configuration
type Config struct {
	Data    DataConfig         `yaml:"data"`
	Lookup  LookupConfig       `yaml:"lookup"`
	Logging LoggingConfig      `yaml:"logging"`
	Watch   source.WatchConfig `yaml:"watch"`
}

// DataConfig names the published data files the catalog is built from.
// Relative entries are resolved against Dir.
type DataConfig struct {
	// Dir is the data directory holding the published files
	Dir string `yaml:"dir"`
	// Structure is the condensed structure list CSV
	Structure string `yaml:"structure"`
	// ActivityIndex is the alphabetical activity index CSV
	ActivityIndex string `yaml:"activity_index"`
	// Metadata lists glob patterns for the YAML metadata shards
	Metadata []string `yaml:"metadata"`
	// Descriptions is the labelled description corpus CSV (optional)
	Descriptions string `yaml:"descriptions"`
	// Rephrased is the reviewed description CSV (optional)
	Rephrased string `yaml:"rephrased"`
}

// LookupConfig configures query behaviour
type LookupConfig struct {
	// Similarity enables the substring scan when an exact description
	// match is not found
	Similarity bool `yaml:"similarity"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is one of text, json
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data",
			Structure:     "structure.csv",
			ActivityIndex: "activity_index.csv",
			Metadata:      []string{"metadata/*.yaml"},
			Descriptions:  "descriptions.csv",
			Rephrased:     "rephrased.csv",
		},
		Lookup: LookupConfig{
			Similarity: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: source.DefaultWatchConfig(),
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Structure == "" {
		return fmt.Errorf("data.structure is required")
	}
	if c.Data.ActivityIndex == "" {
		return fmt.Errorf("data.activity_index is required")
	}
	if len(c.Data.Metadata) == 0 {
		return fmt.Errorf("data.metadata is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be one of text, json")
	}
	return nil
}

// DataPaths resolves the configured file names against the data
// directory and returns them in the shape the loader consumes.
func (c *Config) DataPaths() source.Paths {
	patterns := make([]string, 0, len(c.Data.Metadata))
	for _, p := range c.Data.Metadata {
		patterns = append(patterns, c.resolve(p))
	}

	return source.Paths{
		Structure:     c.resolve(c.Data.Structure),
		ActivityIndex: c.resolve(c.Data.ActivityIndex),
		Metadata:      patterns,
		Descriptions:  c.resolve(c.Data.Descriptions),
		Rephrased:     c.resolve(c.Data.Rephrased),
	}
}

// resolve joins a relative path onto the data directory. Empty and
// absolute paths pass through unchanged.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Data.Dir, path)
}

// LoadFromFile loads configuration from a YAML file
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

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Data
	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if other.Data.Structure != "" {
		c.Data.Structure = other.Data.Structure
	}
	if other.Data.ActivityIndex != "" {
		c.Data.ActivityIndex = other.Data.ActivityIndex
	}
	if len(other.Data.Metadata) > 0 {
		c.Data.Metadata = other.Data.Metadata
	}
	if other.Data.Descriptions != "" {
		c.Data.Descriptions = other.Data.Descriptions
	}
	if other.Data.Rephrased != "" {
		c.Data.Rephrased = other.Data.Rephrased
	}

	// Lookup
	if other.Lookup.Similarity {
		c.Lookup.Similarity = true
	}

	// Logging
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}

	// Watch
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.FileExtensions) > 0 {
		c.Watch.FileExtensions = other.Watch.FileExtensions
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}
}
