// Package config provides configuration loading and management for mapfgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/mapfgraph/export"
	"github.com/c360studio/mapfgraph/vocabulary/ma"
)

// Config represents the complete mapfgraph configuration
type Config struct {
	// Namespace is the base IRI for instance nodes. Must end in '#' or '/'.
	Namespace string `yaml:"namespace"`
	// Ontology is the base ontology file loaded before mapping (empty = none)
	Ontology string `yaml:"ontology"`
	// Output is the path the graph is written to
	Output string `yaml:"output"`
	// Format is the output format (empty = infer from the output extension)
	Format string `yaml:"format"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// MetricsFile receives Prometheus text-format metrics after each run (empty = disabled)
	MetricsFile string `yaml:"metrics_file"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Debounce is how long to wait after the last change before rebuilding
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Namespace: ma.Namespace,
		Ontology:  "./ontology/ma-ontology.ttl",
		Output:    "mapf_instance.ttl",
		Format:    "",
		LogLevel:  "info",
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if !strings.HasSuffix(c.Namespace, "#") && !strings.HasSuffix(c.Namespace, "/") {
		return fmt.Errorf("namespace must end in '#' or '/': %s", c.Namespace)
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error: %s", c.LogLevel)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// OutputFormat resolves the serialization format. An explicit format wins;
// otherwise it is inferred from the output path, falling back to Turtle.
func (c *Config) OutputFormat() (export.Format, error) {
	if c.Format != "" {
		return export.ParseFormat(c.Format)
	}
	if f, ok := export.FormatFromPath(c.Output); ok {
		return f, nil
	}
	return export.FormatTurtle, nil
}

// LoadFromFile loads configuration from a YAML file. Fields the file omits
// keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// loadLayer decodes only the fields set in the file at path, for merging
// over lower-precedence layers.
func loadLayer(path string) (*Config, error) {
	config := &Config{}
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Namespace != "" {
		c.Namespace = other.Namespace
	}
	if other.Ontology != "" {
		c.Ontology = other.Ontology
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MetricsFile != "" {
		c.MetricsFile = other.MetricsFile
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
