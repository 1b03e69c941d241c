// Package config loads xctag settings from an optional YAML file and
// provides the defaults used when no file is present.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the scan root when --config is not given.
const DefaultFileName = ".xctag.yaml"

// Config is the full xctag configuration.
type Config struct {
	// Tags names the Finder tags written per classification.
	Tags TagNames `yaml:"tags"`

	// Scan configures test file discovery.
	Scan ScanConfig `yaml:"scan"`
}

// TagNames maps classifications to Finder tag names.
type TagNames struct {
	Passed  string `yaml:"passed"`
	Failed  string `yaml:"failed"`
	Unknown string `yaml:"unknown"`
}

// ScanConfig configures the Swift source scanner.
type ScanConfig struct {
	// Exclude lists root-relative glob patterns to skip.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Tags: TagNames{
			Passed:  "TestPassed",
			Failed:  "TestFailed",
			Unknown: "TestUnknown",
		},
	}
}

// Load reads and validates a config file. Missing fields keep their
// defaults; unknown keys are rejected so typos surface instead of
// silently doing nothing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the
// defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Tags.Passed == "" || c.Tags.Failed == "" || c.Tags.Unknown == "" {
		return fmt.Errorf("tag names must be non-empty")
	}
	return nil
}
