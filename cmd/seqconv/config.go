package main

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	engines      = []string{"risor", "expr"}
	elementTypes = []string{"int", "float", "string", "bool", "any"}
	inlineSizes  = []int{1, 2, 4, 8, 16, 32, 64}
)

// Config controls a single conversion run. It can be loaded from YAML and
// overridden by flags.
type Config struct {
	Engine     string         `yaml:"engine"`
	Expression string         `yaml:"expression"`
	Type       string         `yaml:"type"`
	Inline     int            `yaml:"inline"`
	MaxReserve int            `yaml:"max_reserve,omitempty"`
	Env        map[string]any `yaml:"env,omitempty"`
	Roundtrip  bool           `yaml:"roundtrip,omitempty"`
	JSON       bool           `yaml:"json,omitempty"`
	Verbose    bool           `yaml:"verbose,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Engine: "risor",
		Type:   "any",
		Inline: 8,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return config, nil
}

// Validate checks the config for unsupported settings.
func (c *Config) Validate() error {
	if c.Expression == "" {
		return fmt.Errorf("expression required")
	}
	if !slices.Contains(engines, c.Engine) {
		return fmt.Errorf("unknown engine %q (want one of %v)", c.Engine, engines)
	}
	if !slices.Contains(elementTypes, c.Type) {
		return fmt.Errorf("unknown element type %q (want one of %v)", c.Type, elementTypes)
	}
	if !slices.Contains(inlineSizes, c.Inline) {
		return fmt.Errorf("unsupported inline capacity %d (want one of %v)", c.Inline, inlineSizes)
	}
	if c.MaxReserve < 0 {
		return fmt.Errorf("max_reserve must not be negative")
	}
	return nil
}
