package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all host configuration
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig selects the item catalogue
type CatalogConfig struct {
	Path            string `yaml:"path"`              // empty uses the built-in sample catalogue
	DefaultMaxStack int    `yaml:"default_max_stack"` // for entries without max_stack
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Catalog.DefaultMaxStack < 0 {
		return fmt.Errorf("catalog.default_max_stack must not be negative: %d", c.Catalog.DefaultMaxStack)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Catalog.DefaultMaxStack == 0 {
		c.Catalog.DefaultMaxStack = 64
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
