package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI configuration.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Quotes   QuotesConfig   `json:"quotes" yaml:"quotes"`
}

// DatabaseConfig locates the SQLite journal. An empty path selects the
// in-memory store.
type DatabaseConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// QuotesConfig selects the quote feed used to mark holdings to market.
type QuotesConfig struct {
	Type     string             `json:"type" yaml:"type"` // "static" or "http"
	BaseURL  string             `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TokenEnv string             `json:"token_env,omitempty" yaml:"token_env,omitempty"`
	Prices   map[string]float64 `json:"prices,omitempty" yaml:"prices,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Quotes.Type) {
	case "static":
		for sym, price := range c.Quotes.Prices {
			if price <= 0 {
				return fmt.Errorf("quotes.prices[%s] must be positive", sym)
			}
		}
	case "http":
		if c.Quotes.BaseURL == "" {
			return fmt.Errorf("quotes.base_url required for http feed")
		}
	default:
		return fmt.Errorf("quotes.type must be 'static' or 'http'")
	}
	return nil
}

// Default returns a configuration with sensible defaults: a SQLite journal
// in the working directory and an empty static price table.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./folio.sqlite"},
		Quotes: QuotesConfig{
			Type:   "static",
			Prices: map[string]float64{},
		},
	}
}
