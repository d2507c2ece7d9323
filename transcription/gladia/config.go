package gladia

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.gladia.io"
	DefaultTimeout = 30 * time.Second
)

// Config holds the Gladia API settings.
type Config struct {
	// APIKey is sent in the x-gladia-key header.
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("gladia.api_key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("gladia.base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("gladia.timeout must be positive (got: %s)", c.Timeout)
	}
	return nil
}
