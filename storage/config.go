package storage

import "fmt"

// Default configuration values.
const (
	DefaultBasePath    = "."
	DefaultMaxFileSize = int64(100 * 1024 * 1024) // 100 MB
)

// Config holds binary store configuration.
type Config struct {
	// BasePath is the directory file references are resolved against.
	BasePath string `yaml:"base_path" mapstructure:"base_path" json:"base_path"`

	// MaxFileSize is the largest binary accepted, in bytes.
	MaxFileSize int64 `yaml:"max_file_size" mapstructure:"max_file_size" json:"max_file_size"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("storage: base_path is required")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("storage: max_file_size must be positive")
	}
	return nil
}
