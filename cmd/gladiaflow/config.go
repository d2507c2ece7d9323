package main

import (
	"fmt"
	"time"

	"github.com/kbukum/gladiaflow/config"
	"github.com/kbukum/gladiaflow/observability"
	"github.com/kbukum/gladiaflow/server"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/storage/s3"
	"github.com/kbukum/gladiaflow/transcription"
	"github.com/kbukum/gladiaflow/transcription/gladia"
)

const serviceName = "gladiaflow"

// AppConfig is the full gladiaflow configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	Gladia        gladia.Config        `yaml:"gladia" mapstructure:"gladia"`
	Polling       PollingConfig        `yaml:"polling" mapstructure:"polling"`
	Execution     ExecutionConfig      `yaml:"execution" mapstructure:"execution"`
	Storage       StorageConfig        `yaml:"storage" mapstructure:"storage"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// TranscriptionConfig selects the transcription backend by its registered
// provider name.
type TranscriptionConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// PollingConfig holds the default polling policy for items that leave
// pollingInterval or pollingTimeout unset.
type PollingConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Policy converts the config into a transcription.PollPolicy.
func (c PollingConfig) Policy() transcription.PollPolicy {
	return transcription.PollPolicy{Interval: c.Interval, Timeout: c.Timeout}
}

// StorageConfig locates item binaries: files under base_path and, when a
// bucket is set, objects in S3.
type StorageConfig struct {
	storage.Config `yaml:",inline" mapstructure:",squash"`

	S3 s3.Config `yaml:"s3" mapstructure:"s3"`
}

// ExecutionConfig holds batch-level defaults.
type ExecutionConfig struct {
	ContinueOnFail bool `yaml:"continue_on_fail" mapstructure:"continue_on_fail"`
	// WaitForCompletion applies to items that leave waitForCompletion unset.
	WaitForCompletion *bool `yaml:"wait_for_completion" mapstructure:"wait_for_completion"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Transcription.Provider == "" {
		c.Transcription.Provider = gladia.ProviderName
	}
	c.Gladia.ApplyDefaults()
	if c.Polling.Interval <= 0 {
		c.Polling.Interval = transcription.DefaultPollInterval
	}
	if c.Polling.Timeout <= 0 {
		c.Polling.Timeout = transcription.DefaultPollTimeout
	}
	c.Storage.ApplyDefaults()
	c.Storage.S3.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Gladia.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Storage.S3.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return nil
}

// loadConfig reads config.yml/.env discovery plus environment overrides
// such as GLADIA_API_KEY.
func loadConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	opts = append(opts, config.WithDefaults(map[string]any{
		"name":                   serviceName,
		"transcription.provider": gladia.ProviderName,
		"polling.interval":       transcription.DefaultPollInterval,
		"polling.timeout":        transcription.DefaultPollTimeout,
		"gladia.base_url":        gladia.DefaultBaseURL,
		"gladia.timeout":         gladia.DefaultTimeout,
		"storage.base_path":      storage.DefaultBasePath,
		"storage.s3.region":      s3.DefaultRegion,
	}))

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
