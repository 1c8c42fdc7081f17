package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader.
// The config file location comes from TASKBOARD_CONFIG or defaults to ~/.taskboard/config.yaml.
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
		path:   DefaultConfigPath(),
	}
}

// NewLoaderWithFile creates a loader reading the given YAML file
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// DefaultConfigPath returns the config file location
func DefaultConfigPath() string {
	if path := os.Getenv("TASKBOARD_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".taskboard", "config.yaml")
}

// Load loads configuration using the cascading strategy:
// defaults, then the YAML file if present, then environment variables.
// Command line flags are applied afterwards by LoadWithOverrides or cobra.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges the YAML file into the defaults. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.path == "" {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", l.path, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	RemoteURL        *string
	RemoteCollection *string
	RemoteTimeout    *time.Duration

	SettleDelay *time.Duration
	Locale      *string

	StoreAddr     *string
	StoreDir      *string
	StoreFilename *string

	TitleMaxLength *int

	DateFormat *string
	ShowIcons  *bool

	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.RemoteURL != nil {
		config.Remote.BaseURL = *o.RemoteURL
	}
	if o.RemoteCollection != nil {
		config.Remote.Collection = *o.RemoteCollection
	}
	if o.RemoteTimeout != nil {
		config.Remote.Timeout = *o.RemoteTimeout
	}

	if o.SettleDelay != nil {
		config.Engine.SettleDelay = *o.SettleDelay
	}
	if o.Locale != nil {
		config.Engine.Locale = *o.Locale
	}

	if o.StoreAddr != nil {
		config.Store.Addr = *o.StoreAddr
	}
	if o.StoreDir != nil {
		config.Store.Dir = *o.StoreDir
	}
	if o.StoreFilename != nil {
		config.Store.Filename = *o.StoreFilename
	}

	if o.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *o.TitleMaxLength
	}

	if o.DateFormat != nil {
		config.Display.DateFormat = *o.DateFormat
	}
	if o.ShowIcons != nil {
		config.Display.ShowIcons = *o.ShowIcons
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}
