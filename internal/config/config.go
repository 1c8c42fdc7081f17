package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the taskboard client and reference store
type Config struct {
	Remote      RemoteConfig      `yaml:"remote"`
	Engine      EngineConfig      `yaml:"engine"`
	Store       StoreConfig       `yaml:"store"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// RemoteConfig describes the remote task collection the gateway talks to
type RemoteConfig struct {
	BaseURL    string        `yaml:"base_url" env:"TASKBOARD_REMOTE_URL"`
	Collection string        `yaml:"collection" env:"TASKBOARD_REMOTE_COLLECTION"`
	Timeout    time.Duration `yaml:"timeout" env:"TASKBOARD_REMOTE_TIMEOUT"`
}

// EngineConfig holds task state engine tuning
type EngineConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay" env:"TASKBOARD_SETTLE_DELAY"`
	Locale      string        `yaml:"locale" env:"TASKBOARD_LOCALE"`
}

// StoreConfig holds settings for the reference remote store (taskboard serve)
type StoreConfig struct {
	Addr           string        `yaml:"addr" env:"TASKBOARD_STORE_ADDR"`
	Dir            string        `yaml:"dir" env:"TASKBOARD_STORE_DIR"`
	Filename       string        `yaml:"filename" env:"TASKBOARD_STORE_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TASKBOARD_STORE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TASKBOARD_STORE_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TASKBOARD_STORE_DIR_PERMISSIONS"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"TASKBOARD_STORE_ALLOWED_ORIGINS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength int `yaml:"title_max_length" env:"TASKBOARD_VALIDATION_TITLE_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" env:"TASKBOARD_DISPLAY_DATE_FORMAT"`
	ShowIcons  bool   `yaml:"show_icons" env:"TASKBOARD_DISPLAY_ICONS"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TASKBOARD_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TASKBOARD_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Remote: RemoteConfig{
			BaseURL:    "http://localhost:8080",
			Collection: "tasks",
			Timeout:    10 * time.Second,
		},
		Engine: EngineConfig{
			SettleDelay: 300 * time.Millisecond,
			Locale:      "en",
		},
		Store: StoreConfig{
			Addr:           ":8080",
			Dir:            filepath.Join(homeDir, ".taskboard"),
			Filename:       "tasks.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
			AllowedOrigins: []string{"*"},
		},
		Validation: ValidationConfig{
			TitleMaxLength: 255,
		},
		Display: DisplayConfig{
			DateFormat: "Jan 2, 2006",
			ShowIcons:  true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the store database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// CollectionURL returns the absolute URL of the remote task collection
func (c *Config) CollectionURL() string {
	return strings.TrimRight(c.Remote.BaseURL, "/") + "/" + strings.Trim(c.Remote.Collection, "/")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Remote configuration
	if url := os.Getenv("TASKBOARD_REMOTE_URL"); url != "" {
		c.Remote.BaseURL = url
	}
	if collection := os.Getenv("TASKBOARD_REMOTE_COLLECTION"); collection != "" {
		c.Remote.Collection = collection
	}
	if timeout := os.Getenv("TASKBOARD_REMOTE_TIMEOUT"); timeout != "" {
		c.Remote.Timeout = ParseDurationWithFallback(timeout, c.Remote.Timeout)
	}

	// Engine configuration
	if delay := os.Getenv("TASKBOARD_SETTLE_DELAY"); delay != "" {
		c.Engine.SettleDelay = ParseDurationWithFallback(delay, c.Engine.SettleDelay)
	}
	if locale := os.Getenv("TASKBOARD_LOCALE"); locale != "" {
		c.Engine.Locale = locale
	}

	// Store configuration
	if addr := os.Getenv("TASKBOARD_STORE_ADDR"); addr != "" {
		c.Store.Addr = addr
	}
	if dir := os.Getenv("TASKBOARD_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if filename := os.Getenv("TASKBOARD_STORE_FILENAME"); filename != "" {
		c.Store.Filename = filename
	}
	if timeout := os.Getenv("TASKBOARD_STORE_QUERY_TIMEOUT"); timeout != "" {
		c.Store.QueryTimeout = ParseDurationWithFallback(timeout, c.Store.QueryTimeout)
	}
	if timeout := os.Getenv("TASKBOARD_STORE_WRITE_TIMEOUT"); timeout != "" {
		c.Store.WriteTimeout = ParseDurationWithFallback(timeout, c.Store.WriteTimeout)
	}
	if perms := os.Getenv("TASKBOARD_STORE_DIR_PERMISSIONS"); perms != "" {
		c.Store.DirPermissions = ParseUint32WithFallback(perms, 8, c.Store.DirPermissions)
	}
	if origins := os.Getenv("TASKBOARD_STORE_ALLOWED_ORIGINS"); origins != "" {
		c.Store.AllowedOrigins = splitList(origins)
	}

	// Validation configuration
	if maxLen := os.Getenv("TASKBOARD_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}

	// Display configuration
	if format := os.Getenv("TASKBOARD_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if icons := os.Getenv("TASKBOARD_DISPLAY_ICONS"); icons != "" {
		c.Display.ShowIcons = ParseBoolWithFallback(icons, c.Display.ShowIcons)
	}

	// Application configuration
	if timeout := os.Getenv("TASKBOARD_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKBOARD_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return &ConfigError{Field: "remote.base_url", Message: "remote base URL cannot be empty"}
	}
	if strings.Trim(c.Remote.Collection, "/") == "" {
		return &ConfigError{Field: "remote.collection", Message: "remote collection cannot be empty"}
	}
	if c.Remote.Timeout <= 0 {
		return &ConfigError{Field: "remote.timeout", Message: "remote timeout must be positive"}
	}

	if c.Engine.SettleDelay < 0 {
		return &ConfigError{Field: "engine.settle_delay", Message: "settle delay cannot be negative"}
	}
	if c.Engine.Locale == "" {
		return &ConfigError{Field: "engine.locale", Message: "locale cannot be empty"}
	}

	if c.Store.Dir == "" {
		return &ConfigError{Field: "store.dir", Message: "store directory cannot be empty"}
	}
	if c.Store.Filename == "" {
		return &ConfigError{Field: "store.filename", Message: "store filename cannot be empty"}
	}
	if c.Store.QueryTimeout <= 0 {
		return &ConfigError{Field: "store.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Store.WriteTimeout <= 0 {
		return &ConfigError{Field: "store.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
