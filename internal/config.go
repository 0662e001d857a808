package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultSchedulerURL is used when no scheduler URL is configured.
const DefaultSchedulerURL = "https://calendly.com/jared-jaredmclinden/home-evaluation"

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Admin     AdminConfig       `yaml:"admin"`
	Scheduler SchedulerConfig   `yaml:"scheduler"`
	Site      SiteConfig        `yaml:"site"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Admin.Validate(); err != nil {
		return err
	}
	return c.Site.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AdminConfig holds the blog editor credential.
//
// PasswordHash is a bcrypt hash, never the plaintext password. Generate
// one with the hash-password subcommand and inject it via the config
// file's ${ADMIN_PASSWORD_HASH} expansion.
type AdminConfig struct {
	PasswordHash string `yaml:"password_hash"`
}

// Validate validates the admin configuration.
func (c *AdminConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.PasswordHash, validation.Required),
	); err != nil {
		return err
	}
	if !strings.HasPrefix(c.PasswordHash, "$2") {
		return fmt.Errorf("admin: password_hash is not a bcrypt hash")
	}
	return nil
}

// SchedulerConfig holds the external scheduling service configuration.
type SchedulerConfig struct {
	URL string `yaml:"url"`
}

// EmbedBase returns the scheduler base URL with surrounding whitespace
// and trailing slashes stripped, falling back to the default link when
// unset.
func (c *SchedulerConfig) EmbedBase() string {
	u := strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if u == "" {
		return DefaultSchedulerURL
	}
	return u
}

// SiteConfig holds presentation-layer configuration.
//
// TemplatesDir, when set, overrides the embedded templates with files
// read from disk. LiveReload re-parses templates on change and is only
// meaningful with a TemplatesDir.
type SiteConfig struct {
	TemplatesDir string `yaml:"templates_dir"`
	LiveReload   bool   `yaml:"live_reload"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	if c.LiveReload && c.TemplatesDir == "" {
		return fmt.Errorf("site: live_reload requires templates_dir")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./instance/site.db",
		},
	}
}
