package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/store"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Archive backends.
const (
	ArchiveBackendDisabled = "disabled"
	ArchiveBackendFS       = "fs"
	ArchiveBackendS3       = "s3"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app" toml:"app"`
	SQLite  SQLiteConfig      `yaml:"sqlite" toml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth" toml:"auth"`
	Archive ArchiveConfig     `yaml:"archive" toml:"archive"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.SQLite.Validate(); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Archive.Validate(); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level" toml:"log_level"`
	LogFormat string     `yaml:"log_format" toml:"log_format"`
	HTTP      HTTPConfig `yaml:"http" toml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatJSON
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatJSON, LogFormatText)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port" toml:"port"`
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
//
// Driver selects the database/sql driver:
//   - "sqlite3" (default): mattn/go-sqlite3, requires cgo.
//   - "sqlite": modernc.org/sqlite, pure Go.
type SQLiteConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Driver string `yaml:"driver" toml:"driver"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = store.DriverCGO
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Driver, validation.In(store.DriverCGO, store.DriverPureGo)),
	)
}

// AuthConfig holds session and request-protection settings.
type AuthConfig struct {
	// Secret signs session cookies. At least 32 characters.
	Secret       string        `yaml:"secret" toml:"secret"`
	CookieName   string        `yaml:"cookie_name" toml:"cookie_name"`
	SecureCookie bool          `yaml:"secure_cookie" toml:"secure_cookie"`
	SessionTTL   time.Duration `yaml:"session_ttl" toml:"session_ttl"`
	CSRF         bool          `yaml:"csrf" toml:"csrf"`
	// LoginRate is the sustained register/login rate per client IP, in
	// requests per second. Zero disables throttling.
	LoginRate  float64 `yaml:"login_rate" toml:"login_rate"`
	LoginBurst int     `yaml:"login_burst" toml:"login_burst"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.CookieName == "" {
		c.CookieName = "boardhub_session"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = auth.DefaultSessionTTL
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Secret, validation.Required, validation.RuneLength(32, 0)),
		validation.Field(&c.SessionTTL, validation.Min(time.Minute)),
		validation.Field(&c.LoginRate, validation.Min(0.0)),
		validation.Field(&c.LoginBurst, validation.When(c.LoginRate > 0, validation.Required, validation.Min(1))),
	)
}

// ArchiveConfig selects where board snapshots are kept.
type ArchiveConfig struct {
	Backend string   `yaml:"backend" toml:"backend"`
	Path    string   `yaml:"path" toml:"path"`
	S3      S3Config `yaml:"s3" toml:"s3"`
}

// Validate validates the archive configuration.
func (c *ArchiveConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = ArchiveBackendDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.In(ArchiveBackendDisabled, ArchiveBackendFS, ArchiveBackendS3)),
		validation.Field(&c.Path, validation.When(c.Backend == ArchiveBackendFS, validation.Required)),
	); err != nil {
		return err
	}
	if c.Backend == ArchiveBackendS3 {
		return c.S3.Validate()
	}
	return nil
}

// S3Config holds S3-compatible bucket settings.
type S3Config struct {
	Endpoint     string `yaml:"endpoint" toml:"endpoint"`
	Region       string `yaml:"region" toml:"region"`
	Bucket       string `yaml:"bucket" toml:"bucket"`
	AccessKey    string `yaml:"access_key" toml:"access_key"`
	SecretKey    string `yaml:"secret_key" toml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style" toml:"use_path_style"`
}

// Validate validates the S3 configuration.
func (c *S3Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, is.URL),
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
	); err != nil {
		return err
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("access_key and secret_key must be set together")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatJSON,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path:   "./boardhub.db",
			Driver: store.DriverCGO,
		},
		Auth: AuthConfig{
			CookieName: "boardhub_session",
			SessionTTL: auth.DefaultSessionTTL,
			CSRF:       true,
			LoginRate:  0.2,
			LoginBurst: 10,
		},
		Archive: ArchiveConfig{
			Backend: ArchiveBackendDisabled,
			Path:    "./archive",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
	}
}
