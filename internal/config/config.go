// Package config provides configuration management for the benchmark tracker.
package config

import (
	"fmt"
	"time"
)

const redacted = "[REDACTED]"

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Summaries SummariesConfig `mapstructure:"summaries"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Client    ClientConfig    `mapstructure:"client"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP API listener configuration
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MinConnections int    `mapstructure:"min_connections" validate:"gte=0"`
}

// AuthConfig holds the argon2id PHC hash write requests are checked against
type AuthConfig struct {
	TokenHash string `mapstructure:"token_hash" validate:"required,startswith=$argon2id$"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// SummariesConfig controls scheduled summary regeneration and the read cache.
// CacheTTLSeconds bounds how long a server keeps serving summaries after
// another process regenerates them.
type SummariesConfig struct {
	Schedule        string `mapstructure:"schedule" validate:"cron"`
	Years           []int  `mapstructure:"years" validate:"omitempty,dive,min=2015"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// RateLimitConfig limits write requests; zero disables limiting
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
}

// ClientConfig configures the CLI client talking to a running server
type ClientConfig struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts  int    `mapstructure:"retry_attempts" validate:"gte=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *DatabaseConfig) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

// Address returns the host:port the API server listens on
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReadTimeout returns the server read timeout
func (c *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout
func (c *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may take
func (c *ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// CacheTTL returns the summary cache expiry
func (c *SummariesConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Timeout returns the per-request client timeout
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// String renders the configuration with secrets redacted
func (c Config) String() string {
	if c.Database.Password != "" {
		c.Database.Password = redacted
	}
	if c.Auth.TokenHash != "" {
		c.Auth.TokenHash = redacted
	}
	if c.Client.Token != "" {
		c.Client.Token = redacted
	}
	type plain Config
	return fmt.Sprintf("%+v", plain(c))
}
