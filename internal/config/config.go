package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Batch    BatchConfig    `mapstructure:"batch"    validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains token validation settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// BatchConfig controls how batch endpoints fan out per-item work.
type BatchConfig struct {
	// Concurrency is the maximum number of item operations in flight per batch.
	Concurrency int `mapstructure:"concurrency" validate:"required,min=1,max=64"`

	// MaxItems caps the number of ids accepted by one batch request.
	MaxItems int `mapstructure:"max_items" validate:"required,min=1,max=1000"`

	// ItemTimeoutSeconds bounds each item operation. Zero disables the timeout.
	ItemTimeoutSeconds int `mapstructure:"item_timeout_seconds" validate:"gte=0"`
}

// ItemTimeout returns the per-item timeout as a duration.
func (c BatchConfig) ItemTimeout() time.Duration {
	return time.Duration(c.ItemTimeoutSeconds) * time.Second
}
