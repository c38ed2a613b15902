package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DOCX_SERVER_PORT.
const EnvPrefix = "DOCX"

// Default values applied before reading the config file and environment.
const (
	DefaultPort                 = 8080
	DefaultLogLevel             = "info"
	DefaultTokenLifetimeMinutes = 60
	DefaultBatchConcurrency     = 5
	DefaultBatchMaxItems        = 100
	DefaultItemTimeoutSeconds   = 30
)

// keys lists every setting so that environment variables are picked up even
// when no config file defines them.
var keys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"batch.concurrency",
	"batch.max_items",
	"batch.item_timeout_seconds",
}

// Load reads configuration from an optional config.yaml in the working
// directory and from DOCX_* environment variables. Environment variables take
// precedence over values from the file. The result is validated before it is
// returned.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for config.yaml in dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetimeMinutes)
	v.SetDefault("batch.concurrency", DefaultBatchConcurrency)
	v.SetDefault("batch.max_items", DefaultBatchMaxItems)
	v.SetDefault("batch.item_timeout_seconds", DefaultItemTimeoutSeconds)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
