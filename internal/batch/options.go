package batch

import (
	"io"
	"log/slog"
	"time"
)

type config struct {
	timeout time.Duration
	logger  *slog.Logger
}

func defaultConfig() *config {
	return &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a single Execute call.
type Option func(*config)

// WithTimeout bounds each operation with its own deadline. Zero or negative
// durations disable the per-operation timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithLogger sets the logger used to report item failures.
// A nil logger leaves the default (discard) in place.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
