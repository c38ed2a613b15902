// Package main is the entry point of the docextract API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/docextract/internal/config"
	"github.com/phrazzld/docextract/internal/platform/logger"
	"github.com/phrazzld/docextract/internal/platform/postgres"
)

// options are the command-line flags.
type options struct {
	migrate string
}

var errInvalidMigrateCommand = errors.New("invalid migrate command")

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a database migration command (up, down, status, version) and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.migrate {
	case "", postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion:
		return opts, nil
	default:
		return options{}, fmt.Errorf("%w: %q", errInvalidMigrateCommand, opts.migrate)
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"batch_concurrency", cfg.Batch.Concurrency,
		"batch_max_items", cfg.Batch.MaxItems)

	db, err := postgres.OpenDB(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			l.Error("failed to close database", "error", cerr)
		}
	}()

	if opts.migrate != "" {
		return postgres.Migrate(ctx, db, opts.migrate, l)
	}

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.startHTTPServer(ctx)
}
