// Package main implements the entry point for the kanban API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
)

// cliOptions holds the parsed command line flags.
type cliOptions struct {
	configFile     string
	envFile        string
	migrate        string
	skipMigrations bool
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.envFile, "env-file", "", "path to a .env file (default .env when present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		fmt.Sprintf("run a migration command and exit %v", postgres.MigrationCommands))
	fs.BoolVar(&opts.skipMigrations, "skip-migrations", false, "do not apply pending migrations at startup")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the application from flags and configuration and blocks until
// the server stops.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: opts.configFile,
		EnvFile:    opts.envFile,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDB(db, log)
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	if !opts.skipMigrations {
		if err := postgres.Migrate(ctx, db, "up", log); err != nil {
			closeDB(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
