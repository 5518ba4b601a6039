package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationCommands lists the commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "status", "version", "reset"}

// slogGooseLogger adapts the goose logger interface to slog.
// Fatalf does not exit; errors are returned to the caller instead.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("command", command))

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	const dir = "migrations"
	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, MigrationCommands)
	}
	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully")
	return nil
}

// ListMigrations returns the embedded migrations in version order.
func ListMigrations() (goose.Migrations, error) {
	goose.SetBaseFS(migrationFS)
	return goose.CollectMigrations("migrations", 0, goose.MaxVersion)
}
