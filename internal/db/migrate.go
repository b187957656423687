package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/osa911/portfolio/internal/logging"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Migration errors
var (
	ErrSetDialect      = errors.New("failed to set migration dialect")
	ErrApplyMigrations = errors.New("failed to apply migrations")
)

const migrationTable = "schema_migrations"

// Migrate applies every pending migration for the connection's driver.
func Migrate(ctx context.Context, database *Database, logger *logging.Logger) error {
	dialect, dir := "postgres", "migrations/postgres"
	if database.Driver == DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"
	}

	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	goose.SetBaseFS(sub)
	goose.SetLogger(&gooseLoggerAdapter{logger})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, database.DB.DB, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *logging.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...interface{}) {
	g.log.Info(format, args...)
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...interface{}) {
	// goose returns the error as well; do not exit the process here.
	g.log.Error(format, args...)
}
