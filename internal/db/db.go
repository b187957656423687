package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	// Database drivers
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported values for Config.Driver
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned for a driver name other than postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Config represents database configuration
type Config struct {
	Driver string
	URL    string
}

// Database represents the database connection
type Database struct {
	DB     *sqlx.DB
	Driver string
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Database, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	conn, err := sqlx.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer; serialize access through one connection.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: conn, Driver: cfg.Driver}, nil
}

// Ping checks the connection is still alive.
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	return d.DB.Close()
}
