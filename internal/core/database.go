package core

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const queryTimeout = 30 * time.Second

// Database wraps sql.DB with driver awareness and timeout helpers
type Database struct {
	*sql.DB
	driver string
	logger *Logger
}

// OpenDatabase opens the configured durable backend and verifies the connection
func OpenDatabase(cfg DatabaseConfig, logger *Logger) (*Database, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", cfg.Path)
	case DriverPostgres:
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A failed ping is not fatal: connections are retried per query, and
	// the tiered article store degrades to its fallback on query errors.
	wrapped := &Database{DB: db, driver: cfg.Driver, logger: logger}
	if err := wrapped.PingWithTimeout(5 * time.Second); err != nil {
		logger.Warn("Database unreachable at startup", "driver", cfg.Driver, "error", err)
		return wrapped, nil
	}

	logger.Info("Connected to database", "driver", cfg.Driver)
	return wrapped, nil
}

// NewDatabase wraps an existing connection (used by tests)
func NewDatabase(db *sql.DB, driver string, logger *Logger) *Database {
	return &Database{DB: db, driver: driver, logger: logger}
}

// Driver returns the configured driver name
func (db *Database) Driver() string {
	return db.driver
}

// Rebind rewrites ? placeholders into the bindvar style the driver expects.
// Queries throughout the codebase are written with ?; postgres needs $N.
func (db *Database) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Transaction executes a function within a database transaction
func (db *Database) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

// PingWithTimeout pings the database with a timeout
func (db *Database) PingWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return db.PingContext(ctx)
}

// QueryWithTimeout executes a query with a timeout
func (db *Database) QueryWithTimeout(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return db.QueryContext(queryCtx, db.Rebind(query), args...)
}

// QueryRowWithTimeout executes a single-row query with a timeout and hands
// the row to scan before the query context is released. QueryRowContext
// defers execution until Scan, so cancelling earlier would abort the query.
func (db *Database) QueryRowWithTimeout(ctx context.Context, query string, scan func(*sql.Row) error, args ...interface{}) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scan(db.QueryRowContext(queryCtx, db.Rebind(query), args...))
}

// ExecWithTimeout executes a command with a timeout
func (db *Database) ExecWithTimeout(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return db.ExecContext(queryCtx, db.Rebind(query), args...)
}

// Close closes the database connection
func (db *Database) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}
