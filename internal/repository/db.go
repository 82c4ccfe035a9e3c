package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ithinkitschris/expense-assistant/internal/common"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

// DB wraps the SQL handle with the driver name so queries written with "?"
// placeholders can be rebound for Postgres.
type DB struct {
	sql    *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to the row store. A postgres:// DSN opens Postgres through
// the pgx stdlib driver; anything else is treated as a SQLite file path.
// The schema is created on first open.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver := driverSQLite
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = driverPostgres
	}

	logger.Info("db.open", "driver", driver)
	handle, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 3 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := handle.PingContext(pingCtx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{sql: handle, driver: driver, logger: logger}
	if err := db.migrate(ctx); err != nil {
		_ = handle.Close()
		return nil, err
	}
	logger.Info("db.ready")
	return db, nil
}

func (db *DB) Close() error {
	db.logger.Info("db.close")
	return db.sql.Close()
}

func (db *DB) migrate(ctx context.Context) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.driver == driverPostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS expenses (
			id %s,
			amount REAL NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS pantry_items (
			id %s,
			name TEXT NOT NULL,
			quantity REAL NOT NULL DEFAULT 1,
			unit TEXT NOT NULL DEFAULT 'pieces',
			created_at TEXT NOT NULL,
			is_consumed BOOLEAN NOT NULL DEFAULT FALSE,
			grocery_type TEXT NOT NULL DEFAULT 'other'
		)`, idColumn),
	}
	for _, stmt := range statements {
		if _, err := db.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// rebind converts "?" placeholders to "$N" when talking to Postgres.
func (db *DB) rebind(query string) string {
	if db.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.sql.ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.sql.QueryContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.sql.QueryRowContext(ctx, db.rebind(query), args...)
}
