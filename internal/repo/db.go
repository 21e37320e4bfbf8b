// Package repo implements the relational persistence layer for the ledger,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and Postgres, and schema migrations.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/giveaway-ledger/internal/domain"
)

// ErrUnsupportedURL is returned by Open for URLs whose scheme has no driver.
var ErrUnsupportedURL = errors.New("unsupported database url (want postgres://, postgresql://, sqlite:// or file:)")

// Open picks a driver from the URL scheme:
//   - postgres://, postgresql://  → Postgres
//   - sqlite://<path>             → SQLite file at <path>
//   - file:<dsn>                  → SQLite DSN passed through verbatim
//
// The connection is verified with a ping bounded by timeout, so an
// unreachable server fails fast instead of blocking startup. The returned
// handle has OpenTelemetry tracing installed.
func Open(ctx context.Context, url string, timeout time.Duration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		db, err = OpenPostgres(url)
	case strings.HasPrefix(url, "sqlite://"):
		db, err = OpenSQLite(strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "file:"):
		db, err = openSQLiteDSN(url)
	default:
		return nil, ErrUnsupportedURL
	}
	if err != nil {
		return nil, err
	}
	if err := Ping(ctx, db, timeout); err != nil {
		_ = Close(db)
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin()); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// Ping checks the connection, giving up after timeout (when positive).
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}
	return openSQLiteDSN(path)
}

func openSQLiteDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// A single writer owns the ledger; one connection avoids SQLITE_BUSY.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return db, nil
}

// OpenPostgres prepares a Postgres handle from a URL or keyword/value DSN.
// No connection is made until first use; Open pings it under a deadline.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the ledger tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.SnapshotRecord{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
