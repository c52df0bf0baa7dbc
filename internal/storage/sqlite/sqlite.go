// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/ibraservices/ibrapro/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// companyKey is the fixed key of the singleton company record.
const companyKey = "config"

// SQLiteStore implements storage.Store using SQLite.
//
// Every write commits before the method returns; SQLite runs with
// synchronous=FULL so a committed write survives a crash immediately
// after.
type SQLiteStore struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx, so the row-level
// insert helpers can serve single writes and the snapshot transaction
// alike.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and applies the schema automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// foreign_keys drives the invoice -> items ownership cascade;
	// synchronous=FULL makes commits durable against power loss.
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = FULL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	// Declare the schema
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// mapKeyError rewrites primary-key violations to storage.ErrDuplicateKey
// so callers can match with errors.Is regardless of backend.
func mapKeyError(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT,
			sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY,
			sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %v", storage.ErrDuplicateKey, err)
		}
	}
	return err
}
