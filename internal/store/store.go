package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// Store wraps the SQLite database holding image records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite database and bootstraps the schema. A database
// that cannot be opened or migrated is moved aside and recreated empty:
// corrupt storage is treated as "no data yet", never as a fatal error.
func Open(path string) (*Store, error) {
	db, err := openAndMigrate(path)
	if err != nil {
		recovered, recoverErr := recoverCorrupt(path, err)
		if recoverErr != nil {
			return nil, recoverErr
		}
		db = recovered
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func openAndMigrate(path string) (*sql.DB, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// recoverCorrupt renames an unreadable database file and retries with a
// fresh one. Only reached after openAndMigrate failed on an existing file.
func recoverCorrupt(path string, cause error) (*sql.DB, error) {
	if path == "" {
		return nil, cause
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// Nothing on disk to move aside; the failure was not corruption.
		return nil, cause
	}

	backup := fmt.Sprintf("%s.corrupt.%d", path, time.Now().Unix())
	if err := os.Rename(path, backup); err != nil {
		return nil, fmt.Errorf("move corrupt db aside: %w (open error: %v)", err, cause)
	}
	slog.Warn("record store unreadable, starting empty", "path", path, "backup", backup, "error", cause)

	return openAndMigrate(path)
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Tune connection pool for local usage.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}
