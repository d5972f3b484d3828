package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	// DriverCGO is mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPure is modernc.org/sqlite, which builds without cgo.
	DriverPure = "sqlite"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
	path string

	// mu serializes read-modify-write updates so concurrent commands
	// cannot lose each other's writes.
	mu sync.Mutex
}

// Open opens (creating if absent) the group store at path and brings its
// schema up to date. An empty driver means DriverCGO.
func Open(ctx context.Context, path, driver string) (*DB, error) {
	if driver == "" {
		driver = DriverCGO
	}
	dsn, err := dataSourceName(path, driver)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// SQLite allows a single writer; one connection keeps every
	// transaction strictly ordered.
	conn.SetMaxOpenConns(1)

	db := &DB{DB: conn, path: path}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upgrade schema: %w", err)
	}
	return db, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

func dataSourceName(path, driver string) (string, error) {
	switch driver {
	case DriverCGO:
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path), nil
	case DriverPure:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_txlock=immediate", path), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
