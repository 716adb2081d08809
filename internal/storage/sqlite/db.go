// ABOUTME: SQLite database handle for the analytics store
// ABOUTME: Uses modernc.org/sqlite so no cgo is required
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// Connection pragmas, applied through the driver's DSN syntax. WAL keeps
// readers from blocking the visit-log writer; foreign keys back the schema's
// references.
const (
	fileDSNOptions   = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	memoryDSNOptions = "?_pragma=foreign_keys(ON)"
)

// DB is the shared handle the visit and contact stores operate on.
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDBPath returns the analytics database location under XDG data home.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "portfolio-assistant", "analytics.db")
}

// Open opens the analytics database at path, creating the file, its parent
// directory, and the schema as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return open(path, path+fileDSNOptions)
}

// OpenInMemory creates a throwaway in-memory database, used by tests.
func OpenInMemory() (*DB, error) {
	return open(":memory:", ":memory:"+memoryDSNOptions)
}

func open(path, dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sql.Open is lazy; ping so a bad path fails here rather than on
	// the first insert.
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec(Schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path, or ":memory:".
func (db *DB) Path() string {
	return db.path
}

// Exec runs a statement that returns no rows.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query runs a statement that returns rows.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow runs a statement expected to return at most one row.
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
