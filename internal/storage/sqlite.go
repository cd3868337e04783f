package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteFile is the database file name inside the data directory
const sqliteFile = "resume_builder.db"

// SQLite stores snapshots in a single-table SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) the database in dir.
func NewSQLite(dir string) (*SQLite, error) {
	if dir == "" {
		return nil, &Error{Op: "open", Message: "data_dir is required for sqlite storage"}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &Error{Op: "open", Message: "creating data directory", Cause: err}
	}

	path := filepath.Join(dir, sqliteFile)
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &Error{Op: "open", Message: "opening database", Cause: err}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			content BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, &Error{Op: "open", Message: "creating snapshots table", Cause: err}
	}

	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Read implements Storage.
func (s *SQLite) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, `SELECT content FROM snapshots WHERE key = ?`, key).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, &Error{Op: "read", Key: key, Message: "querying snapshot", Cause: err}
	}
	return content, true, nil
}

// Write implements Storage.
func (s *SQLite) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, content, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, updated_at = CURRENT_TIMESTAMP
	`, key, data)
	if err != nil {
		return &Error{Op: "write", Key: key, Message: "upserting snapshot", Cause: err}
	}
	return nil
}

// Close implements Storage.
func (s *SQLite) Close() error {
	return s.db.Close()
}
