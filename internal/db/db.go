// Package db provides PostgreSQL database access for resume snapshot storage.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the snapshot table if it does not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, createSnapshotsTable)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the raw snapshot stored under key.
// Returns nil, nil when no snapshot exists.
func (db *DB) GetSnapshot(ctx context.Context, key string) (*Snapshot, error) {
	var snap Snapshot
	err := db.pool.QueryRow(ctx,
		`SELECT key, content, updated_at FROM resume_snapshots WHERE key = $1`,
		key,
	).Scan(&snap.Key, &snap.Content, &snap.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return &snap, nil
}

// SaveSnapshot stores content under key, replacing any previous snapshot
func (db *DB) SaveSnapshot(ctx context.Context, key string, content []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_snapshots (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot stored under key
func (db *DB) DeleteSnapshot(ctx context.Context, key string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resume_snapshots WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("snapshot not found: %s", key)
	}
	return nil
}

// ListSnapshots retrieves recently updated snapshots without their content
func (db *DB) ListSnapshots(ctx context.Context, limit int) ([]SnapshotSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT key, octet_length(content), updated_at
		 FROM resume_snapshots ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []SnapshotSummary
	for rows.Next() {
		var s SnapshotSummary
		if err := rows.Scan(&s.Key, &s.Size, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
