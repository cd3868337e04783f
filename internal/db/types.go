package db

import "time"

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS resume_snapshots (
	key        TEXT PRIMARY KEY,
	content    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Snapshot represents a stored resume snapshot record
type Snapshot struct {
	Key       string    `json:"key"`
	Content   []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotSummary is a lightweight view of a snapshot for listing
type SnapshotSummary struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
