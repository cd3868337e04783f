package storage

import (
	"context"

	"github.com/jonathan/resume-builder/internal/db"
)

// Postgres stores snapshots in the resume_snapshots table.
type Postgres struct {
	db *db.DB
}

// NewPostgres connects to databaseURL and makes sure the snapshot table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, &Error{Op: "open", Message: "connecting to postgres", Cause: err}
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, &Error{Op: "open", Message: "preparing schema", Cause: err}
	}
	return &Postgres{db: database}, nil
}

// Read implements Storage.
func (p *Postgres) Read(ctx context.Context, key string) ([]byte, bool, error) {
	snap, err := p.db.GetSnapshot(ctx, key)
	if err != nil {
		return nil, false, &Error{Op: "read", Key: key, Message: "querying snapshot", Cause: err}
	}
	if snap == nil {
		return nil, false, nil
	}
	return snap.Content, true, nil
}

// Write implements Storage.
func (p *Postgres) Write(ctx context.Context, key string, data []byte) error {
	if err := p.db.SaveSnapshot(ctx, key, data); err != nil {
		return &Error{Op: "write", Key: key, Message: "saving snapshot", Cause: err}
	}
	return nil
}

// Close implements Storage.
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
