// Package storage provides durable key-value backends for resume snapshots.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Storage is a durable key-value store. Read reports whether the key was present.
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}

// Supported backend kinds
const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Kinds lists the supported backends.
var Kinds = []string{KindMemory, KindFile, KindSQLite, KindPostgres}

// Options selects and configures a backend.
type Options struct {
	Kind        string
	DataDir     string
	DatabaseURL string
}

// Open creates the backend described by opts.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindMemory:
		return NewMemory(), nil
	case KindFile:
		return NewFile(opts.DataDir)
	case KindSQLite:
		return NewSQLite(opts.DataDir)
	case KindPostgres:
		if opts.DatabaseURL == "" {
			return nil, &Error{Op: "open", Message: "database_url is required for postgres storage"}
		}
		return NewPostgres(ctx, opts.DatabaseURL)
	}
	return nil, &Error{Op: "open", Message: fmt.Sprintf("unknown storage kind %q", opts.Kind)}
}
