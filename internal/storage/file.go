package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// File stores each key as a JSON file under a directory. Writes go through a
// temporary file and a rename so a crash never leaves a torn snapshot.
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, &Error{Op: "open", Message: "data_dir is required for file storage"}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &Error{Op: "open", Message: "creating data directory", Cause: err}
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Read implements Storage.
func (f *File) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &Error{Op: "read", Key: key, Message: "reading file", Cause: err}
	}
	return data, true, nil
}

// Write implements Storage.
func (f *File) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".snapshot-*")
	if err != nil {
		return &Error{Op: "write", Key: key, Message: "creating temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &Error{Op: "write", Key: key, Message: "writing temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "write", Key: key, Message: "closing temp file", Cause: err}
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return &Error{Op: "write", Key: key, Message: fmt.Sprintf("renaming into %s", f.Path(key)), Cause: err}
	}
	return nil
}

// Close implements Storage.
func (f *File) Close() error {
	return nil
}
