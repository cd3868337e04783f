// Package store keeps the canonical resume document and mirrors it to durable storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultKey is the storage key the snapshot is written under
const DefaultKey = "resumeBuilderData"

// LoadStatus describes the outcome of Load
type LoadStatus string

// Load outcomes
const (
	LoadRestored   LoadStatus = "restored"
	LoadMissing    LoadStatus = "missing"
	LoadReadFailed LoadStatus = "read_failed"
	LoadMalformed  LoadStatus = "malformed"
	LoadInvalid    LoadStatus = "invalid"
)

// LoadResult reports what Load did. Only LoadRestored replaces the document.
type LoadResult struct {
	Status LoadStatus
	Err    error
}

// Restored reports whether the document was replaced by the snapshot.
func (r LoadResult) Restored() bool {
	return r.Status == LoadRestored
}

// DataStore owns the canonical document. It is not safe for concurrent use.
type DataStore struct {
	backend storage.Storage
	key     string
	doc     types.ResumeDocument
}

// New creates a store with an empty document. An empty key selects DefaultKey.
func New(backend storage.Storage, key string) *DataStore {
	if key == "" {
		key = DefaultKey
	}
	return &DataStore{
		backend: backend,
		key:     key,
		doc:     types.NewResumeDocument(),
	}
}

// Key returns the storage key used for the snapshot.
func (s *DataStore) Key() string {
	return s.key
}

// Get returns a deep copy of the canonical document.
func (s *DataStore) Get() types.ResumeDocument {
	return s.doc.Clone()
}

// Set replaces the canonical document with a copy of doc.
func (s *DataStore) Set(doc types.ResumeDocument) {
	doc = doc.Clone()
	doc.Normalize()
	s.doc = doc
}

// Persist writes the whole document under the store key. Persisting an
// unchanged document writes the same bytes again.
func (s *DataStore) Persist(ctx context.Context) error {
	data, err := Encode(s.doc)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot and, when it is present and valid, replaces the
// document with it. Any failure leaves the current document untouched.
func (s *DataStore) Load(ctx context.Context) LoadResult {
	data, ok, err := s.backend.Read(ctx, s.key)
	if err != nil {
		log.Printf("[store] failed to read snapshot %q: %v", s.key, err)
		return LoadResult{Status: LoadReadFailed, Err: err}
	}
	if !ok {
		return LoadResult{Status: LoadMissing}
	}

	doc, status, err := Decode(data)
	if err != nil {
		log.Printf("[store] ignoring %s snapshot %q: %v", status, s.key, err)
		return LoadResult{Status: status, Err: err}
	}

	s.doc = doc
	return LoadResult{Status: LoadRestored}
}

// Encode serialises a document to its snapshot form.
func Encode(doc types.ResumeDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates snapshot bytes. On failure the returned status
// tells malformed JSON apart from well-formed but invalid content.
func Decode(data []byte) (types.ResumeDocument, LoadStatus, error) {
	if !json.Valid(data) {
		return types.ResumeDocument{}, LoadMalformed, fmt.Errorf("snapshot is not valid JSON")
	}
	if err := schemas.ValidateSnapshot(data); err != nil {
		return types.ResumeDocument{}, LoadInvalid, err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, LoadInvalid, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return types.ResumeDocument{}, LoadInvalid, err
	}
	return doc, LoadRestored, nil
}
