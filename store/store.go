// Package store is an in-memory record store driving the engine the way the
// persistence layer does in production: Validate -> ApplyComputed before
// every write, and an audit diff between the old and new validated values on
// update. Writes use optimistic concurrency via a per-record version.
package store

import (
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	fieldflow "github.com/arborcrm/fieldflow"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrVersionConflict is returned when an update's expected version does
	// not match the stored version.
	ErrVersionConflict = errors.New("store: version conflict")
)

// Record is one stored value plus its identity and version.
type Record struct {
	ID      string
	Version int
	Data    map[string]any
}

// Store holds records of a single schema. All methods are safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	schema  fieldflow.SchemaNode
	records map[string]Record
	logger  zerolog.Logger
}

// New creates an empty store for the given schema.
func New(schema fieldflow.SchemaNode, logger zerolog.Logger) *Store {
	return &Store{
		schema:  schema,
		records: make(map[string]Record),
		logger:  logger,
	}
}

// Create validates data, applies computed fields, and stores the result under
// a fresh id at version 1. Invalid data returns fieldflow.ValidationErrors
// through the error value.
func (s *Store) Create(data map[string]any) (Record, error) {
	res := fieldflow.ValidateObject(s.schema, data)
	if !res.IsValid {
		return Record{}, res.Errors
	}
	value, err := cloneValue(res.Value)
	if err != nil {
		return Record{}, err
	}
	rec := Record{ID: uuid.NewString(), Version: 1, Data: value}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	s.logger.Debug().Str("id", rec.ID).Msg("record created")
	return rec, nil
}

// Get returns a copy-safe view of a record. Callers must not mutate Data.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Update validates data, checks the expected version, stores the new value,
// and returns the audit trail between the previously stored value and the new
// one. The trail is computed on every update but not persisted; durable audit
// storage is the caller's concern.
func (s *Store) Update(id string, expectedVersion int, data map[string]any) (Record, []fieldflow.AuditChange, error) {
	res := fieldflow.ValidateObject(s.schema, data)
	if !res.IsValid {
		return Record{}, nil, res.Errors
	}
	value, err := cloneValue(res.Value)
	if err != nil {
		return Record{}, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.records[id]
	if !ok {
		return Record{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if old.Version != expectedVersion {
		return Record{}, nil, fmt.Errorf("%w: have %d, expected %d", ErrVersionConflict, old.Version, expectedVersion)
	}
	trail := fieldflow.Diff(s.schema, old.Data, value)
	rec := Record{ID: id, Version: old.Version + 1, Data: value}
	s.records[id] = rec
	s.logger.Debug().Str("id", id).Int("version", rec.Version).Int("changes", len(trail)).Msg("record updated")
	return rec, trail, nil
}

// Delete removes a record. Deleting an unknown id returns ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.records, id)
	return nil
}

// cloneValue deep-copies a validated value via a JSON round trip so stored
// records never alias caller-owned maps.
func cloneValue(value any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("store: clone: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("store: clone: %w", err)
	}
	return out, nil
}
