// Package store holds the committed configuration state of one user session.
//
// Scalars live under stable string keys. Record lists are stored per entity kind as
// typed slices addressed by integer index, together with a committed count kept under
// the kind's count key. Records at indices beyond the count are kept so that a list
// which shrinks and grows back recovers its earlier entries.
package store

import (
	"github.com/google/uuid"
)

// FieldStore is the single source of truth for committed values in a session.
// It is not safe for concurrent use; callers serialize access per session.
type FieldStore struct {
	id      uuid.UUID
	scalars map[string]interface{}
	records map[string]interface{} // kind name -> []T
}

// New creates an empty store with a fresh session id
func New() *FieldStore {
	return &FieldStore{
		id:      uuid.New(),
		scalars: make(map[string]interface{}),
		records: make(map[string]interface{}),
	}
}

// ID returns the session id the store was created for
func (s *FieldStore) ID() uuid.UUID {
	return s.id
}

// Get returns the value under key, or def when absent
func (s *FieldStore) Get(key string, def interface{}) interface{} {
	if v, ok := s.scalars[key]; ok {
		return v
	}
	return def
}

// Set stores value under key
func (s *FieldStore) Set(key string, value interface{}) {
	s.scalars[key] = value
}

// Has reports whether key holds a value
func (s *FieldStore) Has(key string) bool {
	_, ok := s.scalars[key]
	return ok
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *FieldStore) Delete(key string) {
	delete(s.scalars, key)
}

// Float returns the float under key or def when absent or of another type
func (s *FieldStore) Float(key string, def float64) float64 {
	switch v := s.Get(key, def).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Int returns the int under key or def when absent or of another type
func (s *FieldStore) Int(key string, def int) int {
	if v, ok := s.Get(key, def).(int); ok {
		return v
	}
	return def
}

// String returns the string under key or def when absent or of another type
func (s *FieldStore) String(key string, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}
