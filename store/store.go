// Package store implements ValueStore, a keyed value map without routing
// metadata.
//
// Where a container is a routed message with ordered, possibly repeated
// names, a store maps each key to exactly one value. Adding under an existing
// key replaces the previous value. The value's own name is independent of
// the key it is stored under.
//
// # Basic Usage
//
//	s := store.New()
//	_ = s.Add("count", value.NewInt("count", 42))
//
//	v, err := s.Get("count")
//	data, err := s.SerializeBinary()
//	back, err := store.DeserializeBinary(data)
//
// # Thread Safety
//
// All methods are safe for concurrent use. Statistics are kept in atomic
// counters and never take the store lock.
package store

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/value"
)

// Stats is a snapshot of the store's operation counters.
type Stats struct {
	// ReadCount counts successful Get calls.
	ReadCount uint64
	// WriteCount counts Add calls.
	WriteCount uint64
	// SerializationCount counts ToJSON and SerializeBinary calls.
	SerializationCount uint64
}

// ValueStore is a thread-safe map from keys to immutable values.
type ValueStore struct {
	mu     sync.RWMutex
	values map[string]*value.Value

	reads          atomic.Uint64
	writes         atomic.Uint64
	serializations atomic.Uint64
}

// New creates an empty store.
func New() *ValueStore {
	return NewWithCapacity(0)
}

// NewWithCapacity creates an empty store sized for n keys.
func NewWithCapacity(n int) *ValueStore {
	return &ValueStore{values: make(map[string]*value.Value, max(n, 0))}
}

// Add stores v under key, replacing any value already stored there.
func (s *ValueStore) Add(key string, v *value.Value) error {
	if v == nil {
		return fmt.Errorf("%w: nil value for key %q", errs.ErrInvalidDataFormat, key)
	}

	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()

	s.writes.Add(1)

	return nil
}

// Get returns the value stored under key, or an error matching
// errs.ErrValueNotFound.
func (s *ValueStore) Get(key string) (*value.Value, error) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NotFound(key)
	}
	s.reads.Add(1)

	return v, nil
}

// Contains reports whether key is present.
func (s *ValueStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[key]

	return ok
}

// Remove deletes key and reports whether it was present.
func (s *ValueStore) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)

	return true
}

// Clear removes every key. Statistics are kept.
func (s *ValueStore) Clear() {
	s.mu.Lock()
	clear(s.values)
	s.mu.Unlock()
}

// Size returns the number of keys.
func (s *ValueStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

// IsEmpty reports whether the store holds no keys.
func (s *ValueStore) IsEmpty() bool {
	return s.Size() == 0
}

// Keys returns the keys in ascending order.
func (s *ValueStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.values))
}

// Values returns the values ordered by key.
func (s *ValueStore) Values() []*value.Value {
	_, values := s.snapshot()

	return values
}

// All iterates over a snapshot of the store in key order.
// Changes made during iteration are not observed.
func (s *ValueStore) All() iter.Seq2[string, *value.Value] {
	keys, values := s.snapshot()

	return func(yield func(string, *value.Value) bool) {
		for i, k := range keys {
			if !yield(k, values[i]) {
				return
			}
		}
	}
}

// ForEach calls fn for every key in ascending order.
func (s *ValueStore) ForEach(fn func(key string, v *value.Value)) {
	for k, v := range s.All() {
		fn(k, v)
	}
}

// Clone returns an independent store holding the same values.
// The clone starts with zeroed statistics.
func (s *ValueStore) Clone() *ValueStore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &ValueStore{values: maps.Clone(s.values)}
}

// Stats returns the current operation counters.
func (s *ValueStore) Stats() Stats {
	return Stats{
		ReadCount:          s.reads.Load(),
		WriteCount:         s.writes.Load(),
		SerializationCount: s.serializations.Load(),
	}
}

// ResetStats sets every counter to zero.
func (s *ValueStore) ResetStats() {
	s.reads.Store(0)
	s.writes.Store(0)
	s.serializations.Store(0)
}

type jsonEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// ToJSON renders the store as an indented JSON object keyed by store key.
// Each entry carries the value's name, short type name and text form.
//
// The output is a readable dump; it is not read back by any decoder.
func (s *ValueStore) ToJSON() (string, error) {
	s.serializations.Add(1)

	keys, values := s.snapshot()
	doc := make(map[string]jsonEntry, len(keys))
	for i, k := range keys {
		v := values[i]
		doc[k] = jsonEntry{Name: v.Name(), Type: v.Type().String(), Data: v.String()}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrSerialization, err)
	}

	return string(out), nil
}

func (s *ValueStore) snapshot() ([]string, []*value.Value) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(s.values))
	values := make([]*value.Value, len(keys))
	for i, k := range keys {
		values[i] = s.values[k]
	}

	return keys, values
}
