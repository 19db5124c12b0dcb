package store

import (
	"context"
	"encoding/json"
	"sync"

	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
)

var emptyCollection = []byte("[]")

// MemoryStore keeps collections in process memory. It is the default backend
// for local runs and the fake used across service tests. Mutations on a
// collection are serialized by the store mutex, since callers do full
// read-modify-write cycles.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]byte
	counters    map[string]int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		collections: map[string][]byte{},
		counters:    map[string]int64{},
	}
}

func (s *MemoryStore) Load(ctx context.Context, collection string, out any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	raw, ok := s.collections[collection]
	s.mu.Unlock()
	if !ok {
		raw = emptyCollection
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode collection "+collection)
	}
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, collection string, records any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode collection "+collection)
	}
	s.mu.Lock()
	s.collections[collection] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) NextID(ctx context.Context, collection string) (int64, error) {
	if err := validateCollection(collection); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[collection]++
	return s.counters[collection], nil
}

func (s *MemoryStore) AdvanceCounter(ctx context.Context, collection string, to int64) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters[collection] < to {
		s.counters[collection] = to
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func validateCollection(collection string) error {
	if collection == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	return nil
}
