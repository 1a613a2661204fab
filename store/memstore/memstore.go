// Package memstore is an in-memory store.KeyValStore backed by a
// plain map, guarded by a mutex so that concurrent readers of
// distinct historical roots can safely share one instance.
package memstore

import (
	"sync"

	"github.com/sterliakov/merkle-patricia-trie/store"
)

// Store is an in-memory key-value store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get retrieves the value associated with key, if present.
func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[string(key)]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return copyBytes(val), nil
}

// Put inserts the key-value pair into the store.
func (s *Store) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[string(key)] = copyBytes(value)
	return nil
}

// Has reports whether key is present in the store.
func (s *Store) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[string(key)]
	return ok, nil
}

// Len returns the number of entries currently stored. Useful in tests
// asserting the reference rule's inline-vs-digest threshold.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
