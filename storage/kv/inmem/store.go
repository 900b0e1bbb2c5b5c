// Package inmemkv is an in-memory KeyValueStore used in tests and as the
// default dev backend. Nothing survives the process.
package inmemkv

import (
	"context"
	"sync"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ core.KeyValueStore = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return val, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Close() error { return nil }

// Len reports the number of stored keys; test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
