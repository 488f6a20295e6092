package repo

import (
	"context"
	"sync"
)

// InMemoryKeyValueRepository is an in-memory implementation of KeyValueRepository.
type InMemoryKeyValueRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryKeyValueRepository creates a new instance of InMemoryKeyValueRepository.
func NewInMemoryKeyValueRepository() *InMemoryKeyValueRepository {
	return &InMemoryKeyValueRepository{
		values: map[string]string{},
	}
}

// Get retrieves the value stored at key.
func (r *InMemoryKeyValueRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

// Set stores value at key.
func (r *InMemoryKeyValueRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
	return nil
}

// Delete removes key from the repository.
func (r *InMemoryKeyValueRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.values, key)
	r.mu.Unlock()
	return nil
}

// Clear drops every key.
func (r *InMemoryKeyValueRepository) Clear() {
	r.mu.Lock()
	r.values = map[string]string{}
	r.mu.Unlock()
}
