package storage

import (
	"context"
	"sync"
)

// MockStorage is an in-memory Storage used by tests and by tools that must not touch disk.
type MockStorage struct {
	lock   sync.Mutex
	values map[string][]byte

	// WriteErrs, when set, is consulted before every write. Returning a non-nil error fails
	// the write without storing anything.
	WriteErrs func(key string) error
}

// NewMockStorage returns an empty in-memory Storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		values: make(map[string][]byte),
	}
}

// Write stores a copy of body at key.
func (m *MockStorage) Write(ctx context.Context, key string, body []byte, options *Options) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.WriteErrs != nil {
		if err := m.WriteErrs(key); err != nil {
			return err
		}
	}

	c := make([]byte, len(body))
	copy(c, body)
	m.values[key] = c
	return nil
}

// Read returns a copy of the value at key.
func (m *MockStorage) Read(ctx context.Context, key string) ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	b, exists := m.values[key]
	if !exists {
		return nil, ErrNotFound
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c, nil
}

// Remove deletes the value at key.
func (m *MockStorage) Remove(ctx context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.values[key]; !exists {
		return ErrNotFound
	}

	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MockStorage) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.values)
}
