package kvstore

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by a Backend when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable is returned by NopBackend for every write.
	ErrUnavailable = errors.New("storage unavailable")
)

// Backend is a synchronous string-keyed storage facility.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// NopBackend stores nothing. Reads are always absent and writes are refused.
type NopBackend struct{}

func (NopBackend) Get(context.Context, string) (string, error) { return "", ErrNotFound }

func (NopBackend) Set(context.Context, string, string) error { return ErrUnavailable }

// MemoryBackend keeps entries in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
