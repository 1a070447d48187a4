// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package session provides session-scoped key/value storage and the manager
that owns one workspace per API session.

A session is the server-side stand-in for a browser tab: the cached dataset
snapshots, view state and notifications it accumulates live only as long as
the session, and ending the session clears every key it wrote.

Backends:

  - [MemoryBackend]: process-local maps, lost on restart.
  - [RedisBackend]: keys under "session:<id>:" with a sliding idle TTL and a
    per-session key index used to clear the session in one pipeline.
*/
package session

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Storage is the get/set/clear contract used by the cache layer.
// Values are opaque bytes; callers own serialisation.
type Storage interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}

// Scoped is the storage of one session. ClearAll runs when the session ends.
type Scoped interface {
	Storage
	ClearAll(ctx context.Context) error
}

// Backend opens the storage scope for a session id.
type Backend interface {
	Open(sessionID string) Scoped
}

// # Memory

// Memory is an in-process [Scoped] storage. The zero value is not usable; call [NewMemory].
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *Memory) ClearAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.values)
	return nil
}

// Keys lists the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.values))
}

// MemoryBackend gives every session its own [Memory].
type MemoryBackend struct{}

func (MemoryBackend) Open(string) Scoped { return NewMemory() }
