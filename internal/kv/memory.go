// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in a map. Nothing survives the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// UnavailableStore fails every call with ErrUnavailable. It stands in for a
// host without usable storage.
type UnavailableStore struct{}

func (UnavailableStore) Get(context.Context, string) ([]byte, error) { return nil, ErrUnavailable }
func (UnavailableStore) Set(context.Context, string, []byte) error   { return ErrUnavailable }
func (UnavailableStore) Delete(context.Context, string) error        { return ErrUnavailable }
func (UnavailableStore) Close() error                                { return nil }
