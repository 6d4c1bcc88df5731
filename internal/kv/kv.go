// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package kv provides the synchronous key-value backends the bookshelf
// snapshot is persisted into.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been set.
	ErrNotFound = errors.New("kv: key not found")
	// ErrUnavailable is returned when the backend cannot be used at all.
	ErrUnavailable = errors.New("kv: store unavailable")
	// ErrCorrupt is returned by Get when the stored data cannot be decoded.
	// Writes replace corrupt data.
	ErrCorrupt = errors.New("kv: stored data is corrupt")
)

// KVStore is a byte-valued key-value store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Watcher is implemented by backends that can report external changes.
// fn is called after each (debounced) change until ctx is cancelled.
type Watcher interface {
	Watch(ctx context.Context, fn func()) error
}
