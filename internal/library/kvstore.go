// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/kv"
)

// StorageKey is the single entry the shelf snapshot lives under.
const StorageKey = "BOOKSHELF_APP"

// KVPersister implements Persister on top of a kv.KVStore.
type KVPersister struct {
	kv         kv.KVStore
	log        *zap.Logger
	memoryOnly atomic.Bool
}

// NewKVPersister wraps store. A nil logger discards output.
func NewKVPersister(store kv.KVStore, log *zap.Logger) *KVPersister {
	if log == nil {
		log = zap.NewNop()
	}
	return &KVPersister{kv: store, log: log.Named("persist")}
}

// storedBook mirrors Book with every field required.
type storedBook struct {
	ID         *int64  `json:"id"`
	Title      *string `json:"title"`
	Author     *string `json:"author"`
	Year       *int    `json:"year"`
	IsComplete *bool   `json:"isComplete"`
}

// Load reads the snapshot. Absent, unreadable or malformed data all yield an
// empty shelf. Only an unavailable store switches to memory only; corrupt
// data is overwritten by the next save.
func (p *KVPersister) Load() []Book {
	data, err := p.kv.Get(context.Background(), StorageKey)
	if err != nil {
		switch {
		case errors.Is(err, kv.ErrNotFound):
		case errors.Is(err, kv.ErrUnavailable):
			p.memoryOnly.Store(true)
			p.log.Warn("storage unavailable, running in memory only", zap.Error(err))
		default:
			p.log.Warn("failed to read stored shelf", zap.Error(err))
		}
		return []Book{}
	}

	books, err := decodeBooks(data)
	if err != nil {
		p.log.Warn("failed to parse stored shelf", zap.Error(err))
		return []Book{}
	}
	p.log.Debug("shelf loaded", zap.Int("books", len(books)))
	return books
}

// Save writes the full list. Any write failure switches to memory only;
// later saves are skipped.
func (p *KVPersister) Save(books []Book) {
	if p.memoryOnly.Load() {
		p.log.Debug("skipping save, memory only", zap.Int("books", len(books)))
		return
	}
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		p.log.Error("marshal shelf", zap.Error(err))
		return
	}
	if err := p.kv.Set(context.Background(), StorageKey, data); err != nil {
		p.memoryOnly.Store(true)
		p.log.Warn("failed to save shelf, running in memory only", zap.Error(err))
		return
	}
	p.log.Debug("shelf saved", zap.Int("books", len(books)))
}

// MemoryOnly reports whether writes are being skipped.
func (p *KVPersister) MemoryOnly() bool {
	return p.memoryOnly.Load()
}

func decodeBooks(data []byte) ([]Book, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var stored []storedBook
	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("unmarshal shelf: %w", err)
	}
	if stored == nil {
		return nil, errors.New("unmarshal shelf: not an array")
	}

	books := make([]Book, 0, len(stored))
	for i, s := range stored {
		if s.ID == nil || s.Title == nil || s.Author == nil || s.Year == nil || s.IsComplete == nil {
			return nil, fmt.Errorf("book %d: missing field", i)
		}
		books = append(books, Book{
			ID:         *s.ID,
			Title:      *s.Title,
			Author:     *s.Author,
			Year:       *s.Year,
			IsComplete: *s.IsComplete,
		})
	}
	return books, nil
}
