// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileStore keeps every key in one JSON object file, string values only,
// the way a browser keeps an origin's local storage. The file is re-read on
// every Get so edits made by another process are picked up.
type FileStore struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration
}

// DefaultFilePath returns ~/.arc/bookshelf.json.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookshelf.json"
	}
	return filepath.Join(home, ".arc", "bookshelf.json")
}

// OpenFileStore prepares the file at path. The file itself is created on
// the first Set.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFilePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	if _, err := os.Stat(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &FileStore{path: path, debounce: 200 * time.Millisecond}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.path, err)
	}
	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, f.path, err)
	}
	return entries, nil
}

// readForWrite is read with corrupt content treated as empty, so a write
// replaces it.
func (f *FileStore) readForWrite() (map[string]string, error) {
	entries, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		return map[string]string{}, nil
	}
	return entries, err
}

func (f *FileStore) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrUnavailable, tmp, err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.readForWrite()
	if err != nil {
		return err
	}
	entries[key] = string(value)
	return f.write(entries)
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.write(entries)
}

func (f *FileStore) Close() error { return nil }

// Watch calls fn whenever the backing file changes. Events are debounced
// because a single save shows up as several writes and a rename. The parent
// directory is watched so atomic replacements are seen.
func (f *FileStore) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	target := filepath.Clean(f.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(f.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(f.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}
