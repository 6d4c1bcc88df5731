// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBookNotFound is returned by RequestDelete and EditForm.Submit for
	// an unknown id.
	ErrBookNotFound = errors.New("book not found")
	// ErrNoPendingConfirmation is returned when a token has no pending delete.
	ErrNoPendingConfirmation = errors.New("no pending confirmation")
)

// Shelf is the in-memory book list. It is the canonical copy; the persister
// receives a full snapshot after every change.
type Shelf struct {
	mu      sync.Mutex
	books   []Book
	pending map[string]PendingConfirmation
	persist Persister
	now     func() time.Time
	log     *zap.Logger
}

// Option configures a Shelf.
type Option func(*Shelf)

// WithClock overrides time.Now for id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Shelf) { s.now = now }
}

// WithLogger sets the shelf logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Shelf) {
		if log != nil {
			s.log = log
		}
	}
}

// NewShelf loads the stored snapshot once and returns the shelf.
func NewShelf(p Persister, opts ...Option) *Shelf {
	s := &Shelf{
		pending: make(map[string]PendingConfirmation),
		persist: p,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("shelf")

	seen := make(map[int64]bool)
	for _, b := range p.Load() {
		if seen[b.ID] {
			s.log.Warn("dropping duplicate stored book", zap.Int64("id", b.ID))
			continue
		}
		seen[b.ID] = true
		s.books = append(s.books, b)
	}
	return s
}

// Now returns the shelf's current time.
func (s *Shelf) Now() time.Time {
	return s.now()
}

func (s *Shelf) save() {
	snapshot := make([]Book, len(s.books))
	copy(snapshot, s.books)
	s.persist.Save(snapshot)
}

// nextID derives an id from the clock, bumped past the largest existing id.
func (s *Shelf) nextID() int64 {
	id := s.now().UnixMilli()
	for _, b := range s.books {
		if b.ID >= id {
			id = b.ID + 1
		}
	}
	return id
}

func (s *Shelf) indexOf(id int64) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new book. Inputs are expected to be validated by the form.
func (s *Shelf) Add(title, author string, year int, isComplete bool) Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Book{
		ID:         s.nextID(),
		Title:      title,
		Author:     author,
		Year:       year,
		IsComplete: isComplete,
	}
	s.books = append(s.books, b)
	s.save()

	s.log.Debug("book added", zap.Int64("id", b.ID), zap.String("title", b.Title))
	return b
}

// Edit replaces title, author and year of the book with id. Status and
// position are kept. Reports false if id is not on the shelf.
func (s *Shelf) Edit(id int64, title, author string, year int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books[i].Title = title
	s.books[i].Author = author
	s.books[i].Year = year
	s.save()

	s.log.Debug("book edited", zap.Int64("id", id))
	return true
}

// Remove deletes the book with id immediately.
func (s *Shelf) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

func (s *Shelf) removeLocked(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books = append(s.books[:i:i], s.books[i+1:]...)
	s.save()

	s.log.Debug("book removed", zap.Int64("id", id))
	return true
}

// ToggleStatus flips IsComplete on the book with id.
func (s *Shelf) ToggleStatus(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books[i].IsComplete = !s.books[i].IsComplete
	s.save()

	s.log.Debug("book toggled", zap.Int64("id", id), zap.Bool("complete", s.books[i].IsComplete))
	return true
}

// Get returns a copy of the book with id.
func (s *Shelf) Get(id int64) (Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, false
	}
	return s.books[i], true
}

// Books returns a copy of the shelf in insertion order.
func (s *Shelf) Books() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// List applies opts to the shelf. A nil opts lists everything.
func (s *Shelf) List(opts *ListOptions) []Book {
	books := s.Books()
	if opts == nil {
		return books
	}

	books = Filter(books, opts.Query)
	if opts.Status != "" {
		out := books[:0]
		for _, b := range books {
			if b.Status() == opts.Status {
				out = append(out, b)
			}
		}
		books = out
	}
	if opts.Limit > 0 && len(books) > opts.Limit {
		books = books[:opts.Limit]
	}
	return books
}

// RequestDelete starts a two-phase delete. Nothing is removed until the
// returned token is resolved with Proceed.
func (s *Shelf) RequestDelete(id int64) (PendingConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return PendingConfirmation{}, ErrBookNotFound
	}
	p := PendingConfirmation{
		Token:  uuid.NewString(),
		BookID: id,
		Title:  s.books[i].Title,
	}
	s.pending[p.Token] = p
	return p, nil
}

// ResolveConfirmation completes a pending delete. It reports whether a book
// was removed; a book deleted in the meantime is not an error.
func (s *Shelf) ResolveConfirmation(token string, d Decision) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[token]
	if !ok {
		return false, ErrNoPendingConfirmation
	}
	delete(s.pending, token)

	s.log.Debug("delete confirmation resolved", zap.Int64("id", p.BookID), zap.Stringer("decision", d))
	if d != Proceed {
		return false, nil
	}
	return s.removeLocked(p.BookID), nil
}

// MemoryOnly reports whether changes are no longer being persisted.
func (s *Shelf) MemoryOnly() bool {
	return s.persist.MemoryOnly()
}

var _ BookStore = (*Shelf)(nil)
