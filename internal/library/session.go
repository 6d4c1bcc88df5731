// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSessionClosed = errors.New("edit session is not open")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidYear   = errors.New("year must be a whole number")
)

// Editable field names, matching the form inputs.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldYear   = "year"
)

// EditSession holds a detached copy of the book being edited. The zero
// value is a closed session using time.Now.
type EditSession struct {
	book Book
	open bool
	now  func() time.Time
}

// NewEditSession returns a closed session that reads the current year from
// now. A nil now means time.Now.
func NewEditSession(now func() time.Time) *EditSession {
	return &EditSession{now: now}
}

func (e *EditSession) currentYear() int {
	if e.now == nil {
		return time.Now().Year()
	}
	return e.now().Year()
}

// Open selects book, replacing any copy already held.
func (e *EditSession) Open(book Book) {
	e.book = book
	e.open = true
}

// IsOpen reports whether a book is selected.
func (e *EditSession) IsOpen() bool { return e.open }

// Current returns the held copy.
func (e *EditSession) Current() (Book, bool) {
	if !e.open {
		return Book{}, false
	}
	return e.book, true
}

// UpdateField applies one form input to the held copy. Years past the
// current calendar year are clamped to it.
func (e *EditSession) UpdateField(name, value string) error {
	if !e.open {
		return ErrSessionClosed
	}
	switch name {
	case FieldTitle:
		e.book.Title = value
	case FieldAuthor:
		e.book.Author = value
	case FieldYear:
		year, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidYear, value)
		}
		e.book.Year = ClampYear(year, e.currentYear())
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

// Commit returns the held copy and closes the session. The caller applies
// it with Shelf.Edit.
func (e *EditSession) Commit() (Book, error) {
	if !e.open {
		return Book{}, ErrSessionClosed
	}
	b := e.book
	e.Cancel()
	return b, nil
}

// Cancel closes the session without committing.
func (e *EditSession) Cancel() {
	e.book = Book{}
	e.open = false
}
