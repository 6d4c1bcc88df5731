// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormError rejects a submission before the store is touched.
type FormError struct {
	Field  string
	Reason string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ClampYear caps year at the current calendar year. There is no lower bound.
func ClampYear(year, current int) int {
	if year > current {
		return current
	}
	return year
}

// ParseYear parses a year input and clamps it.
func ParseYear(raw string, now time.Time) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &FormError{Field: FieldYear, Reason: "required"}
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FormError{Field: FieldYear, Reason: "must be a whole number"}
	}
	return ClampYear(year, now.Year()), nil
}

// CreateForm is the raw input of the add-book form.
type CreateForm struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       string `json:"year"`
	IsComplete bool   `json:"isComplete"`
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FormError{Field: field, Reason: "required"}
	}
	return nil
}

// Submit validates the form and adds the book to store.
func (f CreateForm) Submit(store BookStore, now time.Time) (Book, error) {
	if err := required(FieldTitle, f.Title); err != nil {
		return Book{}, err
	}
	if err := required(FieldAuthor, f.Author); err != nil {
		return Book{}, err
	}
	year, err := ParseYear(f.Year, now)
	if err != nil {
		return Book{}, err
	}
	return store.Add(f.Title, f.Author, year, f.IsComplete), nil
}

// EditForm is the raw input of the edit-book form. Completion status is not
// part of it; that only changes through ToggleStatus.
type EditForm struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
}

// Submit validates the form, pushes it into the open session, commits the
// session and applies the result to store. On a validation error the
// session stays open and the store is not touched. ErrBookNotFound means
// the book left the store while the session was open.
func (f EditForm) Submit(session *EditSession, store BookStore) (Book, error) {
	if !session.IsOpen() {
		return Book{}, ErrSessionClosed
	}
	if err := required(FieldTitle, f.Title); err != nil {
		return Book{}, err
	}
	if err := required(FieldAuthor, f.Author); err != nil {
		return Book{}, err
	}
	if err := required(FieldYear, f.Year); err != nil {
		return Book{}, err
	}
	if err := session.UpdateField(FieldYear, f.Year); err != nil {
		return Book{}, &FormError{Field: FieldYear, Reason: "must be a whole number"}
	}
	if err := session.UpdateField(FieldTitle, f.Title); err != nil {
		return Book{}, err
	}
	if err := session.UpdateField(FieldAuthor, f.Author); err != nil {
		return Book{}, err
	}

	b, err := session.Commit()
	if err != nil {
		return Book{}, err
	}
	if !store.Edit(b.ID, b.Title, b.Author, b.Year) {
		return Book{}, ErrBookNotFound
	}
	return b, nil
}
