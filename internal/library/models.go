// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// Book is a single shelf record.
type Book struct {
	ID         int64  `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Author     string `json:"author" yaml:"author"`
	Year       int    `json:"year" yaml:"year"`
	IsComplete bool   `json:"isComplete" yaml:"is_complete"`
}

// Status returns the shelf a book sits on.
func (b Book) Status() Status {
	if b.IsComplete {
		return StatusComplete
	}
	return StatusIncomplete
}

// Status names the two shelves.
type Status string

const (
	StatusIncomplete Status = "incomplete" // not read yet
	StatusComplete   Status = "complete"   // finished
)

// Decision answers a pending delete confirmation.
type Decision int

const (
	Abort Decision = iota
	Proceed
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "abort"
}

// PendingConfirmation is a delete waiting for the user's answer.
type PendingConfirmation struct {
	Token  string `json:"token" yaml:"token"`
	BookID int64  `json:"book_id" yaml:"book_id"`
	Title  string `json:"title" yaml:"title"`
}

// ListOptions filters book listing.
type ListOptions struct {
	Query  string // already lowercased
	Status Status // empty means both shelves
	Limit  int
}
