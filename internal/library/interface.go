// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// BookStore is the set of operations the views use to read and mutate the
// shelf. All mutation goes through these methods.
type BookStore interface {
	Add(title, author string, year int, isComplete bool) Book
	Edit(id int64, title, author string, year int) bool
	Remove(id int64) bool
	ToggleStatus(id int64) bool

	Get(id int64) (Book, bool)
	Books() []Book
	List(opts *ListOptions) []Book

	// Two-phase delete
	RequestDelete(id int64) (PendingConfirmation, error)
	ResolveConfirmation(token string, d Decision) (bool, error)

	MemoryOnly() bool
}

// Persister loads and saves full snapshots of the shelf.
type Persister interface {
	Load() []Book
	Save(books []Book)
	MemoryOnly() bool
}
