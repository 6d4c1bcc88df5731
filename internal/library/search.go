// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"strconv"
	"strings"
)

// NormalizeQuery lowercases a raw search string. Callers do this once
// before calling Filter.
func NormalizeQuery(q string) string {
	return strings.ToLower(q)
}

// Filter returns the books whose lowercased title, author and year, joined
// without separators, contain query. An empty query matches everything.
// The input is not modified and order is preserved.
func Filter(books []Book, query string) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if query == "" || strings.Contains(searchText(b), query) {
			out = append(out, b)
		}
	}
	return out
}

func searchText(b Book) string {
	return strings.ToLower(b.Title) + strings.ToLower(b.Author) + strconv.Itoa(b.Year)
}

// Partition splits books into the unread and read shelves, keeping order.
func Partition(books []Book) (incomplete, complete []Book) {
	for _, b := range books {
		if b.IsComplete {
			complete = append(complete, b)
		} else {
			incomplete = append(incomplete, b)
		}
	}
	return incomplete, complete
}
