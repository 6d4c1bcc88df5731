// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recordingPersister counts saves and keeps the last snapshot.
type recordingPersister struct {
	initial []Book
	saves   int
	last    []Book
}

func (r *recordingPersister) Load() []Book     { return append([]Book(nil), r.initial...) }
func (r *recordingPersister) MemoryOnly() bool { return false }
func (r *recordingPersister) Save(books []Book) {
	r.saves++
	r.last = append([]Book(nil), books...)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestShelf(initial ...Book) (*Shelf, *recordingPersister) {
	p := &recordingPersister{initial: initial}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewShelf(p, WithClock(fixedClock(now))), p
}

func TestShelfAddDune(t *testing.T) {
	s, p := newTestShelf()

	b := s.Add("Dune", "Herbert", 1965, false)
	if b.ID == 0 {
		t.Fatal("Book ID should be assigned")
	}

	books := s.Books()
	if len(books) != 1 {
		t.Fatalf("Books: got %d, want 1", len(books))
	}
	want := Book{ID: b.ID, Title: "Dune", Author: "Herbert", Year: 1965, IsComplete: false}
	if books[0] != want {
		t.Fatalf("stored book: got %+v, want %+v", books[0], want)
	}
	if p.saves != 1 {
		t.Fatalf("saves: got %d, want 1", p.saves)
	}
	if diff := cmp.Diff(books, p.last); diff != "" {
		t.Fatalf("snapshot differs from shelf (-shelf +saved):\n%s", diff)
	}
}

func TestShelfIDsFromClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestShelf()

	b1 := s.Add("A", "a", 2000, false)
	b2 := s.Add("B", "b", 2000, false)
	if b1.ID != now.UnixMilli() {
		t.Fatalf("first id: got %d, want %d", b1.ID, now.UnixMilli())
	}
	// Same millisecond: the id is bumped past the existing one.
	if b2.ID != b1.ID+1 {
		t.Fatalf("second id: got %d, want %d", b2.ID, b1.ID+1)
	}
}

func TestShelfPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestShelf()
	titles := []string{"one", "two", "three", "four"}
	for _, title := range titles {
		s.Add(title, "x", 2000, false)
	}
	for i, b := range s.Books() {
		if b.Title != titles[i] {
			t.Fatalf("position %d: got %q, want %q", i, b.Title, titles[i])
		}
	}
}

func TestShelfEdit(t *testing.T) {
	s, p := newTestShelf()
	a := s.Add("A", "a", 2000, true)
	b := s.Add("B", "b", 2001, false)

	if !s.Edit(a.ID, "A2", "a2", 1999) {
		t.Fatal("Edit returned false for existing book")
	}
	books := s.Books()
	if books[0] != (Book{ID: a.ID, Title: "A2", Author: "a2", Year: 1999, IsComplete: true}) {
		t.Fatalf("edited book: got %+v", books[0])
	}
	if books[1] != b {
		t.Fatalf("other book changed: got %+v", books[1])
	}
	if p.saves != 3 {
		t.Fatalf("saves: got %d, want 3", p.saves)
	}
}

func TestShelfEditAbsentIsNoop(t *testing.T) {
	s, p := newTestShelf(Book{ID: 1, Title: "A", Author: "a", Year: 2000})
	before := s.Books()

	if s.Edit(99, "X", "Y", 1) {
		t.Fatal("Edit on absent id reported a change")
	}
	if diff := cmp.Diff(before, s.Books()); diff != "" {
		t.Fatalf("shelf changed (-before +after):\n%s", diff)
	}
	if p.saves != 0 {
		t.Fatalf("saves: got %d, want 0", p.saves)
	}
}

func TestShelfAddThenRemoveRestores(t *testing.T) {
	s, _ := newTestShelf(
		Book{ID: 1, Title: "A", Author: "a", Year: 2000},
		Book{ID: 2, Title: "B", Author: "b", Year: 2001, IsComplete: true},
	)
	before := s.Books()

	b := s.Add("C", "c", 2002, false)
	if !s.Remove(b.ID) {
		t.Fatal("Remove returned false")
	}
	if diff := cmp.Diff(before, s.Books()); diff != "" {
		t.Fatalf("add+remove did not restore (-before +after):\n%s", diff)
	}
	if s.Remove(b.ID) {
		t.Fatal("second Remove should be a no-op")
	}
}

func TestShelfToggleTwiceIsIdempotent(t *testing.T) {
	s, _ := newTestShelf()
	b := s.Add("A", "a", 2000, false)

	s.ToggleStatus(b.ID)
	got, _ := s.Get(b.ID)
	if !got.IsComplete {
		t.Fatal("first toggle did not complete the book")
	}
	s.ToggleStatus(b.ID)
	got, _ = s.Get(b.ID)
	if got != b {
		t.Fatalf("double toggle: got %+v, want %+v", got, b)
	}
	if s.ToggleStatus(12345) {
		t.Fatal("toggle on absent id reported a change")
	}
}

func TestShelfToggleMovesBetweenPartitions(t *testing.T) {
	s, _ := newTestShelf()
	b := s.Add("Dune", "Herbert", 1965, false)

	incomplete, complete := Partition(s.Books())
	if len(incomplete) != 1 || len(complete) != 0 {
		t.Fatalf("before toggle: %d incomplete, %d complete", len(incomplete), len(complete))
	}

	s.ToggleStatus(b.ID)
	incomplete, complete = Partition(s.Books())
	if len(incomplete) != 0 || len(complete) != 1 || complete[0].ID != b.ID {
		t.Fatalf("after toggle: %d incomplete, %d complete", len(incomplete), len(complete))
	}

	s.ToggleStatus(b.ID)
	incomplete, complete = Partition(s.Books())
	if len(incomplete) != 1 || len(complete) != 0 || incomplete[0].ID != b.ID {
		t.Fatalf("after second toggle: %d incomplete, %d complete", len(incomplete), len(complete))
	}
}

func TestShelfIDsStayUnique(t *testing.T) {
	s, _ := newTestShelf()
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 500; step++ {
		books := s.Books()
		var id int64 = int64(rng.Intn(10))
		if len(books) > 0 && rng.Intn(3) > 0 {
			id = books[rng.Intn(len(books))].ID
		}
		switch rng.Intn(4) {
		case 0:
			s.Add("t", "a", 2000, rng.Intn(2) == 0)
		case 1:
			s.Edit(id, "t2", "a2", 1990)
		case 2:
			s.Remove(id)
		case 3:
			s.ToggleStatus(id)
		}

		seen := map[int64]bool{}
		for _, b := range s.Books() {
			if seen[b.ID] {
				t.Fatalf("step %d: duplicate id %d", step, b.ID)
			}
			seen[b.ID] = true
		}
	}
}

func TestShelfDropsDuplicateStoredIDs(t *testing.T) {
	s, _ := newTestShelf(
		Book{ID: 1, Title: "first", Author: "a", Year: 2000},
		Book{ID: 1, Title: "second", Author: "b", Year: 2001},
	)
	books := s.Books()
	if len(books) != 1 || books[0].Title != "first" {
		t.Fatalf("got %+v, want only the first book", books)
	}
}

func TestShelfBooksReturnsCopy(t *testing.T) {
	s, _ := newTestShelf(Book{ID: 1, Title: "A", Author: "a", Year: 2000})
	books := s.Books()
	books[0].Title = "mutated"
	if got, _ := s.Get(1); got.Title != "A" {
		t.Fatalf("shelf mutated through Books(): %q", got.Title)
	}
}

func TestShelfList(t *testing.T) {
	s, _ := newTestShelf(
		Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965},
		Book{ID: 2, Title: "Emma", Author: "Austen", Year: 1815, IsComplete: true},
		Book{ID: 3, Title: "Dune Messiah", Author: "Herbert", Year: 1969, IsComplete: true},
	)

	if got := s.List(nil); len(got) != 3 {
		t.Fatalf("List(nil): got %d", len(got))
	}
	got := s.List(&ListOptions{Query: "herbert", Status: StatusComplete})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("List(herbert, complete): got %+v", got)
	}
	got = s.List(&ListOptions{Query: "dune", Limit: 1})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("List(dune, limit 1): got %+v", got)
	}
}

func TestShelfTwoPhaseDelete(t *testing.T) {
	s, p := newTestShelf()
	b := s.Add("A", "a", 2000, false)

	pending, err := s.RequestDelete(b.ID)
	if err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if pending.Token == "" || pending.BookID != b.ID || pending.Title != "A" {
		t.Fatalf("pending: got %+v", pending)
	}
	if _, ok := s.Get(b.ID); !ok {
		t.Fatal("book removed before confirmation")
	}

	removed, err := s.ResolveConfirmation(pending.Token, Abort)
	if err != nil || removed {
		t.Fatalf("abort: removed=%v err=%v", removed, err)
	}
	if _, ok := s.Get(b.ID); !ok {
		t.Fatal("book removed after abort")
	}
	if _, err := s.ResolveConfirmation(pending.Token, Proceed); !errors.Is(err, ErrNoPendingConfirmation) {
		t.Fatalf("reusing token: got %v, want ErrNoPendingConfirmation", err)
	}

	savesBefore := p.saves
	pending, _ = s.RequestDelete(b.ID)
	removed, err = s.ResolveConfirmation(pending.Token, Proceed)
	if err != nil || !removed {
		t.Fatalf("proceed: removed=%v err=%v", removed, err)
	}
	if _, ok := s.Get(b.ID); ok {
		t.Fatal("book still present after confirmed delete")
	}
	if p.saves != savesBefore+1 {
		t.Fatalf("saves: got %d, want %d", p.saves, savesBefore+1)
	}
}

func TestShelfRequestDeleteAbsent(t *testing.T) {
	s, _ := newTestShelf()
	if _, err := s.RequestDelete(5); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("RequestDelete absent: got %v, want ErrBookNotFound", err)
	}
}
