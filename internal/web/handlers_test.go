// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-bookshelf/internal/kv"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func newTestServer(t *testing.T, books ...library.Book) (http.Handler, *library.Shelf) {
	t.Helper()
	store := kv.NewMemoryStore()
	if len(books) > 0 {
		library.NewKVPersister(store, nil).Save(books)
	}
	shelf := library.NewShelf(library.NewKVPersister(store, nil), library.WithClock(clock))
	return NewRouter(shelf, nil, clock), shelf
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateBook(t *testing.T) {
	h, shelf := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","year":1965}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[library.Book](t, rec)
	assert.Equal(t, "Dune", b.Title)
	assert.NotZero(t, b.ID)
	assert.Len(t, shelf.Books(), 1)

	rec = do(t, h, http.MethodPost, "/api/books", `{"title":"Future","author":"X","year":"3000","isComplete":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	b = decode[library.Book](t, rec)
	assert.Equal(t, 2024, b.Year)
	assert.True(t, b.IsComplete)
}

func TestCreateBookValidation(t *testing.T) {
	h, shelf := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/books", `{"title":"","author":"Herbert","year":1965}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := decode[apiError](t, rec)
	assert.Equal(t, library.FieldTitle, e.Field)

	rec = do(t, h, http.MethodPost, "/api/books", `{"title":"x","author":"y","year":1965,"isbn":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, shelf.Books())
}

func TestListBooks(t *testing.T) {
	h, _ := newTestServer(t,
		library.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965},
		library.Book{ID: 2, Title: "Emma", Author: "Austen", Year: 1815, IsComplete: true},
	)

	books := decode[[]library.Book](t, do(t, h, http.MethodGet, "/api/books", ""))
	assert.Len(t, books, 2)

	books = decode[[]library.Book](t, do(t, h, http.MethodGet, "/api/books?q=AUSTEN", ""))
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)

	books = decode[[]library.Book](t, do(t, h, http.MethodGet, "/api/books?status=incomplete", ""))
	require.Len(t, books, 1)
	assert.Equal(t, int64(1), books[0].ID)

	rec := do(t, h, http.MethodGet, "/api/books?status=shelved", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditBook(t *testing.T) {
	h, shelf := newTestServer(t, library.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, IsComplete: true})

	rec := do(t, h, http.MethodPatch, "/api/books/1", `{"title":"Dune!","author":"F. Herbert","year":"2999"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	b, _ := shelf.Get(1)
	assert.Equal(t, library.Book{ID: 1, Title: "Dune!", Author: "F. Herbert", Year: 2024, IsComplete: true}, b)

	rec = do(t, h, http.MethodPatch, "/api/books/99", `{"title":"x","author":"y","year":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/books/abc", `{"title":"x","author":"y","year":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleBook(t *testing.T) {
	h, shelf := newTestServer(t, library.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965})

	rec := do(t, h, http.MethodPost, "/api/books/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[library.Book](t, rec).IsComplete)
	b, _ := shelf.Get(1)
	assert.True(t, b.IsComplete)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/books/2/toggle", "").Code)
}

func TestTwoPhaseDelete(t *testing.T) {
	h, shelf := newTestServer(t, library.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965})

	rec := do(t, h, http.MethodPost, "/api/books/1/delete", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	p := decode[library.PendingConfirmation](t, rec)
	assert.Equal(t, int64(1), p.BookID)
	_, ok := shelf.Get(1)
	assert.True(t, ok)

	rec = do(t, h, http.MethodPost, "/api/confirmations/"+p.Token, `{"proceed":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[confirmationResponse](t, rec).Removed)

	rec = do(t, h, http.MethodPost, "/api/books/1/delete", "")
	p = decode[library.PendingConfirmation](t, rec)
	rec = do(t, h, http.MethodPost, "/api/confirmations/"+p.Token, `{"proceed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[confirmationResponse](t, rec).Removed)
	_, ok = shelf.Get(1)
	assert.False(t, ok)

	rec = do(t, h, http.MethodPost, "/api/confirmations/"+p.Token, `{"proceed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/books/1/delete", "").Code)
}

func TestIndexPage(t *testing.T) {
	h, _ := newTestServer(t,
		library.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965},
		library.Book{ID: 2, Title: "Emma <3", Author: "Austen", Year: 1815, IsComplete: true},
	)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Unread (1)")
	assert.Contains(t, body, "Read (1)")
	assert.Contains(t, body, "Emma &lt;3")

	body = do(t, h, http.MethodGet, "/?q=dune", "").Body.String()
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Read (0)")
}

func TestWriteLimit(t *testing.T) {
	store := kv.NewMemoryStore()
	shelf := library.NewShelf(library.NewKVPersister(store, nil), library.WithClock(clock))
	h := NewRouter(shelf, nil, clock, WithWriteLimit(0.001, 2))

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","year":1965}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := do(t, h, http.MethodPost, "/api/books", `{"title":"Emma","author":"Austen","year":1815}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Len(t, shelf.Books(), 2)

	// Reads are never throttled.
	rec = do(t, h, http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteFormErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFormError(rec, library.ErrBookNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	writeFormError(rec, &library.FormError{Field: library.FieldYear, Reason: "required"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, library.FieldYear, decode[apiError](t, rec).Field)
}
