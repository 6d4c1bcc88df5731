// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}

// writeFormError maps a form rejection to 400, a vanished book to 404 and
// anything else to 500.
func writeFormError(w http.ResponseWriter, err error) {
	var fe *library.FormError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, apiError{Error: fe.Error(), Field: fe.Field})
		return
	}
	if errors.Is(err, library.ErrBookNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// idParam reads the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// yearValue accepts the year as a JSON number or string, the way an HTML
// number input may submit it.
type yearValue string

func (y *yearValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = yearValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	*y = yearValue(n.String())
	return nil
}

type bookRequest struct {
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Year       yearValue `json:"year"`
	IsComplete bool      `json:"isComplete"`
}

func decodeBook(r *http.Request) (bookRequest, error) {
	var req bookRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	return req, nil
}

func (h *Handlers) listBooks(w http.ResponseWriter, r *http.Request) {
	opts := &library.ListOptions{
		Query: library.NormalizeQuery(r.URL.Query().Get("q")),
	}
	switch s := library.Status(strings.ToLower(r.URL.Query().Get("status"))); s {
	case "", library.StatusComplete, library.StatusIncomplete:
		opts.Status = s
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", s))
		return
	}
	writeJSON(w, http.StatusOK, h.store.List(opts))
}

func (h *Handlers) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) createBook(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBook(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	form := library.CreateForm{
		Title:      req.Title,
		Author:     req.Author,
		Year:       string(req.Year),
		IsComplete: req.IsComplete,
	}
	b, err := form.Submit(h.store, h.now())
	if err != nil {
		writeFormError(w, err)
		return
	}
	h.log.Info("book added", zap.Int64("id", b.ID), zap.String("title", b.Title))
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) editBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := decodeBook(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}

	session := library.NewEditSession(h.now)
	session.Open(b)
	form := library.EditForm{Title: req.Title, Author: req.Author, Year: string(req.Year)}
	if _, err := form.Submit(session, h.store); err != nil {
		writeFormError(w, err)
		return
	}

	updated, ok := h.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) toggleBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.store.ToggleStatus(id) {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	b, _ := h.store.Get(id)
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) requestDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.store.RequestDelete(id)
	if errors.Is(err, library.ErrBookNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, p)
}

type confirmationRequest struct {
	Proceed bool `json:"proceed"`
}

type confirmationResponse struct {
	Removed bool `json:"removed"`
}

func (h *Handlers) resolveConfirmation(w http.ResponseWriter, r *http.Request) {
	var req confirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d := library.Abort
	if req.Proceed {
		d = library.Proceed
	}
	removed, err := h.store.ResolveConfirmation(chi.URLParam(r, "token"), d)
	if errors.Is(err, library.ErrNoPendingConfirmation) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, confirmationResponse{Removed: removed})
}
