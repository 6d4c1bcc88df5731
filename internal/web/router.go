// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package web serves the shelf over HTTP: an HTML page with both shelves
// and a JSON API for the same operations the terminal UI offers.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	store library.BookStore
	log   *zap.Logger
	now   func() time.Time
}

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	writeLimit *rate.Limiter
}

// WithWriteLimit throttles mutating API requests to perSecond with the
// given burst. Requests over the limit get 429. perSecond <= 0 disables it.
func WithWriteLimit(perSecond float64, burst int) RouterOption {
	return func(c *routerConfig) {
		if perSecond <= 0 {
			c.writeLimit = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.writeLimit = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewRouter creates the HTTP router for store. now may be nil.
func NewRouter(store library.BookStore, log *zap.Logger, now func() time.Time, opts ...RouterOption) http.Handler {
	var cfg routerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	h := &Handlers{store: store, log: log.Named("web"), now: now}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	r.Get("/", h.index)

	r.Route("/api", func(r chi.Router) {
		if cfg.writeLimit != nil {
			r.Use(writeLimiter(cfg.writeLimit))
		}
		r.Get("/books", h.listBooks)
		r.Post("/books", h.createBook)
		r.Get("/books/{id}", h.getBook)
		r.Patch("/books/{id}", h.editBook)
		r.Post("/books/{id}/toggle", h.toggleBook)
		r.Post("/books/{id}/delete", h.requestDelete)
		r.Post("/confirmations/{token}", h.resolveConfirmation)
	})

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

// writeLimiter rejects non-GET requests once l is exhausted.
func writeLimiter(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead && !l.Allow() {
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
