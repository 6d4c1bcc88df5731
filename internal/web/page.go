// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package web

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Bookshelf</title>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style>
		body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 1100px; margin: 0 auto; padding: 20px; color: #1f2937; }
		header { background: #2563eb; color: white; padding: 12px; text-align: center; border-radius: 6px; }
		.search { width: 100%; padding: 10px; margin: 16px 0; border: 1px solid #d1d5db; border-radius: 6px; box-sizing: border-box; }
		.shelves { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
		.shelf { background: #f9fafb; padding: 16px; border-radius: 6px; }
		.book { border: 1px solid #d1d5db; border-radius: 6px; padding: 12px; margin-bottom: 12px; background: white; }
		.book h3 { margin: 0 0 6px 0; }
		.empty { color: #6b7280; }
		.warn { color: #dc2626; }
	</style>
</head>
<body>
	<header><h1>Bookshelf</h1></header>
	{{if .MemoryOnly}}<p class="warn">Storage unavailable: changes are not saved.</p>{{end}}
	<form method="get" action="/">
		<input class="search" type="text" name="q" value="{{.Query}}" placeholder="title, author or year...">
	</form>
	<div class="shelves">
		<section class="shelf" id="incompleteBookList">
			<h2>Unread ({{len .Incomplete}})</h2>
			{{range .Incomplete}}{{template "book" .}}{{else}}<p class="empty">No books here.</p>{{end}}
		</section>
		<section class="shelf" id="completeBookList">
			<h2>Read ({{len .Complete}})</h2>
			{{range .Complete}}{{template "book" .}}{{else}}<p class="empty">No books here.</p>{{end}}
		</section>
	</div>
</body>
</html>
{{define "book"}}<div class="book" data-bookid="{{.ID}}">
	<h3>{{.Title}}</h3>
	<p>Author: {{.Author}}</p>
	<p>Year: {{.Year}}</p>
</div>{{end}}
`))

type indexData struct {
	Query      string
	Incomplete []library.Book
	Complete   []library.Book
	MemoryOnly bool
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	incomplete, complete := library.Partition(library.Filter(h.store.Books(), library.NormalizeQuery(query)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, indexData{
		Query:      query,
		Incomplete: incomplete,
		Complete:   complete,
		MemoryOnly: h.store.MemoryOnly(),
	})
	if err != nil {
		h.log.Error("render index", zap.Error(err))
	}
}
