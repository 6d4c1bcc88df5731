// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package tui is the interactive terminal view of the bookshelf: the two
// partitioned shelves, the search box, the create and edit forms and the
// delete confirmation dialog.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCreate
	modeEdit
	modeConfirm
)

// Shelf columns.
const (
	columnIncomplete = iota
	columnComplete
)

// Model is the bubbletea model of the shelf UI.
type Model struct {
	store   library.BookStore
	session *library.EditSession
	now     func() time.Time
	log     *zap.Logger
	styles  Styles

	mode    mode
	search  textinput.Model
	query   string
	column  int
	cursor  [2]int
	create  bookForm
	edit    bookForm
	pending *library.PendingConfirmation
	status  string

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for year clamping.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStyles overrides the detected styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New returns the UI model over store.
func New(store library.BookStore, opts ...Option) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title, author or year..."
	search.Width = 40

	m := Model{
		store:  store,
		now:    time.Now,
		log:    zap.NewNop(),
		styles: DefaultStyles(),
		search: search,
		create: newBookForm(true),
		edit:   newBookForm(false),
		width:  100,
		height: 30,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.session = library.NewEditSession(m.now)
	m.log = m.log.Named("tui")
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(store library.BookStore, opts ...Option) error {
	p := tea.NewProgram(New(store, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// shelves returns the filtered unread and read lists.
func (m Model) shelves() [2][]library.Book {
	incomplete, complete := library.Partition(library.Filter(m.store.Books(), m.query))
	return [2][]library.Book{incomplete, complete}
}

func (m Model) selected() (library.Book, bool) {
	col := m.shelves()[m.column]
	i := m.cursor[m.column]
	if i < 0 || i >= len(col) {
		return library.Book{}, false
	}
	return col[i], true
}

// clampCursors keeps both cursors inside their lists after a change.
func (m *Model) clampCursors() {
	shelves := m.shelves()
	for c := range m.cursor {
		if m.cursor[c] >= len(shelves[c]) {
			m.cursor[c] = len(shelves[c]) - 1
		}
		if m.cursor[c] < 0 {
			m.cursor[c] = 0
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCreate:
			return m.updateCreate(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()

	case "esc":
		m.query = ""
		m.search.SetValue("")
		m.clampCursors()

	case "a":
		m.create = newBookForm(true)
		m.mode = modeCreate
		m.status = ""
		return m, m.create.setFocus(fieldTitle)

	case "e":
		b, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.session.Open(b)
		m.edit = newBookForm(false)
		m.edit.fill(b)
		m.mode = modeEdit
		m.status = ""
		return m, m.edit.setFocus(fieldTitle)

	case "d":
		b, ok := m.selected()
		if !ok {
			return m, nil
		}
		p, err := m.store.RequestDelete(b.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.pending = &p
		m.mode = modeConfirm

	case "t", " ":
		b, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.ToggleStatus(b.ID)
		if b.IsComplete {
			m.status = fmt.Sprintf("%q moved back to unread", b.Title)
		} else {
			m.status = fmt.Sprintf("%q marked as read", b.Title)
		}
		m.clampCursors()

	case "tab", "left", "right", "h", "l":
		m.column = 1 - m.column
		m.clampCursors()

	case "up", "k":
		if m.cursor[m.column] > 0 {
			m.cursor[m.column]--
		}

	case "down", "j":
		if m.cursor[m.column] < len(m.shelves()[m.column])-1 {
			m.cursor[m.column]++
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.query = ""
		m.mode = modeBrowse
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = library.NormalizeQuery(m.search.Value())
	m.cursor = [2]int{}
	return m, cmd
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "down":
		return m, m.create.setFocus(m.create.focus + 1)
	case "shift+tab", "up":
		return m, m.create.setFocus(m.create.focus - 1)
	case " ":
		if m.create.focus == fieldComplete {
			m.create.complete = !m.create.complete
			return m, nil
		}
	case "enter":
		form := library.CreateForm{
			Title:      m.create.value(fieldTitle),
			Author:     m.create.value(fieldAuthor),
			Year:       m.create.value(fieldYear),
			IsComplete: m.create.complete,
		}
		b, err := form.Submit(m.store, m.now())
		if err != nil {
			m.create.err = formErrorText(err)
			return m, nil
		}
		m.log.Debug("book created from form", zap.Int64("id", b.ID))
		m.status = fmt.Sprintf("Added %q", b.Title)
		m.mode = modeBrowse
		m.clampCursors()
		return m, nil
	}

	cmd := m.create.updateInput(msg)
	if m.create.focus == fieldYear {
		m.create.clampYearInput(m.now().Year())
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Cancel()
		m.mode = modeBrowse
		return m, nil
	case "tab", "down":
		return m, m.edit.setFocus(m.edit.focus + 1)
	case "shift+tab", "up":
		return m, m.edit.setFocus(m.edit.focus - 1)
	case "enter":
		form := library.EditForm{
			Title:  m.edit.value(fieldTitle),
			Author: m.edit.value(fieldAuthor),
			Year:   m.edit.value(fieldYear),
		}
		b, err := form.Submit(m.session, m.store)
		if err != nil {
			m.edit.err = formErrorText(err)
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %q", b.Title)
		m.mode = modeBrowse
		m.clampCursors()
		return m, nil
	}

	cmd := m.edit.updateInput(msg)
	name := m.edit.focusedName()
	if err := m.session.UpdateField(name, m.edit.value(m.edit.focus)); err == nil && name == library.FieldYear {
		// The session may have clamped the year; show what it holds.
		if held, ok := m.session.Current(); ok {
			if v := strconv.Itoa(held.Year); v != strings.TrimSpace(m.edit.value(fieldYear)) {
				m.edit.inputs[fieldYear].SetValue(v)
			}
		}
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var d library.Decision
	switch msg.String() {
	case "y", "Y":
		d = library.Proceed
	case "n", "N", "esc":
		d = library.Abort
	default:
		return m, nil
	}

	removed, err := m.store.ResolveConfirmation(m.pending.Token, d)
	switch {
	case err != nil:
		m.status = err.Error()
	case removed:
		m.status = fmt.Sprintf("Deleted %q", m.pending.Title)
	default:
		m.status = "Delete cancelled"
	}
	m.pending = nil
	m.mode = modeBrowse
	m.clampCursors()
	return m, nil
}

func formErrorText(err error) string {
	var fe *library.FormError
	if errors.As(err, &fe) {
		return fmt.Sprintf("%s is %s", fe.Field, fe.Reason)
	}
	return err.Error()
}

func (m Model) View() string {
	s := m.styles
	var sb strings.Builder

	sb.WriteString(s.Header.Render("Bookshelf"))
	if m.store.MemoryOnly() {
		sb.WriteString("  " + s.Error.Render("storage unavailable: changes are not saved"))
	}
	sb.WriteString("\n\n")

	switch m.mode {
	case modeCreate:
		sb.WriteString(m.create.view(s, "New book", "add to shelf"))
		return sb.String()
	case modeEdit:
		sb.WriteString(m.edit.view(s, "Edit book", "save"))
		return sb.String()
	case modeConfirm:
		body := fmt.Sprintf("Delete %q?\n\n", m.pending.Title) +
			s.Help.Render("y delete • n cancel")
		sb.WriteString(s.Modal.BorderForeground(s.Theme.Danger).Render(body))
		return sb.String()
	}

	if m.mode == modeSearch || m.query != "" {
		sb.WriteString(m.search.View() + "\n\n")
	}

	colWidth := (m.width - 6) / 2
	if colWidth < 24 {
		colWidth = 24
	}
	shelves := m.shelves()
	titles := [2]string{"Unread", "Read"}
	cols := make([]string, 2)
	for c := range shelves {
		cols[c] = m.renderColumn(titles[c], shelves[c], c, colWidth)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols[0], " ", cols[1]))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(s.Status.Render(m.status) + "\n")
	}
	sb.WriteString(s.Help.Render("a add • e edit • d delete • t toggle read • / search • tab switch shelf • q quit"))
	return sb.String()
}

func (m Model) renderColumn(title string, books []library.Book, col, width int) string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.ColumnTitle.Render(fmt.Sprintf("%s (%d)", title, len(books))))
	sb.WriteString("\n")

	if len(books) == 0 {
		sb.WriteString(s.Muted.Render("No books here."))
	}
	for i, b := range books {
		card := s.BookTitle.Render(b.Title) + "\n" +
			s.Muted.Render("Author: "+b.Author) + "\n" +
			s.Muted.Render("Year: "+strconv.Itoa(b.Year))
		if col == m.column && i == m.cursor[col] {
			sb.WriteString(s.Selected.Render(card))
		} else {
			sb.WriteString(s.Card.Render(card))
		}
		sb.WriteString("\n")
	}

	style := s.Column
	if col == m.column {
		style = s.ActiveColumn
	}
	return style.Width(width).Render(sb.String())
}
