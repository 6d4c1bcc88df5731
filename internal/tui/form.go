// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldYear
	fieldComplete // create form only
)

var fieldNames = [...]string{library.FieldTitle, library.FieldAuthor, library.FieldYear}

// bookForm is the input state shared by the create and edit dialogs.
type bookForm struct {
	inputs      [3]textinput.Model
	complete    bool
	hasComplete bool
	focus       int
	err         string
}

func newBookForm(hasComplete bool) bookForm {
	f := bookForm{hasComplete: hasComplete}
	placeholders := [3]string{"Title", "Author", "Year"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldYear].CharLimit = 6
	f.inputs[fieldYear].Width = 8
	return f
}

func (f *bookForm) fieldCount() int {
	if f.hasComplete {
		return 4
	}
	return 3
}

func (f *bookForm) setFocus(i int) tea.Cmd {
	n := f.fieldCount()
	f.focus = (i%n + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *bookForm) value(i int) string {
	return f.inputs[i].Value()
}

// focusedName returns the library field name of the focused text input, or
// "" on the checkbox.
func (f *bookForm) focusedName() string {
	if f.focus >= len(fieldNames) {
		return ""
	}
	return fieldNames[f.focus]
}

// updateInput feeds msg to the focused text input.
func (f *bookForm) updateInput(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// clampYearInput rewrites the year input when it names a year past
// current, the way the create form's number input is capped while typing.
func (f *bookForm) clampYearInput(current int) {
	raw := strings.TrimSpace(f.inputs[fieldYear].Value())
	year, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	if clamped := library.ClampYear(year, current); clamped != year {
		f.inputs[fieldYear].SetValue(strconv.Itoa(clamped))
	}
}

func (f *bookForm) fill(b library.Book) {
	f.inputs[fieldTitle].SetValue(b.Title)
	f.inputs[fieldAuthor].SetValue(b.Author)
	f.inputs[fieldYear].SetValue(strconv.Itoa(b.Year))
	f.complete = b.IsComplete
}

func (f *bookForm) view(s Styles, heading, submit string) string {
	var sb strings.Builder
	sb.WriteString(s.ColumnTitle.Render(heading))
	sb.WriteString("\n")

	labels := [3]string{"Title", "Author", "Year"}
	for i, in := range f.inputs {
		marker := "  "
		if f.focus == i {
			marker = "> "
		}
		sb.WriteString(marker + s.Label.Render(labels[i]) + "\n")
		sb.WriteString("  " + in.View() + "\n\n")
	}

	if f.hasComplete {
		marker := "  "
		if f.focus == fieldComplete {
			marker = "> "
		}
		box := "[ ]"
		if f.complete {
			box = "[x]"
		}
		sb.WriteString(marker + box + " Already read\n\n")
	}

	if f.err != "" {
		sb.WriteString(s.Error.Render(f.err) + "\n\n")
	}
	sb.WriteString(s.Help.Render("enter " + submit + " • tab next field • esc cancel"))
	return s.Modal.Render(sb.String())
}
