// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme of the shelf UI.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Danger     lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1f2937"),
		Primary:    lipgloss.Color("#2563eb"), // blue-600
		Accent:     lipgloss.Color("#16a34a"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#d1d5db"),
		Danger:     lipgloss.Color("#dc2626"),
	}
}

func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f3f4f6"),
		Primary:    lipgloss.Color("#60a5fa"),
		Accent:     lipgloss.Color("#4ade80"),
		Muted:      lipgloss.Color("#9ca3af"),
		Border:     lipgloss.Color("#374151"),
		Danger:     lipgloss.Color("#f87171"),
		IsDark:     true,
	}
}

// ThemeByName returns the named theme; anything but "light" or "dark"
// falls back to DetectTheme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}
	return DetectTheme()
}

// DetectTheme looks at COLORFGBG ("fg;bg") and picks dark for the low ANSI
// background indexes.
func DetectTheme() Theme {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) >= 2 {
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles holds the rendered styles for one theme.
type Styles struct {
	Theme Theme

	Header       lipgloss.Style
	ColumnTitle  lipgloss.Style
	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	Card         lipgloss.Style
	Selected     lipgloss.Style
	BookTitle    lipgloss.Style
	Muted        lipgloss.Style
	Modal        lipgloss.Style
	Label        lipgloss.Style
	Error        lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles builds the styles for t.
func NewStyles(t Theme) Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return Styles{
		Theme: t,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(t.Primary).
			Padding(0, 2),
		ColumnTitle:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Column:       column,
		ActiveColumn: column.BorderForeground(t.Primary),
		Card:         lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(t.Accent),
		BookTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Error:  lipgloss.NewStyle().Foreground(t.Danger),
		Status: lipgloss.NewStyle().Foreground(t.Accent),
		Help:   lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// DefaultStyles uses the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
