// Package theme holds the palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: slate background, lecture-slide blue, amber for attention.
var (
	Primary   = lipgloss.Color("#3B82F6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boxed() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
}

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Source   = fg(Secondary)

	Card = boxed().Padding(1, 2)

	// Option rows: cursor, plain, and marked for submission.
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Checked    = fg(Accent).Bold(true)

	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = boxed().Padding(0, 2)

	// Chrome is the header and footer bar.
	Chrome = boxed()
)
