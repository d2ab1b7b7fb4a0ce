// Package layout draws the frame around the active screen.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// Smallest terminal the option lists and chat history fit into.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage centers the resize request in the whole terminal.
func RenderMinSizeMessage(lang i18n.Lang, width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(i18n.T(lang, i18n.MsgTooSmall, MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// RenderHeader puts the app name left, the screen title in the middle and
// status (e.g. quiz progress) right, each in a third of the bar.
func RenderHeader(title, status string, width int) string {
	inner := max(width-2, 0)
	side := inner / 3
	mid := inner - 2*side

	left := lipgloss.NewStyle().Width(side).Foreground(theme.Primary).Bold(true).Render(" BS2 Tutor")
	center := lipgloss.NewStyle().Width(mid).Align(lipgloss.Center).Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Foreground(theme.Accent).Render(status + " ")

	return theme.Chrome.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return theme.Chrome.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, stretching the content
// to whatever height the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
