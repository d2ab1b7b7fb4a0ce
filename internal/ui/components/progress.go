package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// ProgressBar shows how far through the question queue the learner is.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a bar for step current (1-based) of total.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Current: current,
		Total:   total,
		Width:   width,
	}
}

// Fraction is Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the label followed by the bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	return result
}
