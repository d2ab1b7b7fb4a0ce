// Package history shows the most recent model calls from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/store"
	"github.com/abhisek/bs2tutor/internal/ui/layout"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// Limit is how many calls one visit loads.
const Limit = 50

type loadedMsg struct {
	events []store.LLMEvent
	err    error
}

// HistoryScreen is a scrollable list of calls. Enter toggles a detail line
// with provider, model and error.
type HistoryScreen struct {
	repo   store.EventRepo
	events []store.LLMEvent
	cursor int
	open   map[int]bool
	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: map[int]bool{}}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{events: events, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.events, s.err, s.loaded = msg.events, msg.err, true
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.events)-1), 0)
		case "enter":
			s.open[s.cursor] = !s.open[s.cursor]
		}
	}
	return s, nil
}

func notice(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return notice(width, theme.Incorrect, "Error: "+s.err.Error())
	case !s.loaded:
		return notice(width, theme.Hint, "Loading history...")
	case len(s.events) == 0:
		return notice(width, theme.Hint, "No model calls yet. Ask a question or start the trainer!")
	}

	visible := max(height-2, 1)
	first := max(s.cursor-visible+1, 0)
	last := min(first+visible, len(s.events))

	lines := []string{""}
	for i := first; i < last; i++ {
		lines = append(lines, s.row(i, width))
		if s.open[i] {
			lines = append(lines, center(width, theme.Hint.Render(detail(s.events[i]))))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *HistoryScreen) row(i, width int) string {
	e := s.events[i]
	marker, mark := "  ", "✓"
	if i == s.cursor {
		marker = "> "
	}
	if !e.Success {
		mark = "✗"
	}
	text := fmt.Sprintf("%s%s  %-18s  %5d in  %5d out  %6d ms  %s",
		marker, e.Timestamp.Local().Format("Jan 02 15:04:05"), e.Purpose,
		e.InputTokens, e.OutputTokens, e.LatencyMs, mark)

	style := theme.Body
	switch {
	case i == s.cursor:
		style = theme.Selected
	case !e.Success:
		style = theme.Incorrect.UnsetBold()
	}
	return center(width, style.Render(text))
}

func detail(e store.LLMEvent) string {
	parts := []string{e.Provider, e.Model}
	if e.ErrorMessage != "" {
		parts = append(parts, e.ErrorMessage)
	}
	return "    " + strings.Join(parts, " · ")
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
