package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/abhisek/bs2tutor/internal/ui/layout"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

const maxQuestionWidth = 60

// SummaryScreen is shown once a trainer round ends: time taken, score and
// one line per question.
type SummaryScreen struct {
	summary session.Summary
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
)

func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string {
	return i18n.T(s.summary.Language, i18n.MsgResults)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "H", Description: "Home"},
	}
}

// Update: enter goes back to the trainer setup, h straight home.
func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	var nav tea.Msg
	switch key.String() {
	case "enter":
		nav = router.PopScreenMsg{}
	case "h":
		nav = router.PopToRootMsg{}
	default:
		return s, nil
	}
	return s, func() tea.Msg { return nav }
}

func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *SummaryScreen) View(width, height int) string {
	sum, lang := s.summary, s.summary.Language
	line := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}
	rule := strings.Repeat("─", max(min(width-8, 60), 0))

	rows := []string{
		line(theme.Title, i18n.T(lang, i18n.MsgSummaryTitle)),
		"",
		line(theme.Hint.UnsetItalic(), i18n.T(lang, i18n.MsgDuration, clock(sum.Duration))),
		"",
		line(theme.Body, i18n.T(lang, i18n.MsgSummaryStats, sum.Answered, sum.Correct, sum.FirstTry, sum.Accuracy()*100)),
		"",
		line(theme.Hint.UnsetItalic(), i18n.T(lang, i18n.MsgResults)),
		line(lipgloss.NewStyle().Foreground(theme.Border), rule),
		"",
	}
	for i, r := range sum.Results {
		mark, style := "✓", theme.Correct
		if !r.Correct {
			mark, style = "✗", theme.Incorrect
		}
		rows = append(rows, line(style, fmt.Sprintf("%s %d. %s    %s", mark, i+1,
			headline(r.Question), i18n.T(lang, i18n.MsgAttempts, r.Attempts, sum.MaxAttempts))))
	}
	return strings.Join(rows, "\n")
}

// headline is the first line of the question text without the topic
// prefix, cut to maxQuestionWidth runes.
func headline(q *questiongen.QuestionSpec) string {
	if q == nil {
		return ""
	}
	text := strings.TrimSpace(questiongen.StripTopicPrefix(q.Text))
	text, _, _ = strings.Cut(text, "\n")
	if r := []rune(text); len(r) > maxQuestionWidth {
		text = string(r[:maxQuestionWidth-1]) + "…"
	}
	return text
}
