package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Language:    i18n.DE,
		Duration:    95 * time.Second,
		Total:       2,
		Answered:    2,
		Correct:     1,
		FirstTry:    1,
		MaxAttempts: 3,
		Results: []session.Result{
			{
				Question: &questiongen.QuestionSpec{Text: "Thema: OLAP\n\nWelche Aussagen zu OLAP treffen zu?"},
				Attempts: 1,
				Correct:  true,
			},
			{
				Question: &questiongen.QuestionSpec{Text: "Was leistet ein ERP-System?"},
				Attempts: 3,
			},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Ergebnisse" {
		t.Errorf("Title = %q, want %q", s.Title(), "Ergebnisse")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(120, 30)
	for _, want := range []string{
		"Runde abgeschlossen!",
		"Dauer: 1:35",
		"Richtig: 1",
		"Quote: 50%",
		"✓ 1. Welche Aussagen zu OLAP treffen zu?",
		"✗ 2. Was leistet ein ERP-System?    3/3 Versuche",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Thema:") {
		t.Error("expected topic prefix to be stripped")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Home(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestHeadline_Truncates(t *testing.T) {
	q := &questiongen.QuestionSpec{Text: strings.Repeat("ä", 80) + "\nzweite Zeile"}
	got := headline(q)
	if n := len([]rune(got)); n != maxQuestionWidth {
		t.Errorf("headline has %d runes, want %d", n, maxQuestionWidth)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("headline = %q, want ellipsis", got)
	}
}
