package trainer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/ui/components"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

func (t *TrainerScreen) View(width, height int) string {
	inner := max(width-8, 20)

	var body string
	switch t.phase {
	case phaseSetup:
		body = t.renderSetup(inner)
	case phaseGenerating:
		body = lipgloss.NewStyle().
			Width(inner).
			Align(lipgloss.Center).
			Render("\n\n" + t.spinner.View() + " " + i18n.T(t.lang, i18n.MsgGenerating))
	case phaseQuestion:
		body = t.renderQuestion(inner)
	case phaseDone:
		msg := i18n.T(t.lang, i18n.MsgAllAnswered)
		if t.turn != nil && t.turn.Message != "" {
			msg = t.turn.Message
		}
		body = theme.Title.Width(inner).Render("\n\n" + msg)
	}

	return lipgloss.NewStyle().Padding(1, 4).Height(height).Render(body)
}

func (t *TrainerScreen) renderSetup(width int) string {
	var b strings.Builder

	field := func(f setupField, label, value string) {
		prefix := "  "
		style := theme.Unselected
		if t.field == f {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix+label+": ") + value + "\n\n")
	}

	field(fieldType, "Fragetyp / Question type", choice(t.qtype.Label(t.lang), t.field == fieldType))
	field(fieldLanguage, "Sprache / Language", choice(strings.ToUpper(string(t.lang)), t.field == fieldLanguage))
	field(fieldCount, "Anzahl / Count", t.count.View())
	field(fieldTopic, "Thema / Topic", t.topic.View())

	if t.errMsg != "" {
		b.WriteString(theme.Incorrect.Width(width).Render(t.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func choice(value string, focused bool) string {
	if focused {
		return theme.Checked.Render("◂ " + value + " ▸")
	}
	return theme.Body.Render(value)
}

func (t *TrainerScreen) renderQuestion(width int) string {
	q := t.sess.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder
	bar := components.NewProgressBar(t.sess.ProgressLabel(), t.sess.Index+1, len(t.sess.Queue), min(width, 60))
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(q.Type.Label(t.lang)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(width).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(t.choices.View())

	if t.eval != nil {
		style := theme.Incorrect
		if t.eval.Correct {
			style = theme.Correct
		}
		b.WriteString("\n")
		b.WriteString(style.Width(width).Render(t.eval.Feedback))
		b.WriteString("\n")
		if t.eval.ShouldAdvance {
			b.WriteString("\n")
			b.WriteString(sourceLine(q, t.lang))
			b.WriteString("\n")
			if v := t.next.View(); v != "" {
				b.WriteString("\n" + v)
			}
		}
	}
	return b.String()
}

func sourceLine(q *questiongen.QuestionSpec, lang i18n.Lang) string {
	return theme.Source.Render(q.SourceLine(lang))
}
