package session

import (
	"slices"
	"strings"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
)

// Evaluation is the outcome of one answer attempt.
type Evaluation struct {
	Feedback string

	// Attempts is the attempt count including this one.
	Attempts int

	Correct bool

	// ShouldAdvance is set when the answer was correct or no attempts remain.
	ShouldAdvance bool
}

// Evaluate checks selected against current.CorrectAnswers by exact set
// equality. It has no side effects; callers store Attempts and call
// Advance when ShouldAdvance is set.
func Evaluate(selected []string, current *questiongen.QuestionSpec, attempts, maxAttempts int, hasNext bool, lang i18n.Lang) Evaluation {
	keys := NormalizeSelection(selected)
	correctSet := NormalizeSelection(current.CorrectAnswers)

	ev := Evaluation{Attempts: attempts + 1}
	ev.Correct = slices.Equal(keys, correctSet)
	ev.ShouldAdvance = ev.Correct || ev.Attempts >= maxAttempts

	var b strings.Builder
	if len(keys) == 0 {
		b.WriteString(i18n.T(lang, i18n.MsgYourAnswer, i18n.T(lang, i18n.MsgNoSelection)))
	} else {
		b.WriteString(i18n.T(lang, i18n.MsgYourAnswer, strings.Join(keys, ", ")))
	}

	switch {
	case ev.Correct:
		b.WriteString(i18n.T(lang, i18n.MsgCorrect))
	case ev.ShouldAdvance:
		b.WriteString(i18n.T(lang, i18n.MsgRevealWrong, strings.Join(correctSet, ", ")))
	default:
		b.WriteString(i18n.T(lang, i18n.MsgWrongAttempt, ev.Attempts, maxAttempts))
	}

	if ev.ShouldAdvance {
		if hasNext {
			b.WriteString(i18n.T(lang, i18n.MsgProceed))
		} else {
			b.WriteString(i18n.T(lang, i18n.MsgSessionComplete))
		}
	}
	ev.Feedback = b.String()
	return ev
}
