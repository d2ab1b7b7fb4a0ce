package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/bs2tutor/internal/i18n"
)

// QuestionType selects how many options may be correct.
type QuestionType string

const (
	// SingleChoice questions have exactly one correct option.
	SingleChoice QuestionType = "single_choice"

	// MultipleChoice questions have at least two correct options.
	MultipleChoice QuestionType = "multiple_choice"
)

// ParseQuestionType accepts the long names as well as "sc" and "mc".
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sc", "single", "single_choice", "single-choice":
		return SingleChoice, nil
	case "mc", "multiple", "multiple_choice", "multiple-choice", "":
		return MultipleChoice, nil
	default:
		return "", fmt.Errorf("unknown question type %q (want sc or mc)", s)
	}
}

// Multiple reports whether more than one option may be correct.
func (t QuestionType) Multiple() bool {
	return t != SingleChoice
}

// Label is the display name, e.g. "Multiple Choice (MC)".
func (t QuestionType) Label(lang i18n.Lang) string {
	if t == SingleChoice {
		return i18n.T(lang, i18n.MsgSingleChoice)
	}
	return i18n.T(lang, i18n.MsgMultipleChoice)
}

// OptionKeys are the only keys an option may use, in display order.
var OptionKeys = []string{"A", "B", "C", "D"}

// IsOptionKey reports whether k is one of OptionKeys.
func IsOptionKey(k string) bool {
	for _, o := range OptionKeys {
		if o == k {
			return true
		}
	}
	return false
}

// Option is one answer choice.
type Option struct {
	Key  string
	Text string
}

// Source is the provenance of the chunk a question was generated from.
// Page is zero-based, as stored in the index.
type Source struct {
	Type string
	File string
	Page int
}

// QuestionSpec is one generated question ready for display.
type QuestionSpec struct {
	// Text is the question shown to the learner. Questions generated from a
	// random topic carry a leading "Thema: ..." / "Topic: ..." line.
	Text string

	// Options are ordered by key.
	Options []Option

	// CorrectAnswers is a sorted, non-empty subset of the option keys.
	CorrectAnswers []string

	Type   QuestionType
	Source Source

	// Topic is the topic the question was generated for.
	Topic string

	// Validated is set when the second model pass produced a usable answer set.
	Validated bool
}

// OptionMap returns the options keyed by option key.
func (q *QuestionSpec) OptionMap() map[string]string {
	m := make(map[string]string, len(q.Options))
	for _, o := range q.Options {
		m[o.Key] = o.Text
	}
	return m
}

// HasOption reports whether key is one of the question's options.
func (q *QuestionSpec) HasOption(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// SourceLine renders the provenance as "Quelle: type (file, Seite n)" with
// a one-based page number.
func (q *QuestionSpec) SourceLine(lang i18n.Lang) string {
	typ, file := q.Source.Type, q.Source.File
	if typ == "" {
		typ = i18n.T(lang, i18n.MsgUnknown)
	}
	if file == "" {
		file = i18n.T(lang, i18n.MsgUnknown)
	}
	return i18n.T(lang, i18n.MsgSourceLine, typ, file, q.Source.Page+1)
}

// GenerateInput holds everything needed to generate one question.
type GenerateInput struct {
	// Topic is searched in the primary source and named in the prompt.
	Topic string

	Type     QuestionType
	Language i18n.Lang

	// PreviousQuestions are the texts already queued in this session.
	// A new question too similar to any of them is regenerated.
	PreviousQuestions []string
}
