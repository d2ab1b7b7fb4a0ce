package questiongen

import "strings"

// StructuralValidator checks that the question has text, that options use
// keys A-D with non-empty text, and that the correct answers are a subset
// of the options sized for the question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *QuestionSpec, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question is empty")
	}
	if len(q.Options) == 0 {
		return fail("no options")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if !IsOptionKey(o.Key) {
			return fail("option key " + o.Key + " is not one of A-D")
		}
		if seen[o.Key] {
			return fail("duplicate option key " + o.Key)
		}
		seen[o.Key] = true
		if strings.TrimSpace(o.Text) == "" {
			return fail("option " + o.Key + " is empty")
		}
	}

	if len(q.CorrectAnswers) == 0 {
		return fail("correct_answers is empty")
	}
	for _, k := range q.CorrectAnswers {
		if !seen[k] {
			return fail("correct answer " + k + " is not an option")
		}
	}

	qtype := q.Type
	if qtype == "" {
		qtype = input.Type
	}
	switch {
	case qtype == SingleChoice && len(q.CorrectAnswers) != 1:
		return fail("single choice needs exactly one correct answer")
	case qtype == MultipleChoice && len(q.CorrectAnswers) < 2:
		return fail("multiple choice needs at least two correct answers")
	}
	return nil
}
