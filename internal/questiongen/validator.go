package questiongen

import "fmt"

// Validator rejects parsed questions that cannot be shown as-is. It must
// not keep state between calls; one instance serves concurrent generations.
type Validator interface {
	Name() string
	Validate(q *QuestionSpec, input GenerateInput) *ValidationError
}

// ValidationError is a rejected question. Retryable means a fresh
// generation has a fair chance of passing.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s check failed: %s", e.Validator, e.Message)
}

// firstFailure runs vs in order and stops at the first rejection.
func firstFailure(vs []Validator, q *QuestionSpec, input GenerateInput) *ValidationError {
	for _, v := range vs {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
