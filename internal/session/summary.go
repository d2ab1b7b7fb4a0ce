package session

import (
	"time"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
)

// Result is the outcome of one question once it was answered correctly or
// its attempts ran out.
type Result struct {
	Question *questiongen.QuestionSpec
	Attempts int
	Correct  bool
}

// Summary aggregates the results of the current queue.
type Summary struct {
	SessionID   string
	Language    i18n.Lang
	Total       int
	Answered    int
	Correct     int
	FirstTry    int
	MaxAttempts int
	Duration    time.Duration
	Results     []Result
}

// Accuracy is Correct over Answered, or zero before any answer.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Summary reports how the learner did on the current queue so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID:   s.ID,
		Language:    s.Language,
		Total:       len(s.Queue),
		Answered:    len(s.results),
		MaxAttempts: s.MaxAttempts,
		Results:     append([]Result(nil), s.results...),
	}
	if !s.started.IsZero() {
		sum.Duration = s.now().Sub(s.started)
	}
	for _, r := range s.results {
		if !r.Correct {
			continue
		}
		sum.Correct++
		if r.Attempts == 1 {
			sum.FirstTry++
		}
	}
	return sum
}
