package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/questiongen"
)

// DefaultMaxAttempts is the number of tries a learner gets per question.
const DefaultMaxAttempts = 3

// DefaultQuestionCount is the queue size when BuildInput.Count is unset.
const DefaultQuestionCount = 3

// Output tags which trainer panel the session belongs to.
type Output string

const (
	// OutputAuto sessions generate every question from a random topic.
	OutputAuto Output = "auto"

	// OutputCustom sessions generate questions for a learner-supplied topic.
	OutputCustom Output = "custom"
)

// Config holds the session tunables.
type Config struct {
	MaxAttempts   int
	QuestionCount int
	Language      i18n.Lang
}

// BuildInput describes the queue to generate.
type BuildInput struct {
	Type  questiongen.QuestionType
	Count int

	// Topic is required for OutputCustom and ignored for OutputAuto. When
	// Output is empty it is inferred from whether Topic is set.
	Topic string

	Language i18n.Lang
	Output   Output
}

// Turn is what the trainer shows after building or advancing the queue.
type Turn struct {
	// Question is nil once the queue is exhausted.
	Question *questiongen.QuestionSpec
	Progress string
	Done     bool

	// Message is the end-of-session text when Done is set.
	Message string
}

// Session is the runtime state of one learner's question queue. It is not
// safe for concurrent use.
type Session struct {
	ID           string
	Queue        []*questiongen.QuestionSpec
	Index        int
	Attempts     int
	MaxAttempts  int
	Language     i18n.Lang
	ActiveOutput Output
	QuestionType questiongen.QuestionType
	Topic        string

	gen     questiongen.Generator
	count   int
	log     *logger.Logger
	results []Result
	started time.Time
	now     func() time.Time
}

// New creates an empty session backed by gen.
func New(gen questiongen.Generator, cfg Config, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if !cfg.Language.Valid() {
		cfg.Language = i18n.DE
	}
	return &Session{
		ID:           uuid.NewString(),
		MaxAttempts:  cfg.MaxAttempts,
		Language:     cfg.Language,
		ActiveOutput: OutputAuto,
		QuestionType: questiongen.MultipleChoice,
		gen:          gen,
		count:        cfg.QuestionCount,
		log:          log.With("service", "Session"),
		now:          time.Now,
	}
}

// BuildQueue discards the current queue and generates up to in.Count new
// questions, allowing twice as many generation attempts. Failed attempts
// are dropped. A short queue is accepted; an empty one is
// ErrGenerationFailed.
func (s *Session) BuildQueue(ctx context.Context, in BuildInput) (*Turn, error) {
	if in.Count <= 0 {
		in.Count = s.count
	}
	if in.Type == "" {
		in.Type = questiongen.MultipleChoice
	}
	if in.Language.Valid() {
		s.Language = in.Language
	}
	topic := strings.TrimSpace(in.Topic)
	if in.Output == "" {
		in.Output = OutputAuto
		if topic != "" {
			in.Output = OutputCustom
		}
	}

	s.reset()
	s.ID = uuid.NewString()
	s.started = s.now()
	s.ActiveOutput = in.Output
	s.QuestionType = in.Type
	s.Topic = ""

	if in.Output == OutputCustom {
		if topic == "" {
			return nil, &questiongen.TopicEmptyError{}
		}
		s.Topic = topic
	}

	log := s.log.With("session", s.ID, "output", string(in.Output), "type", string(in.Type))
	budget := 2 * in.Count
	for attempt := 1; attempt <= budget && len(s.Queue) < in.Count; attempt++ {
		if err := ctx.Err(); err != nil {
			s.reset()
			return nil, err
		}

		q, err := s.generateNext(ctx)
		if err != nil {
			log.Debug("discarding failed generation", "attempt", attempt, "error", err)
			continue
		}
		if q == nil || len(q.Options) < 2 {
			log.Debug("discarding question with too few options", "attempt", attempt)
			continue
		}
		s.Queue = append(s.Queue, q)
	}
	if err := ctx.Err(); err != nil {
		s.reset()
		return nil, err
	}

	if len(s.Queue) == 0 {
		log.Warn("no question could be generated", "attempts", budget)
		return nil, ErrGenerationFailed
	}
	if len(s.Queue) < in.Count {
		log.Info("queue shorter than requested", "requested", in.Count, "generated", len(s.Queue))
	}
	return s.turn(), nil
}

func (s *Session) generateNext(ctx context.Context) (*questiongen.QuestionSpec, error) {
	if s.ActiveOutput != OutputCustom {
		return s.gen.GenerateFromRandomTopic(ctx, s.QuestionType, s.Language)
	}

	previous := s.QuestionTexts()
	topic := s.Topic
	if len(previous) > 0 {
		topic = s.gen.VariationTopic(ctx, s.Topic, previous, s.Language)
	}
	return s.gen.Generate(ctx, questiongen.GenerateInput{
		Topic:             topic,
		Type:              s.QuestionType,
		Language:          s.Language,
		PreviousQuestions: previous,
	})
}

// Advance moves to the next question and resets the attempt counter. Past
// the end it returns the end marker and leaves the session untouched.
func (s *Session) Advance() *Turn {
	if s.Index < len(s.Queue) {
		s.Index++
		s.Attempts = 0
	}
	return s.turn()
}

// Current returns the active question, or nil when the queue is exhausted.
func (s *Session) Current() *questiongen.QuestionSpec {
	if s.Index >= len(s.Queue) {
		return nil
	}
	return s.Queue[s.Index]
}

// HasNext reports whether another question follows the current one.
func (s *Session) HasNext() bool {
	return s.Index+1 < len(s.Queue)
}

// Done reports whether every queued question has been passed.
func (s *Session) Done() bool {
	return s.Index >= len(s.Queue)
}

// ProgressLabel renders "Frage i von n" in the session language.
func (s *Session) ProgressLabel() string {
	if s.Done() {
		return ""
	}
	return i18n.T(s.Language, i18n.MsgProgress, s.Index+1, len(s.Queue))
}

// QuestionTexts returns the texts of all queued questions in order.
func (s *Session) QuestionTexts() []string {
	texts := make([]string, 0, len(s.Queue))
	for _, q := range s.Queue {
		texts = append(texts, q.Text)
	}
	return texts
}

// Submit evaluates selected against the current question and records the
// new attempt count.
func (s *Session) Submit(selected []string) Evaluation {
	current := s.Current()
	if current == nil {
		return Evaluation{Feedback: i18n.T(s.Language, i18n.MsgAllAnswered)}
	}
	ev := Evaluate(selected, current, s.Attempts, s.MaxAttempts, s.HasNext(), s.Language)
	s.Attempts = ev.Attempts
	if ev.ShouldAdvance && len(s.results) == s.Index {
		s.results = append(s.results, Result{Question: current, Attempts: ev.Attempts, Correct: ev.Correct})
	}
	s.log.Debug("answer evaluated", "session", s.ID, "index", s.Index, "correct", ev.Correct, "attempts", ev.Attempts)
	return ev
}

func (s *Session) turn() *Turn {
	if q := s.Current(); q != nil {
		return &Turn{Question: q, Progress: s.ProgressLabel()}
	}
	return &Turn{Done: true, Message: i18n.T(s.Language, i18n.MsgAllAnswered)}
}

func (s *Session) reset() {
	s.Queue = nil
	s.results = nil
	s.Index = 0
	s.Attempts = 0
}
