package questiongen

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/bs2tutor/internal/llm"
	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/prompts"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

// Purpose labels attached to every completion for the call log.
const (
	PurposeQuestion   = "question-gen"
	PurposeValidation = "answer-validation"
	PurposeTopic      = "topic-extraction"
	PurposeVariation  = "topic-variation"
)

// LLMGenerator implements Generator on top of a retriever and a completer.
type LLMGenerator struct {
	completer llm.Completer
	retriever retrieval.Retriever
	config    Config
	log       *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an LLMGenerator. Zero-valued numeric fields in cfg take the
// DefaultConfig values.
func New(completer llm.Completer, retriever retrieval.Retriever, cfg Config, log *logger.Logger) *LLMGenerator {
	if log == nil {
		log = logger.Nop()
	}
	def := DefaultConfig()
	if cfg.K <= 0 {
		cfg.K = def.K
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.MaxUniqueAttempts <= 0 {
		cfg.MaxUniqueAttempts = def.MaxUniqueAttempts
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = def.SimilarityThreshold
	}
	if cfg.RandomPool <= 0 {
		cfg.RandomPool = def.RandomPool
	}
	if cfg.MinPool <= 0 {
		cfg.MinPool = def.MinPool
	}
	if cfg.PrimarySource == "" {
		cfg.PrimarySource = def.PrimarySource
	}
	if cfg.TopicMaxLen <= 0 {
		cfg.TopicMaxLen = def.TopicMaxLen
	}
	if cfg.FallbackTopic == "" {
		cfg.FallbackTopic = def.FallbackTopic
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x62733274))
	}

	return &LLMGenerator{
		completer: completer,
		retriever: retriever,
		config:    cfg,
		log:       log.With("service", "QuestionGenerator"),
		rng:       rng,
	}
}

// Generate retrieves chunks for the topic, generates a question from one of
// the top-ranked chunks, checks its answers in a second pass and regenerates
// from a different chunk while it repeats a previous question.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*QuestionSpec, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return nil, &TopicEmptyError{}
	}
	input.Topic = topic
	if input.Type == "" {
		input.Type = MultipleChoice
	}

	docs := g.search(ctx, topic, g.config.K, retrieval.ByType(g.config.PrimarySource))
	if len(docs) == 0 {
		return nil, &NoDocumentsError{Query: topic, SourceType: g.config.PrimarySource}
	}

	used := make(map[int]bool, g.config.MaxUniqueAttempts)
	var last *QuestionSpec
	for attempt := 1; attempt <= g.config.MaxUniqueAttempts; attempt++ {
		idx := g.pickChunk(len(docs), used)
		used[idx] = true

		q, err := g.generateFromChunk(ctx, input, docs[idx])
		if err != nil {
			if last != nil {
				g.log.Warn("regeneration failed, keeping previous attempt", "topic", topic, "attempt", attempt, "error", err)
				return last, nil
			}
			return nil, err
		}
		last = q

		if IsUnique(q.Text, input.PreviousQuestions, g.config.SimilarityThreshold) {
			return q, nil
		}
		g.log.Debug("question too similar to a previous one", "topic", topic, "attempt", attempt)
	}

	g.log.Info("uniqueness attempts exhausted, accepting last question", "topic", topic)
	return last, nil
}

func (g *LLMGenerator) generateFromChunk(ctx context.Context, input GenerateInput, chunk retrieval.Chunk) (*QuestionSpec, error) {
	prompt := prompts.Question(prompts.QuestionInput{
		Lang:           input.Language,
		Topic:          input.Topic,
		MultipleChoice: input.Type.Multiple(),
		Context:        chunk.Content,
	})

	raw, err := g.completer.Complete(ctx, PurposeQuestion, prompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	q, err := parseQuestion(raw)
	if err != nil {
		g.log.Debug("unusable generation response", "error", err)
		return nil, err
	}
	q.Type = input.Type
	q.Topic = input.Topic
	q.Source = Source{
		Type: chunk.Metadata.SourceType,
		File: chunk.Metadata.FileName,
		Page: chunk.Metadata.Page,
	}

	if verr := firstFailure(g.config.Validators, q, input); verr != nil {
		return nil, &JSONParseError{Response: raw, Err: verr}
	}

	if err := g.validateAnswers(ctx, input, chunk, q); err != nil {
		g.log.Warn("keeping unvalidated answers", "error", err)
	}
	return q, nil
}

// validateAnswers asks the model to re-derive the correct answers from the
// chunk. A usable result replaces q.CorrectAnswers; anything else leaves
// them unchanged and is reported as a ValidationUnavailableError.
func (g *LLMGenerator) validateAnswers(ctx context.Context, input GenerateInput, chunk retrieval.Chunk, q *QuestionSpec) error {
	prompt := prompts.Validation(input.Language, chunk.Content, q.Text, q.OptionMap(), q.CorrectAnswers)

	raw, err := g.completer.Complete(ctx, PurposeValidation, prompt)
	if err != nil {
		return &ValidationUnavailableError{Err: err}
	}
	answers, err := parseValidation(raw)
	if err != nil {
		return &ValidationUnavailableError{Err: err}
	}
	q.Validated = true

	if len(answers) == 0 {
		g.log.Debug("validation returned no usable keys, keeping original answers")
		return nil
	}

	candidate := *q
	candidate.CorrectAnswers = answers
	if verr := firstFailure(g.config.Validators, &candidate, input); verr != nil {
		g.log.Info("validated answers rejected, keeping original", "validated", answers, "original", q.CorrectAnswers, "reason", verr.Message)
		return nil
	}

	if !slices.Equal(answers, q.CorrectAnswers) {
		g.log.Info("validation corrected answers", "original", q.CorrectAnswers, "validated", answers)
	}
	q.CorrectAnswers = answers
	return nil
}

// search queries the retriever, turning failures into an empty result.
func (g *LLMGenerator) search(ctx context.Context, query string, k int, filter retrieval.Filter) []retrieval.Chunk {
	docs, err := g.retriever.Search(ctx, query, k, filter)
	if err != nil {
		g.log.Warn("retrieval failed", "query", query, "source_type", filter.SourceType, "error", err)
		return nil
	}
	return docs
}

// pickChunk chooses the index of the next chunk to generate from. Fresh
// chunks are drawn at random from the top TopN when at least TopN exist,
// otherwise the best unused one is taken. Once every chunk has been used,
// selection starts over.
func (g *LLMGenerator) pickChunk(n int, used map[int]bool) int {
	limit := 1
	if n >= g.config.TopN {
		limit = g.config.TopN
	}

	pool := make([]int, 0, limit)
	for i := 0; i < limit; i++ {
		if !used[i] {
			pool = append(pool, i)
		}
	}
	if len(pool) > 0 {
		if len(pool) == 1 {
			return pool[0]
		}
		return pool[g.intN(len(pool))]
	}

	for i := limit; i < n; i++ {
		if !used[i] {
			return i
		}
	}
	if limit > 1 {
		return g.intN(limit)
	}
	return 0
}

func (g *LLMGenerator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}
