// Package tutor answers free-form course questions from the indexed
// course material, preferring the main script over the rest of the corpus.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/llm"
	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/prompts"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

// PurposeAnswer labels chat completions in the call log.
const PurposeAnswer = "chat-answer"

// minPrimaryDocs is how many main-script chunks are needed before the
// main script alone is used to answer.
const minPrimaryDocs = 2

// insufficientPhrases mark an answer the model could not give from the
// supplied chunks. Matching is case-insensitive and language-independent.
var insufficientPhrases = []string{
	"keine ausreichenden informationen",
	"nicht genügend informationen",
	"keine informationen",
	"nicht genug kontext",
	"kann ich nicht beantworten",
	"nicht vollständig beantworten",
	"nicht in den bereitgestellten informationen",
	"no sufficient information",
	"not enough information",
	"no information",
	"not enough context",
	"cannot answer",
	"cannot fully answer",
	"not in the provided information",
}

// Config holds the chat retrieval settings.
type Config struct {
	K             int
	PrimarySource string
}

// DefaultConfig returns k=5 over the "Hauptskript" source.
func DefaultConfig() Config {
	return Config{K: 5, PrimarySource: "Hauptskript"}
}

// Scope says which part of the corpus an answer was drawn from.
type Scope string

const (
	ScopePrimary Scope = "primary"
	ScopeAll     Scope = "all"
)

// Response is a chat answer with the chunks it was generated from.
type Response struct {
	Lang    i18n.Lang
	Answer  string
	Sources []retrieval.Chunk
	Scope   Scope
}

// Tutor answers questions using a retriever and a completer.
type Tutor struct {
	completer llm.Completer
	retriever retrieval.Retriever
	config    Config
	log       *logger.Logger
}

// New creates a Tutor. Zero fields in cfg take DefaultConfig values.
func New(completer llm.Completer, retriever retrieval.Retriever, cfg Config, log *logger.Logger) *Tutor {
	if log == nil {
		log = logger.Nop()
	}
	def := DefaultConfig()
	if cfg.K <= 0 {
		cfg.K = def.K
	}
	if cfg.PrimarySource == "" {
		cfg.PrimarySource = def.PrimarySource
	}
	return &Tutor{
		completer: completer,
		retriever: retriever,
		config:    cfg,
		log:       log.With("service", "Tutor"),
	}
}

// Ask answers question in its detected language and returns display text
// with a numbered source list. Failures are rendered as a localized error
// message rather than returned.
func (t *Tutor) Ask(ctx context.Context, question string) string {
	lang := i18n.Detect(question)
	resp, err := t.Respond(ctx, question)
	if err != nil {
		return i18n.T(lang, i18n.MsgProcessingError, err.Error())
	}
	return Format(resp)
}

// Respond searches the primary source first. When it yields at least two
// chunks and the model's answer is not flagged insufficient, that answer is
// returned. Otherwise the whole corpus is searched and answered from.
func (t *Tutor) Respond(ctx context.Context, question string) (*Response, error) {
	lang := i18n.Detect(question)
	log := t.log.With("lang", string(lang))

	primary, err := t.retriever.Search(ctx, question, t.config.K, retrieval.ByType(t.config.PrimarySource))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", t.config.PrimarySource, err)
	}
	log.Debug("primary search", "docs", len(primary))

	if len(primary) >= minPrimaryDocs {
		answer, err := t.answer(ctx, lang, question, primary)
		if err != nil {
			return nil, err
		}
		if !IsInsufficient(answer) {
			return &Response{Lang: lang, Answer: answer, Sources: primary, Scope: ScopePrimary}, nil
		}
		log.Info("primary answer insufficient, searching all sources")
	}

	all, err := t.retriever.Search(ctx, question, t.config.K, retrieval.Filter{})
	if err != nil {
		return nil, fmt.Errorf("search all sources: %w", err)
	}
	log.Debug("full search", "docs", len(all))

	answer, err := t.answer(ctx, lang, question, all)
	if err != nil {
		return nil, err
	}
	return &Response{Lang: lang, Answer: answer, Sources: all, Scope: ScopeAll}, nil
}

func (t *Tutor) answer(ctx context.Context, lang i18n.Lang, question string, chunks []retrieval.Chunk) (string, error) {
	return t.completer.Complete(ctx, PurposeAnswer, prompts.Answer(lang, question, chunks))
}

// IsInsufficient reports whether answer admits the sources were not enough.
func IsInsufficient(answer string) bool {
	lower := strings.ToLower(answer)
	for _, p := range insufficientPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Format renders a response as the answer followed by its source list.
func Format(r *Response) string {
	label := i18n.T(r.Lang, i18n.MsgAllSources)
	if r.Scope == ScopePrimary {
		label = i18n.T(r.Lang, i18n.MsgMainScript)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s%s\n\n%s (%s):", i18n.T(r.Lang, i18n.MsgAnswerPrefix), r.Answer, i18n.T(r.Lang, i18n.MsgSources), label)
	unknown := i18n.T(r.Lang, i18n.MsgUnknown)
	for i, c := range r.Sources {
		sourceType, file := c.Metadata.SourceType, c.Metadata.FileName
		if sourceType == "" {
			sourceType = unknown
		}
		if file == "" {
			file = unknown
		}
		fmt.Fprintf(&b, "\n[%d] %s: %s, %s %d", i+1, sourceType, file, i18n.T(r.Lang, i18n.MsgPage), c.Metadata.Page+1)
	}
	return b.String()
}
