package questiongen

import (
	"context"

	"github.com/abhisek/bs2tutor/internal/i18n"
)

// Generator produces course questions using a completion service.
type Generator interface {
	// Generate produces one validated question for an explicit topic.
	Generate(ctx context.Context, input GenerateInput) (*QuestionSpec, error)

	// GenerateFromRandomTopic samples a chunk from the primary source,
	// derives a topic from it and generates a question for that topic.
	GenerateFromRandomTopic(ctx context.Context, qtype QuestionType, lang i18n.Lang) (*QuestionSpec, error)

	// VariationTopic derives a sub-topic of base not covered by previous.
	// It never fails; on any error it returns a numbered fallback topic.
	VariationTopic(ctx context.Context, base string, previous []string, lang i18n.Lang) string
}
