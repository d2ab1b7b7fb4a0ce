package questiongen

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/prompts"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

// GenerateFromRandomTopic samples one chunk uniformly from a broad fetch of
// the primary source, extracts a topic from it and generates a question for
// that topic. The returned text is prefixed with the topic line.
func (g *LLMGenerator) GenerateFromRandomTopic(ctx context.Context, qtype QuestionType, lang i18n.Lang) (*QuestionSpec, error) {
	pool := g.search(ctx, "", g.config.RandomPool, retrieval.ByType(g.config.PrimarySource))
	if len(pool) < g.config.MinPool {
		g.log.Debug("primary source pool too small, fetching unfiltered", "size", len(pool))
		if all := g.search(ctx, "", g.config.RandomPool, retrieval.Filter{}); len(all) > len(pool) {
			pool = all
		}
	}
	if len(pool) == 0 {
		return nil, &NoDocumentsError{Random: true}
	}

	chunk := pool[g.intN(len(pool))]
	topic := g.extractTopic(ctx, chunk.Content, lang)
	g.log.Debug("extracted topic", "topic", topic, "file", chunk.Metadata.FileName, "page", chunk.Metadata.Page)

	q, err := g.Generate(ctx, GenerateInput{Topic: topic, Type: qtype, Language: lang})
	if err != nil {
		return nil, err
	}
	q.Text = i18n.T(lang, i18n.MsgTopicPrefix, topic) + q.Text
	return q, nil
}

// extractTopic asks the model for a topic. Any failure yields the fallback.
func (g *LLMGenerator) extractTopic(ctx context.Context, content string, lang i18n.Lang) string {
	raw, err := g.completer.Complete(ctx, PurposeTopic, prompts.TopicExtraction(lang, content))
	if err != nil {
		g.log.Warn("topic extraction failed", "error", err)
		return g.config.FallbackTopic
	}
	topic := CleanTopic(raw, g.config.TopicMaxLen)
	if topic == "" {
		return g.config.FallbackTopic
	}
	return topic
}

// CleanTopic strips a leading "Topic:"/"Thema:" label and quote characters
// and caps the result at maxLen runes.
func CleanTopic(raw string, maxLen int) string {
	t := strings.TrimSpace(raw)
	for _, label := range topicLabels {
		if len(t) >= len(label) && strings.EqualFold(t[:len(label)], label) {
			t = t[len(label):]
			break
		}
	}
	t = stripQuotes(t)
	if maxLen > 0 && utf8.RuneCountInString(t) > maxLen {
		t = strings.TrimSpace(string([]rune(t)[:maxLen]))
	}
	return t
}

var quoteReplacer = strings.NewReplacer(`"`, "", "'", "", "„", "", "“", "", "”", "", "‚", "", "‘", "", "’", "", "*", "")

func stripQuotes(s string) string {
	return strings.TrimSpace(quoteReplacer.Replace(s))
}
