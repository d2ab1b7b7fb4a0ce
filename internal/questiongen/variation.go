package questiongen

import (
	"context"
	"strconv"
	"strings"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/prompts"
)

// VariationTopic returns "{base} - {subtopic}" with a subtopic the previous
// questions have not covered, or "{base} (Variation n)" when the model call
// fails or yields nothing usable.
func (g *LLMGenerator) VariationTopic(ctx context.Context, base string, previous []string, lang i18n.Lang) string {
	fallback := i18n.T(lang, i18n.MsgVariation, base, len(previous)+1)

	stripped := make([]string, 0, len(previous))
	for _, p := range previous {
		stripped = append(stripped, StripTopicPrefix(p))
	}

	raw, err := g.completer.Complete(ctx, PurposeVariation, prompts.Variation(lang, base, strings.Join(stripped, "\n")))
	if err != nil {
		g.log.Warn("variation topic failed", "topic", base, "error", err)
		return fallback
	}

	sub := cleanSubtopic(raw)
	if sub == "" {
		return fallback
	}
	return base + " - " + sub
}

// cleanSubtopic keeps the first non-empty line, drops quotes and a trailing
// number the model may append, and removes list markers.
func cleanSubtopic(raw string) string {
	var line string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if strings.HasPrefix(line, "{") {
		return ""
	}
	line = strings.TrimLeft(line, "-•* ")
	line = stripQuotes(line)

	fields := strings.Fields(line)
	if n := len(fields); n > 1 {
		tail := strings.Trim(fields[n-1], "()[]#.,:")
		if v, err := strconv.Atoi(tail); err == nil && v >= 1 && v <= 1000 {
			line = strings.Join(fields[:n-1], " ")
		}
	}
	return strings.TrimRight(strings.TrimSpace(line), ".:,;-")
}
