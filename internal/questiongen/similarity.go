package questiongen

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

var topicLabels = []string{"Topic:", "Thema:"}

// StripTopicPrefix removes a leading "Topic: ..." or "Thema: ..." line from
// a question text. When the label has no line break after it, only the
// label itself is removed.
func StripTopicPrefix(s string) string {
	t := strings.TrimSpace(s)
	for _, label := range topicLabels {
		if len(t) < len(label) || !strings.EqualFold(t[:len(label)], label) {
			continue
		}
		rest := t[len(label):]
		if i := strings.Index(rest, "\n"); i >= 0 {
			return strings.TrimSpace(rest[i+1:])
		}
		return strings.TrimSpace(rest)
	}
	return t
}

// Similarity is the normalized edit-distance ratio of a and b in [0, 1]:
// 1 - distance/maxLen over runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, nil)
	return float64(maxLen-dist) / float64(maxLen)
}

// IsUnique reports whether text is not too similar to any previous question.
// Topic prefixes are ignored on both sides. A ratio equal to threshold is
// still unique; only a strictly greater one rejects.
func IsUnique(text string, previous []string, threshold float64) bool {
	stripped := StripTopicPrefix(text)
	for _, p := range previous {
		if Similarity(stripped, StripTopicPrefix(p)) > threshold {
			return false
		}
	}
	return true
}
