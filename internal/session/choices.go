package session

import (
	"slices"
	"strings"

	"github.com/abhisek/bs2tutor/internal/questiongen"
)

// FormatChoices renders options as "A) text" labels in key order.
func FormatChoices(options []questiongen.Option) []string {
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Key+") "+o.Text)
	}
	return labels
}

// ParseSelection maps "A) text" labels back to their option keys. Labels
// without a valid key are ignored.
func ParseSelection(labels []string) []string {
	keys := make([]string, 0, len(labels))
	for _, l := range labels {
		key, _, ok := strings.Cut(l, ")")
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	return NormalizeSelection(keys)
}

// NormalizeSelection upper-cases keys, keeps only A-D and returns them
// sorted without duplicates.
func NormalizeSelection(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToUpper(strings.TrimSpace(k))
		if questiongen.IsOptionKey(k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ToggleSelection applies a key press to the current selection. Single
// choice replaces the selection; multiple choice toggles the key.
func ToggleSelection(selected []string, key string, qtype questiongen.QuestionType) []string {
	key = strings.ToUpper(strings.TrimSpace(key))
	if !questiongen.IsOptionKey(key) {
		return NormalizeSelection(selected)
	}
	if !qtype.Multiple() {
		return []string{key}
	}
	out := make([]string, 0, len(selected)+1)
	removed := false
	for _, k := range NormalizeSelection(selected) {
		if k == key {
			removed = true
			continue
		}
		out = append(out, k)
	}
	if !removed {
		out = append(out, key)
	}
	return NormalizeSelection(out)
}
