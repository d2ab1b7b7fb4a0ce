package questiongen

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/abhisek/bs2tutor/internal/llm"
)

// questionOutput is the raw model answer before validation.
type questionOutput struct {
	Question       string            `json:"question"`
	Options        map[string]string `json:"options"`
	CorrectAnswers []string          `json:"correct_answers"`
}

type validationOutput struct {
	CorrectAnswers []string `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
}

// extractJSONObject returns the first balanced {...} span in s that is valid
// JSON. When spans exist but none is valid, the first span is returned with
// ok=false so the caller can report a parse error instead of a missing object.
func extractJSONObject(s string) (obj string, found, ok bool) {
	var first string
	for start := strings.IndexByte(s, '{'); start >= 0; {
		end := matchBrace(s, start)
		if end < 0 {
			break
		}
		cand := s[start : end+1]
		if json.Valid([]byte(cand)) {
			return cand, true, true
		}
		if first == "" {
			first = cand
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	if first != "" {
		return first, true, false
	}
	// An opening brace with nothing closing it after is no object at all.
	if i := strings.IndexByte(s, '{'); i >= 0 && strings.LastIndexByte(s, '}') > i {
		return s[i:], true, false
	}
	return "", false, false
}

// matchBrace returns the index of the brace closing the one at open,
// skipping braces inside JSON strings, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// decodeObject extracts, schema-checks and decodes the JSON object in raw.
func decodeObject(raw string, schema *llm.Schema, out any) error {
	obj, found, ok := extractJSONObject(raw)
	if !found {
		return &MalformedResponseError{Response: raw}
	}
	if !ok {
		var v any
		return &JSONParseError{Response: raw, Err: json.Unmarshal([]byte(obj), &v)}
	}
	if err := llm.ValidateJSON(schema, json.RawMessage(obj)); err != nil {
		return &JSONParseError{Response: raw, Err: err}
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return &JSONParseError{Response: raw, Err: err}
	}
	return nil
}

// parseQuestion turns a generation completion into a QuestionSpec with
// options ordered by key and a sorted, de-duplicated answer set.
func parseQuestion(raw string) (*QuestionSpec, error) {
	var out questionOutput
	if err := decodeObject(raw, QuestionSchema, &out); err != nil {
		return nil, err
	}

	q := &QuestionSpec{Text: strings.TrimSpace(out.Question)}
	for _, k := range OptionKeys {
		if text, ok := out.Options[k]; ok {
			q.Options = append(q.Options, Option{Key: k, Text: strings.TrimSpace(text)})
		}
	}
	q.CorrectAnswers = normalizeKeys(out.CorrectAnswers)
	return q, nil
}

// parseValidation returns the answer keys from a validation completion,
// restricted to A-D.
func parseValidation(raw string) ([]string, error) {
	var out validationOutput
	if err := decodeObject(raw, ValidationSchema, &out); err != nil {
		return nil, err
	}
	return normalizeKeys(out.CorrectAnswers), nil
}

// normalizeKeys upper-cases, drops anything outside A-D, de-duplicates and sorts.
func normalizeKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToUpper(strings.TrimSpace(k))
		if !IsOptionKey(k) || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
