// Package i18n holds the German and English user-facing strings and
// the language heuristics used by the chat and trainer.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Lang is a supported interface language.
type Lang string

const (
	DE Lang = "de"
	EN Lang = "en"
)

// ParseLang maps a config or flag value to a Lang. Unknown values are German.
func ParseLang(s string) Lang {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english", "englisch":
		return EN
	default:
		return DE
	}
}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	return l == DE || l == EN
}

// T looks up id in lang and formats it with args. Missing English entries
// fall back to German; missing ids render as the id itself.
func T(lang Lang, id MessageID, args ...any) string {
	entry, ok := catalog[id]
	if !ok {
		return string(id)
	}
	msg, ok := entry[lang]
	if !ok {
		msg = entry[DE]
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Localizable is implemented by errors that carry a catalog message.
type Localizable interface {
	error
	MessageID() MessageID
	MessageArgs() []any
}

// Localize renders err for the learner. Errors without a catalog entry are
// reported under the generic processing-error message.
func Localize(err error, lang Lang) string {
	if err == nil {
		return ""
	}
	var loc Localizable
	if errors.As(err, &loc) {
		return T(lang, loc.MessageID(), loc.MessageArgs()...)
	}
	return T(lang, MsgProcessingError, err.Error())
}
