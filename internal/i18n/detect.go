package i18n

import (
	"strings"
	"unicode"
)

var germanIndicators = wordSet(
	"der", "die", "das", "und", "ist", "in", "zu", "den", "für", "auf", "mit", "sich",
	"des", "ein", "eine", "einen", "dem", "nicht", "von", "es", "ich", "du", "wir",
	"sie", "ihr", "mir", "mich", "dir", "dich", "was", "wie", "wer", "wo", "warum",
	"wieso", "weshalb", "welche", "welcher", "welches", "kann", "könnte", "würde",
	"möchte", "bitte", "danke", "hallo", "tschüss", "unter", "über", "neben",
	"zwischen", "vor", "nach", "bei", "seit", "während", "wegen", "trotz", "durch",
	"gegen", "ohne", "um", "herum", "entlang", "bis", "ab", "aus", "außer",
	"gegenüber", "gemäß", "laut", "zufolge", "entsprechend", "statt", "anstatt",
	"anstelle", "außerhalb", "innerhalb", "oberhalb", "unterhalb", "diesseits",
	"jenseits", "beiderseits", "abseits", "unweit",
)

// Question words that mark German on their own.
var germanQuestionWords = wordSet("wie", "was", "warum", "wieso", "weshalb", "welche")

// Detect guesses whether text is German or English. Text is German when it
// has more than two indicator words, any umlaut or ß, or a German question
// word. Everything else is English.
func Detect(text string) Lang {
	lower := strings.ToLower(text)
	if strings.ContainsAny(lower, "äöüß") {
		return DE
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	count := 0
	for _, w := range words {
		if _, ok := germanQuestionWords[w]; ok {
			return DE
		}
		if _, ok := germanIndicators[w]; ok {
			count++
		}
	}
	if count > 2 {
		return DE
	}
	return EN
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
