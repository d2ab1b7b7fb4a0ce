package questiongen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bs2tutor/internal/i18n"
)

func TestParseQuestionType(t *testing.T) {
	for _, s := range []string{"sc", "SC", "single_choice", "single"} {
		got, err := ParseQuestionType(s)
		require.NoError(t, err, s)
		assert.Equal(t, SingleChoice, got)
	}
	for _, s := range []string{"mc", "multiple-choice", ""} {
		got, err := ParseQuestionType(s)
		require.NoError(t, err, s)
		assert.Equal(t, MultipleChoice, got)
	}
	_, err := ParseQuestionType("essay")
	assert.Error(t, err)
}

func TestQuestionSpec_SourceLine(t *testing.T) {
	q := &QuestionSpec{Source: Source{Type: "Hauptskript", File: "bs2.pdf", Page: 0}}
	assert.Equal(t, "Quelle: Hauptskript (bs2.pdf, Seite 1)", q.SourceLine(i18n.DE))

	q.Source = Source{Page: 9}
	assert.Equal(t, "Source: "+i18n.T(i18n.EN, i18n.MsgUnknown)+" ("+i18n.T(i18n.EN, i18n.MsgUnknown)+", Page 10)", q.SourceLine(i18n.EN))
}
