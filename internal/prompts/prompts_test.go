package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

func TestQuestion_ConstrainsFormat(t *testing.T) {
	tests := []struct {
		name     string
		in       QuestionInput
		contains []string
	}{
		{
			name: "de multiple choice",
			in:   QuestionInput{Lang: i18n.DE, Topic: "OLAP", MultipleChoice: true, Context: "OLAP-Würfel"},
			contains: []string{
				"Multiple-Choice-Frage zum Thema: OLAP",
				"mindestens 2 von 4",
				"Alle oben genannten",
				"NUR Informationen aus dem bereitgestellten Kontext",
				"OLAP-Würfel",
				`"correct_answers": ["X", "Y"]`,
			},
		},
		{
			name: "en single choice",
			in:   QuestionInput{Lang: i18n.EN, Topic: "ETL", Context: "Extract, transform, load"},
			contains: []string{
				"single-choice question about: ETL",
				"Only ONE answer must be correct",
				"None of the above",
				`"A": "First option"`,
				`"correct_answers": ["X"]`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Question(tt.in)
			for _, want := range tt.contains {
				assert.Contains(t, p, want)
			}
		})
	}
}

func TestAnswer_NumbersSourcesWithOneBasedPages(t *testing.T) {
	chunks := []retrieval.Chunk{
		{Content: "Inhalt eins", Metadata: retrieval.Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 0}},
		{Content: "Inhalt zwei", Metadata: retrieval.Metadata{Page: 9}},
	}

	de := Answer(i18n.DE, "Was ist ERP?", chunks)
	assert.Contains(t, de, "FRAGE:\nWas ist ERP?")
	assert.Contains(t, de, "[1] Quelle: Hauptskript (bs2.pdf, Seite 1)\nInhalt eins")
	assert.Contains(t, de, "[2] Quelle: Unbekannt (Unbekannt, Seite 10)")

	en := Answer(i18n.EN, "What is ERP?", chunks)
	assert.Contains(t, en, "[1] Source: Hauptskript (bs2.pdf, Page 1)")
	assert.Contains(t, en, "Answer in English")
}

func TestValidation(t *testing.T) {
	opts := map[string]string{"B": "zwei", "A": "eins", "D": "vier", "C": "drei"}
	p := Validation(i18n.DE, "Originaltext", "Frage?", opts, []string{"A", "C"})

	assert.Contains(t, p, "ORIGINALTEXT:\nOriginaltext")
	assert.Contains(t, p, "A: eins\nB: zwei\nC: drei\nD: vier\n")
	assert.Contains(t, p, "ANGEGEBENE KORREKTE ANTWORTEN: A, C")
	assert.Contains(t, p, `"explanation"`)

	en := Validation(i18n.EN, "text", "q?", opts, []string{"B"})
	assert.Contains(t, en, "ORIGINAL TEXT:\ntext")
	assert.Contains(t, en, "INDICATED CORRECT ANSWERS: B")
}

func TestTopicExtraction_TruncatesContext(t *testing.T) {
	long := strings.Repeat("ä", MaxTopicContext+100)
	p := TopicExtraction(i18n.DE, long)
	assert.Contains(t, p, strings.Repeat("ä", MaxTopicContext)+"\n")
	assert.NotContains(t, p, strings.Repeat("ä", MaxTopicContext+1))

	assert.Contains(t, TopicExtraction(i18n.EN, "x"), "Return only the topic")
}

func TestVariation(t *testing.T) {
	p := Variation(i18n.EN, "OLAP", "What is a cube?\nWhat is drill-down?")
	assert.Contains(t, p, "'OLAP'")
	assert.Contains(t, p, "What is a cube?\nWhat is drill-down?")
	assert.Contains(t, p, "random number between 1-1000")

	de := Variation(i18n.DE, "OLAP", "")
	assert.Contains(t, de, "NICHT WIEDERHOLEN):\n-\n")
}
