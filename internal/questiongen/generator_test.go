package questiongen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/llm"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

func questionJSON(text string, answers ...string) string {
	quoted := make([]string, len(answers))
	for i, a := range answers {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf(`Hier ist die Frage:
{
  "question": %q,
  "options": {"A": "Würfel", "B": "Tabelle", "C": "Drill-down", "D": "Trigger"},
  "correct_answers": [%s]
}`, text, strings.Join(quoted, ", "))
}

func validationJSON(answers ...string) string {
	quoted := make([]string, len(answers))
	for i, a := range answers {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf(`{"correct_answers": [%s], "explanation": "Laut Originaltext."}`, strings.Join(quoted, ", "))
}

func olapCorpus() []retrieval.Chunk {
	return []retrieval.Chunk{
		{Content: "OLAP analysiert Daten in Würfeln mit Drill-down.", Metadata: retrieval.Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 11}},
		{Content: "OLAP-Würfel haben Dimensionen und Fakten.", Metadata: retrieval.Metadata{SourceType: "Hauptskript", FileName: "bs2.pdf", Page: 12}},
		{Content: "OLAP in der Literatur.", Metadata: retrieval.Metadata{SourceType: "Literatur", FileName: "buch.pdf", Page: 3}},
	}
}

func newTestGenerator(mock *llm.MockProvider, chunks []retrieval.Chunk) *LLMGenerator {
	cfg := DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(1, 2))
	return New(llm.NewCompleter(mock, llm.DefaultConfig()), retrieval.NewMemoryRetriever(chunks), cfg, nil)
}

func mcInput() GenerateInput {
	return GenerateInput{Topic: "OLAP", Type: MultipleChoice, Language: i18n.DE}
}

func TestGenerate_MultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(questionJSON("Was kennzeichnet OLAP?", "A", "C")),
		llm.MockText(validationJSON("A", "C")),
	)
	gen := newTestGenerator(mock, olapCorpus())

	q, err := gen.Generate(context.Background(), mcInput())
	require.NoError(t, err)

	assert.Equal(t, "Was kennzeichnet OLAP?", q.Text)
	assert.Equal(t, []string{"A", "C"}, q.CorrectAnswers)
	assert.Equal(t, MultipleChoice, q.Type)
	assert.Equal(t, "OLAP", q.Topic)
	assert.True(t, q.Validated)
	require.Len(t, q.Options, 4)
	assert.Equal(t, Option{Key: "A", Text: "Würfel"}, q.Options[0])
	assert.Equal(t, "Hauptskript", q.Source.Type)
	assert.Equal(t, "bs2.pdf", q.Source.File)

	require.Equal(t, 2, mock.CallCount())
	assert.Contains(t, mock.Prompt(0), "Multiple-Choice-Frage zum Thema: OLAP")
	assert.Contains(t, mock.Prompt(1), "ANGEGEBENE KORREKTE ANTWORTEN: A, C")
	assert.NotContains(t, mock.Prompt(0), "OLAP in der Literatur", "only the primary source is used")
}

func TestGenerate_ValidationPass(t *testing.T) {
	tests := []struct {
		name       string
		qtype      QuestionType
		generated  []string
		validation string
		want       []string
		validated  bool
	}{
		{"replaces answers", MultipleChoice, []string{"A", "C"}, validationJSON("B", "D"), []string{"B", "D"}, true},
		{"drops unknown keys", MultipleChoice, []string{"A", "C"}, validationJSON("b", "D", "E"), []string{"B", "D"}, true},
		{"empty intersection keeps original", MultipleChoice, []string{"A", "C"}, validationJSON("E", "X"), []string{"A", "C"}, true},
		{"unparseable keeps original", MultipleChoice, []string{"A", "C"}, "Die Antworten sind korrekt.", []string{"A", "C"}, false},
		{"too few for multiple choice keeps original", MultipleChoice, []string{"A", "C"}, validationJSON("B"), []string{"A", "C"}, true},
		{"single choice replaced", SingleChoice, []string{"A"}, validationJSON("C"), []string{"C"}, true},
		{"too many for single choice keeps original", SingleChoice, []string{"A"}, validationJSON("A", "B"), []string{"A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(
				llm.MockText(questionJSON("Was ist OLAP?", tt.generated...)),
				llm.MockText(tt.validation),
			)
			gen := newTestGenerator(mock, olapCorpus())

			in := mcInput()
			in.Type = tt.qtype
			q, err := gen.Generate(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.CorrectAnswers)
			assert.Equal(t, tt.validated, q.Validated)
		})
	}
}

func TestGenerate_ValidationCompletionError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(questionJSON("Was ist OLAP?", "A", "C")),
		llm.MockResponse{Err: errors.New("timeout")},
	)
	gen := newTestGenerator(mock, olapCorpus())

	q, err := gen.Generate(context.Background(), mcInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, q.CorrectAnswers)
	assert.False(t, q.Validated)
}

func TestGenerate_ParseFailures(t *testing.T) {
	t.Run("no JSON object", func(t *testing.T) {
		gen := newTestGenerator(llm.NewMockProvider(llm.MockText("Ich kann keine Frage erstellen.")), olapCorpus())
		_, err := gen.Generate(context.Background(), mcInput())

		var malformed *MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		var parseErr *JSONParseError
		assert.ErrorAs(t, err, &parseErr)
		assert.True(t, IsParseFailure(err))
		assert.Equal(t, "Konnte keine gültige Frage generieren. Bitte versuchen Sie es erneut.", i18n.Localize(err, i18n.DE))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		gen := newTestGenerator(llm.NewMockProvider(llm.MockText("Antwort: {question: Was ist OLAP}")), olapCorpus())
		_, err := gen.Generate(context.Background(), mcInput())

		var parseErr *JSONParseError
		require.ErrorAs(t, err, &parseErr)
		var malformed *MalformedResponseError
		assert.False(t, errors.As(err, &malformed))
		assert.Equal(t, "Could not parse the JSON format correctly. Please try again.", i18n.Localize(err, i18n.EN))
	})

	t.Run("schema violation", func(t *testing.T) {
		gen := newTestGenerator(llm.NewMockProvider(llm.MockText(`{"question": "Was?", "options": {"A": "x", "F": "y"}, "correct_answers": ["A"]}`)), olapCorpus())
		_, err := gen.Generate(context.Background(), mcInput())
		assert.True(t, IsParseFailure(err))
	})

	t.Run("multiple choice with one answer", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockText(questionJSON("Was ist OLAP?", "A")))
		gen := newTestGenerator(mock, olapCorpus())
		_, err := gen.Generate(context.Background(), mcInput())

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "structural", verr.Validator)
		assert.True(t, IsParseFailure(err))
		assert.Equal(t, 1, mock.CallCount(), "no validation pass for a rejected question")
	})
}

func TestGenerate_NoExternalCallsForBlankTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := newTestGenerator(mock, olapCorpus())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "  ", Type: MultipleChoice})
	var empty *TopicEmptyError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, 0, mock.CallCount())
}

type failingRetriever struct{}

func (failingRetriever) Search(context.Context, string, int, retrieval.Filter) ([]retrieval.Chunk, error) {
	return nil, errors.New("connection refused")
}

func TestGenerate_NoDocuments(t *testing.T) {
	t.Run("no primary source chunks", func(t *testing.T) {
		mock := llm.NewMockProvider()
		gen := newTestGenerator(mock, []retrieval.Chunk{{Content: "x", Metadata: retrieval.Metadata{SourceType: "Literatur"}}})

		_, err := gen.Generate(context.Background(), mcInput())
		var nd *NoDocumentsError
		require.ErrorAs(t, err, &nd)
		assert.Equal(t, "Hauptskript", nd.SourceType)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("retrieval failure", func(t *testing.T) {
		gen := New(llm.NewCompleter(llm.NewMockProvider(), llm.DefaultConfig()), failingRetriever{}, DefaultConfig(), nil)
		_, err := gen.Generate(context.Background(), mcInput())
		var nd *NoDocumentsError
		assert.ErrorAs(t, err, &nd)
	})
}

func TestGenerate_CompletionError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := newTestGenerator(mock, olapCorpus())

	_, err := gen.Generate(context.Background(), mcInput())
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.True(t, strings.HasPrefix(i18n.Localize(err, i18n.DE), "Fehler bei der Fragengenerierung: "))
}

func TestGenerate_Uniqueness(t *testing.T) {
	previous := []string{"Thema: OLAP\n\nWas kennzeichnet OLAP?"}

	t.Run("regenerates until unique", func(t *testing.T) {
		mock := llm.NewMockProvider(
			llm.MockText(questionJSON("Was kennzeichnet OLAP?", "A", "C")),
			llm.MockText(validationJSON("A", "C")),
			llm.MockText(questionJSON("Welche Operationen unterstützt ein OLAP-Würfel?", "A", "C")),
			llm.MockText(validationJSON("A", "C")),
		)
		gen := newTestGenerator(mock, olapCorpus())

		in := mcInput()
		in.PreviousQuestions = previous
		q, err := gen.Generate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "Welche Operationen unterstützt ein OLAP-Würfel?", q.Text)
		assert.Equal(t, 4, mock.CallCount())
	})

	t.Run("accepts last after exhausting attempts", func(t *testing.T) {
		mock := llm.NewMockProvider()
		mock.SetFallback(llm.MockText(questionJSON("Was kennzeichnet OLAP?", "A", "C")))
		gen := newTestGenerator(mock, olapCorpus())

		in := mcInput()
		in.PreviousQuestions = previous
		q, err := gen.Generate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "Was kennzeichnet OLAP?", q.Text)
		assert.Equal(t, 6, mock.CallCount(), "three attempts of generation plus validation")
	})

	t.Run("failed regeneration keeps previous attempt", func(t *testing.T) {
		mock := llm.NewMockProvider(
			llm.MockText(questionJSON("Was kennzeichnet OLAP?", "A", "C")),
			llm.MockText(validationJSON("A", "C")),
			llm.MockText("kaputt"),
		)
		gen := newTestGenerator(mock, olapCorpus())

		in := mcInput()
		in.PreviousQuestions = previous
		q, err := gen.Generate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "Was kennzeichnet OLAP?", q.Text)
	})
}

func TestPickChunk(t *testing.T) {
	gen := newTestGenerator(llm.NewMockProvider(), nil)

	used := map[int]bool{}
	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		idx := gen.pickChunk(5, used)
		assert.Less(t, idx, 3, "fresh picks come from the top three")
		assert.False(t, used[idx], "a used chunk is not picked again")
		used[idx] = true
		seen[idx] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 3, gen.pickChunk(5, used))

	used = map[int]bool{}
	assert.Equal(t, 0, gen.pickChunk(2, used), "fewer than three chunks take the best")
	used[0] = true
	assert.Equal(t, 1, gen.pickChunk(2, used))
	used[1] = true
	assert.Equal(t, 0, gen.pickChunk(2, used))
}

func TestGenerateFromRandomTopic(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText(`Thema: "OLAP-Würfel"`),
		llm.MockText(questionJSON("Was ist ein OLAP-Würfel?", "A", "B")),
		llm.MockText(validationJSON("A", "B")),
	)
	gen := newTestGenerator(mock, olapCorpus())

	q, err := gen.GenerateFromRandomTopic(context.Background(), MultipleChoice, i18n.DE)
	require.NoError(t, err)
	assert.Equal(t, "Thema: OLAP-Würfel\n\nWas ist ein OLAP-Würfel?", q.Text)
	assert.Equal(t, "OLAP-Würfel", q.Topic)
	assert.Equal(t, "Was ist ein OLAP-Würfel?", StripTopicPrefix(q.Text))
	assert.Contains(t, mock.Prompt(1), "zum Thema: OLAP-Würfel")
}

func TestGenerateFromRandomTopic_ExtractionFallback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockText(questionJSON("What is business software?", "B")),
		llm.MockText(validationJSON("B")),
	)
	gen := newTestGenerator(mock, olapCorpus())

	q, err := gen.GenerateFromRandomTopic(context.Background(), SingleChoice, i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, "Business Software", q.Topic)
	assert.True(t, strings.HasPrefix(q.Text, "Topic: Business Software\n\n"))
}

func TestGenerateFromRandomTopic_EmptyStore(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := newTestGenerator(mock, nil)

	_, err := gen.GenerateFromRandomTopic(context.Background(), MultipleChoice, i18n.DE)
	var nd *NoDocumentsError
	require.ErrorAs(t, err, &nd)
	assert.True(t, nd.Random)
	assert.Equal(t, "Keine Dokumente im Vektorspeicher gefunden", i18n.Localize(err, i18n.DE))
	assert.Equal(t, 0, mock.CallCount())
}

func TestVariationTopic(t *testing.T) {
	previous := []string{"Thema: OLAP\n\nWas ist ein Würfel?", "Was ist Drill-down?"}

	t.Run("derives subtopic", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockText("\"Slice and Dice im Controlling\" 427\n"))
		gen := newTestGenerator(mock, nil)

		got := gen.VariationTopic(context.Background(), "OLAP", previous, i18n.DE)
		assert.Equal(t, "OLAP - Slice and Dice im Controlling", got)
		assert.Contains(t, mock.Prompt(0), "Was ist ein Würfel?\nWas ist Drill-down?")
		assert.NotContains(t, mock.Prompt(0), "Thema: OLAP")
	})

	t.Run("falls back on error", func(t *testing.T) {
		gen := newTestGenerator(llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")}), nil)
		assert.Equal(t, "OLAP (Variation 3)", gen.VariationTopic(context.Background(), "OLAP", previous, i18n.DE))
	})

	t.Run("falls back on empty answer", func(t *testing.T) {
		gen := newTestGenerator(llm.NewMockProvider(llm.MockText("  ")), nil)
		assert.Equal(t, "OLAP (Variation 1)", gen.VariationTopic(context.Background(), "OLAP", nil, i18n.EN))
	})
}

func TestCleanTopic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"ERP-Systeme"`, "ERP-Systeme"},
		{"Thema: 'Process Mining'", "Process Mining"},
		{"topic: „Data Warehouse“", "Data Warehouse"},
		{strings.Repeat("x", 60), strings.Repeat("x", 50)},
		{`""`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanTopic(tt.in, 50), tt.in)
	}
}
