// Package prompts builds the model prompts for chat answers, question
// generation, answer validation, topic extraction and topic variation.
// Every builder is a pure function of its inputs.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/retrieval"
)

// MaxTopicContext caps how much chunk text goes into a topic-extraction prompt.
const MaxTopicContext = 800

// Answer builds the chat prompt: rules, the question, then each chunk as a
// numbered source with its one-based page.
func Answer(lang i18n.Lang, question string, chunks []retrieval.Chunk) string {
	var b strings.Builder
	if lang == i18n.EN {
		b.WriteString(`You are a specialized tutor for the subject "Business Software 2".

TASK:
Answer the following question precisely and in a structured manner, based exclusively on the provided information.

IMPORTANT RULES:
- Use ONLY the information provided below
- If the information is insufficient, honestly state "I cannot fully answer this question with the available information"
- Keep your answer clear, concise, and technically accurate
- Answer in English
- Do not use introductions like "Based on the information..." or "According to the provided sources..."

QUESTION:
`)
		b.WriteString(question)
		b.WriteString("\n\nAVAILABLE INFORMATION:\n")
	} else {
		b.WriteString(`Du bist ein spezialisierter Tutor für das Fach "Business Software 2".

AUFGABE:
Beantworte die folgende Frage präzise und strukturiert, basierend ausschließlich auf den bereitgestellten Informationen.

WICHTIGE REGELN:
- Verwende NUR die unten angegebenen Informationen
- Wenn die Informationen nicht ausreichen, sage ehrlich "Ich kann diese Frage mit den verfügbaren Informationen nicht vollständig beantworten"
- Halte deine Antwort klar, prägnant und fachlich korrekt
- Antworte auf Deutsch
- Verwende keine Einleitungen wie "Basierend auf den Informationen..." oder "Laut den bereitgestellten Quellen..."

FRAGE:
`)
		b.WriteString(question)
		b.WriteString("\n\nVERFÜGBARE INFORMATIONEN:\n")
	}

	for i, c := range chunks {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, SourceLine(lang, c.Metadata))
		b.WriteString(c.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// SourceLine renders chunk provenance, e.g. "Quelle: Hauptskript (bs2.pdf, Seite 3)".
func SourceLine(lang i18n.Lang, m retrieval.Metadata) string {
	return i18n.T(lang, i18n.MsgSourceLine, orUnknown(lang, m.SourceType), orUnknown(lang, m.FileName), m.Page+1)
}

func orUnknown(lang i18n.Lang, s string) string {
	if strings.TrimSpace(s) == "" {
		return i18n.T(lang, i18n.MsgUnknown)
	}
	return s
}

// QuestionInput parameterizes the generation prompt.
type QuestionInput struct {
	Lang           i18n.Lang
	Topic          string
	MultipleChoice bool
	Context        string
}

// Question builds the generation prompt. The model must answer with one JSON
// object holding question, options A-D and correct_answers.
func Question(in QuestionInput) string {
	var b strings.Builder
	if in.Lang == i18n.EN {
		if in.MultipleChoice {
			fmt.Fprintf(&b, "Create a precise multiple-choice question about: %s\n\n", in.Topic)
		} else {
			fmt.Fprintf(&b, "Create a precise single-choice question about: %s\n\n", in.Topic)
		}
		b.WriteString(`IMPORTANT:
1. Use ONLY information from the context provided
2. The correct answers MUST be directly derivable from the context
3. Create exactly 4 answer options (A-D)
`)
		if in.MultipleChoice {
			b.WriteString("4. At least 2 out of 4 answers have to be correct\n")
		} else {
			b.WriteString("4. Only ONE answer must be correct\n")
		}
		b.WriteString(`5. Wrong answers must be plausible
6. Do not use options such as "All of the above" or "None of the above"
7. Check each answer option against the context for correctness
8. Make sure that the answers marked as correct actually match the context
`)
		if in.MultipleChoice {
			b.WriteString("9. The same options (A, B, C or D) should not always be correct, and more than one answer can be correct\n")
		} else {
			b.WriteString("9. The correct answer should be random, NOT always B or always the same option\n")
		}
		b.WriteString("\nCONTEXT:\n")
		b.WriteString(in.Context)
		b.WriteString("\n\nRESPONSE FORMAT (strictly adhere to, return only this JSON object):\n")
		b.WriteString(questionFormat(
			"Your precise technical question here",
			[4]string{"First option", "Second option", "Third option", "Fourth option"},
			in.MultipleChoice))
		return b.String()
	}

	if in.MultipleChoice {
		fmt.Fprintf(&b, "Erstelle eine präzise Multiple-Choice-Frage zum Thema: %s\n\n", in.Topic)
	} else {
		fmt.Fprintf(&b, "Erstelle eine präzise Single-Choice-Frage zum Thema: %s\n\n", in.Topic)
	}
	b.WriteString(`WICHTIG:
1. Verwende NUR Informationen aus dem bereitgestellten Kontext
2. Die korrekten Antworten MÜSSEN direkt aus dem Kontext ableitbar sein
3. Erstelle genau 4 Antwortoptionen (A-D)
`)
	if in.MultipleChoice {
		b.WriteString("4. Es sollen mindestens 2 von 4 Antwortmöglichkeiten korrekt sein\n")
	} else {
		b.WriteString("4. Nur EINE Antwort darf korrekt sein\n")
	}
	b.WriteString(`5. Falsche Antworten müssen plausibel sein
6. Verwende keine Optionen wie "Alle oben genannten" oder "Keine der genannten"
7. Überprüfe jede Antwortoption gegen den Kontext auf Korrektheit
8. Stelle sicher, dass die als korrekt markierten Antworten tatsächlich mit dem Kontext übereinstimmen
`)
	if in.MultipleChoice {
		b.WriteString("9. Es sollen nicht immer die gleichen Auswahloptionen (A, B, C oder D) korrekt sein, und es kann mehr als eine Antwort richtig sein\n")
	} else {
		b.WriteString("9. Es soll nicht immer die gleiche Auswahloption (A, B, C oder D) korrekt sein, und genau eine Antwort ist richtig\n")
	}
	b.WriteString("\nKONTEXT:\n")
	b.WriteString(in.Context)
	b.WriteString("\n\nANTWORTFORMAT (strikt einhalten, nur dieses JSON-Objekt zurückgeben):\n")
	b.WriteString(questionFormat(
		"Deine präzise Fachfrage hier",
		[4]string{"Erste Option", "Zweite Option", "Dritte Option", "Vierte Option"},
		in.MultipleChoice))
	return b.String()
}

func questionFormat(question string, options [4]string, multiple bool) string {
	answers := `["X"]`
	if multiple {
		answers = `["X", "Y"]`
	}
	return fmt.Sprintf(`{
"question": %q,
"options": {
"A": %q,
"B": %q,
"C": %q,
"D": %q
},
"correct_answers": %s
}
`, question, options[0], options[1], options[2], options[3], answers)
}

// Validation asks the model to re-derive the correct answers for a generated
// question strictly from the source text.
func Validation(lang i18n.Lang, content, question string, options map[string]string, claimed []string) string {
	var b strings.Builder
	if lang == i18n.EN {
		b.WriteString("TASK: Verify the correctness of answers for a multiple-choice question.\n\nORIGINAL TEXT:\n")
		b.WriteString(content)
		b.WriteString("\n\nQUESTION:\n")
		b.WriteString(question)
		b.WriteString("\n\nANSWER OPTIONS:\n")
		writeOptions(&b, options)
		fmt.Fprintf(&b, "\nINDICATED CORRECT ANSWERS: %s\n", strings.Join(claimed, ", "))
		b.WriteString(`
INSTRUCTIONS:
1. CAREFULLY check if the indicated correct answers actually match the original text.
2. Ignore your own knowledge and rely ONLY on the original text.
3. If the indicated correct answers do NOT match the original text, correct them.
4. Return the actually correct answers.
5. IMPORTANT: Answer ONLY with the JSON format below, without additional text.

RESPONSE FORMAT (strictly adhere to):
{
"correct_answers": ["X", "Y"],
"explanation": "Brief explanation of why these answers are correct, with reference to the original text."
}
`)
		return b.String()
	}

	b.WriteString("AUFGABE: Überprüfe die Korrektheit der Antworten für eine Multiple-Choice-Frage.\n\nORIGINALTEXT:\n")
	b.WriteString(content)
	b.WriteString("\n\nFRAGE:\n")
	b.WriteString(question)
	b.WriteString("\n\nANTWORTOPTIONEN:\n")
	writeOptions(&b, options)
	fmt.Fprintf(&b, "\nANGEGEBENE KORREKTE ANTWORTEN: %s\n", strings.Join(claimed, ", "))
	b.WriteString(`
ANWEISUNGEN:
1. Überprüfe SORGFÄLTIG, ob die angegebenen korrekten Antworten tatsächlich mit dem Originaltext übereinstimmen.
2. Ignoriere dein eigenes Wissen und stütze dich NUR auf den Originaltext.
3. Wenn die angegebenen korrekten Antworten NICHT mit dem Originaltext übereinstimmen, korrigiere sie.
4. Gib die tatsächlich korrekten Antworten zurück.
5. WICHTIG: Antworte NUR mit dem JSON-Format unten, ohne zusätzlichen Text.

ANTWORTFORMAT (strikt einhalten):
{
"correct_answers": ["X", "Y"],
"explanation": "Kurze Erklärung, warum diese Antworten korrekt sind, mit Bezug auf den Originaltext."
}
`)
	return b.String()
}

func writeOptions(b *strings.Builder, options map[string]string) {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s: %s\n", k, options[k])
	}
}

// TopicExtraction asks for a single narrow exam topic found in content.
func TopicExtraction(lang i18n.Lang, content string) string {
	content = truncateRunes(content, MaxTopicContext)
	if lang == i18n.EN {
		return `You are an expert in Business Software 2.
Extract a single, precise technical topic from the following text that is suitable for an exam question.
The topic should be specific enough to allow a focused question.
Return only the topic, without additional text or explanations.

Text: ` + content + "\n"
	}
	return `Du bist ein Experte für Business Software 2.
Extrahiere ein einzelnes, präzises Fachthema aus dem folgenden Text, das sich für eine Prüfungsfrage eignet.
Das Thema sollte spezifisch genug sein, um eine fokussierte Frage zu ermöglichen.
Gib nur das Thema zurück, ohne zusätzlichen Text oder Erklärungen.

Text: ` + content + "\n"
}

// Variation asks for a sub-aspect of topic that none of the previous
// questions covers. previous is the newline-joined list of asked questions.
func Variation(lang i18n.Lang, topic, previous string) string {
	if strings.TrimSpace(previous) == "" {
		previous = "-"
	}
	if lang == i18n.EN {
		return fmt.Sprintf(`You are an expert in Business Software and exam preparation.
Name a sub-aspect of the topic '%s' that has NOT been covered by any of the previous questions.

PREVIOUSLY ASKED QUESTIONS (DO NOT REPEAT):
%s

Important:
- Focus on a DIFFERENT aspect or sub-area of the topic
- The sub-aspect must allow a question that differs in content AND structure from the previous ones

Choose one of the following approaches:
- Practical application instead of theory
- Specific technology or method
- Advantages or disadvantages
- Implementation challenges
- Historical development
- Comparison with alternative concepts
- Future perspectives

Return only the sub-aspect as a short phrase, without introduction or explanation.
Pick the approach using a random number between 1-1000.
`, topic, previous)
	}
	return fmt.Sprintf(`Du bist ein Experte für Business Software und Prüfungsvorbereitung.
Nenne einen Teilaspekt des Themas '%s', der von KEINER der bisherigen Fragen abgedeckt wird.

BEREITS GESTELLTE FRAGEN (NICHT WIEDERHOLEN):
%s

Wichtig:
- Fokussiere auf einen ANDEREN Aspekt oder Teilbereich des Themas
- Der Teilaspekt muss eine Frage ermöglichen, die sich inhaltlich UND strukturell von den bisherigen unterscheidet

Wähle einen der folgenden Ansätze:
- Praktische Anwendung statt Theorie
- Spezifische Technologie oder Methode
- Vor- oder Nachteile
- Implementierungsherausforderungen
- Historische Entwicklung
- Vergleich mit alternativen Konzepten
- Zukunftsperspektiven

Gib nur den Teilaspekt als kurze Phrase zurück, ohne Einleitung oder Erklärung.
Wähle den Ansatz anhand einer zufälligen Zahl zwischen 1-1000.
`, topic, previous)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
