package i18n

// MessageID names one entry in the catalog.
type MessageID string

const (
	MsgProgress        MessageID = "progress"
	MsgAllAnswered     MessageID = "all_answered"
	MsgYourAnswer      MessageID = "your_answer"
	MsgNoSelection     MessageID = "no_selection"
	MsgCorrect         MessageID = "correct"
	MsgRevealWrong     MessageID = "reveal_wrong"
	MsgWrongAttempt    MessageID = "wrong_attempt"
	MsgProceed         MessageID = "proceed"
	MsgSessionComplete MessageID = "session_complete"
	MsgTopicPrefix     MessageID = "topic_prefix"
	MsgVariation       MessageID = "variation"

	MsgNoDocuments       MessageID = "no_documents"
	MsgNoRandomDocuments MessageID = "no_random_documents"
	MsgMalformed         MessageID = "malformed_response"
	MsgJSONParse         MessageID = "json_parse"
	MsgGenerationError   MessageID = "generation_error"
	MsgTopicEmpty        MessageID = "topic_empty"
	MsgGenerationFailed  MessageID = "generation_failed"
	MsgProcessingError   MessageID = "processing_error"

	MsgAnswerPrefix MessageID = "answer_prefix"
	MsgSources      MessageID = "sources"
	MsgMainScript   MessageID = "main_script"
	MsgAllSources   MessageID = "all_sources"
	MsgPage         MessageID = "page"
	MsgUnknown      MessageID = "unknown"

	MsgSingleChoice   MessageID = "single_choice"
	MsgMultipleChoice MessageID = "multiple_choice"
	MsgSelected       MessageID = "selected"
	MsgSourceLine     MessageID = "source_line"
	MsgNextQuestion   MessageID = "next_question"
	MsgGenerating     MessageID = "generating"

	MsgSummaryTitle MessageID = "summary_title"
	MsgSummaryStats MessageID = "summary_stats"
	MsgDuration     MessageID = "duration"
	MsgResults      MessageID = "results"
	MsgAttempts     MessageID = "attempts"

	MsgTooSmall    MessageID = "too_small"
	MsgKeyBack     MessageID = "key_back"
	MsgKeyNavigate MessageID = "key_navigate"
	MsgKeySelect   MessageID = "key_select"
	MsgKeyQuit     MessageID = "key_quit"

	MsgHintChat    MessageID = "hint_chat"
	MsgHintTrainer MessageID = "hint_trainer"
	MsgHintHistory MessageID = "hint_history"
)

var catalog = map[MessageID]map[Lang]string{
	MsgTooSmall: {
		DE: "Terminal zu klein!\n\nBitte auf mindestens %d x %d vergrößern.\n\nAktuell: %d x %d",
		EN: "Terminal too small!\n\nPlease resize to at least %d x %d.\n\nCurrent: %d x %d",
	},

	MsgKeyBack:     {DE: "Zurück", EN: "Back"},
	MsgKeyNavigate: {DE: "Navigieren", EN: "Navigate"},
	MsgKeySelect:   {DE: "Auswählen", EN: "Select"},
	MsgKeyQuit:     {DE: "Beenden", EN: "Quit"},

	MsgHintChat:    {DE: "Fragen zum Vorlesungsstoff stellen", EN: "Ask questions about the course material"},
	MsgHintTrainer: {DE: "Mit generierten Single- und Multiple-Choice-Fragen üben", EN: "Practice with generated single and multiple choice questions"},
	MsgHintHistory: {DE: "Letzte Modellaufrufe", EN: "Recent model calls"},

	MsgProgress: {
		DE: "Frage %d von %d",
		EN: "Question %d of %d",
	},
	MsgAllAnswered: {
		DE: "Alle Fragen beantwortet! Generieren Sie neue Fragen.",
		EN: "All questions answered! Generate new questions.",
	},
	MsgYourAnswer: {
		DE: "Deine Antwort: %s\n",
		EN: "Your answer: %s\n",
	},
	MsgNoSelection: {
		DE: "Keine Auswahl",
		EN: "No selection",
	},
	MsgCorrect: {
		DE: "Richtig! 👍",
		EN: "Correct! 👍",
	},
	MsgRevealWrong: {
		DE: "Richtige Antwort: %s\n\nLeider falsch.",
		EN: "Correct answer: %s\n\nUnfortunately wrong.",
	},
	MsgWrongAttempt: {
		DE: "Leider falsch. Versuch %d/%d!",
		EN: "Unfortunately wrong. Attempt %d/%d!",
	},
	MsgProceed: {
		DE: "\n\nKlicke auf 'Nächste Frage', um fortzufahren...",
		EN: "\n\nClick 'Next Question' to continue...",
	},
	MsgSessionComplete: {
		DE: "\n\nAlle Fragen beantwortet! Sie können neue Fragen generieren.",
		EN: "\n\nAll questions answered! You can generate new questions.",
	},
	MsgTopicPrefix: {
		DE: "Thema: %s\n\n",
		EN: "Topic: %s\n\n",
	},
	MsgVariation: {
		DE: "%s (Variation %d)",
		EN: "%s (Variation %d)",
	},

	MsgNoDocuments: {
		DE: "Ich konnte keine relevanten Informationen für eine Frage finden.",
		EN: "I couldn't find relevant information for a question.",
	},
	MsgNoRandomDocuments: {
		DE: "Keine Dokumente im Vektorspeicher gefunden",
		EN: "No documents found in vector store",
	},
	MsgMalformed: {
		DE: "Konnte keine gültige Frage generieren. Bitte versuchen Sie es erneut.",
		EN: "Could not generate a valid question. Please try again.",
	},
	MsgJSONParse: {
		DE: "Konnte das JSON-Format nicht korrekt parsen. Bitte versuchen Sie es erneut.",
		EN: "Could not parse the JSON format correctly. Please try again.",
	},
	MsgGenerationError: {
		DE: "Fehler bei der Fragengenerierung: %s",
		EN: "Error generating question: %s",
	},
	MsgTopicEmpty: {
		DE: "Bitte geben Sie ein Thema ein.",
		EN: "Please enter a topic.",
	},
	MsgGenerationFailed: {
		DE: "Es konnten keine Fragen generiert werden. Bitte versuchen Sie es erneut.",
		EN: "No questions could be generated. Please try again.",
	},
	MsgProcessingError: {
		DE: "Fehler bei der Verarbeitung der Frage: %s",
		EN: "Error processing question: %s",
	},

	MsgAnswerPrefix: {
		DE: "Antwort: ",
		EN: "Answer: ",
	},
	MsgSources: {
		DE: "Quellen",
		EN: "Sources",
	},
	MsgMainScript: {
		DE: "Hauptskript",
		EN: "Main Script",
	},
	MsgAllSources: {
		DE: "Alle Quellen",
		EN: "All Sources",
	},
	MsgPage: {
		DE: "Seite",
		EN: "Page",
	},
	MsgUnknown: {
		DE: "Unbekannt",
		EN: "Unknown",
	},

	MsgSingleChoice: {
		DE: "Single Choice (SC)",
		EN: "Single Choice (SC)",
	},
	MsgMultipleChoice: {
		DE: "Multiple Choice (MC)",
		EN: "Multiple Choice (MC)",
	},
	MsgSelected: {
		DE: "Ausgewählte Antworten: %s",
		EN: "Selected answers: %s",
	},
	MsgSourceLine: {
		DE: "Quelle: %s (%s, Seite %d)",
		EN: "Source: %s (%s, Page %d)",
	},
	MsgNextQuestion: {
		DE: "Nächste Frage",
		EN: "Next Question",
	},
	MsgGenerating: {
		DE: "Fragen werden generiert...",
		EN: "Generating questions...",
	},
	MsgSummaryTitle: {
		DE: "Runde abgeschlossen!",
		EN: "Session complete!",
	},
	MsgSummaryStats: {
		DE: "Fragen: %d        Richtig: %d        Beim ersten Versuch: %d        Quote: %.0f%%",
		EN: "Questions: %d        Correct: %d        First try: %d        Accuracy: %.0f%%",
	},
	MsgDuration: {
		DE: "Dauer: %s",
		EN: "Duration: %s",
	},
	MsgResults: {
		DE: "Ergebnisse",
		EN: "Results",
	},
	MsgAttempts: {
		DE: "%d/%d Versuche",
		EN: "%d/%d attempts",
	},
}
