package questiongen

import "github.com/abhisek/bs2tutor/internal/llm"

var optionKeyEnum = []any{"A", "B", "C", "D"}

// QuestionSchema is the shape a generation response must have once the JSON
// object has been extracted from the completion text.
var QuestionSchema = &llm.Schema{
	Name:        "course-question",
	Description: "A single or multiple choice question with options A-D",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":          "object",
				"minProperties": 1,
				"propertyNames": map[string]any{"enum": optionKeyEnum},
				"additionalProperties": map[string]any{
					"type": "string",
				},
			},
			"correct_answers": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "string",
					"enum": optionKeyEnum,
				},
			},
		},
		"required": []any{"question", "options", "correct_answers"},
	},
}

// ValidationSchema is the shape of a validation-pass response. Unknown keys
// in correct_answers are allowed here and dropped afterwards.
var ValidationSchema = &llm.Schema{
	Name:        "answer-validation",
	Description: "Correct answers re-derived from the source text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct_answers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"correct_answers"},
	},
}
