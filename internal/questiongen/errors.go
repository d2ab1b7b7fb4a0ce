package questiongen

import (
	"errors"
	"fmt"

	"github.com/abhisek/bs2tutor/internal/i18n"
)

// NoDocumentsError means retrieval found nothing to generate from.
type NoDocumentsError struct {
	Query      string
	SourceType string
	Random     bool // raised while sampling a random topic
}

func (e *NoDocumentsError) Error() string {
	if e.Random {
		return "no documents found in vector store"
	}
	return fmt.Sprintf("no documents for %q (source_type=%q)", e.Query, e.SourceType)
}

func (e *NoDocumentsError) MessageID() i18n.MessageID {
	if e.Random {
		return i18n.MsgNoRandomDocuments
	}
	return i18n.MsgNoDocuments
}

func (e *NoDocumentsError) MessageArgs() []any { return nil }

var errNoJSONObject = errors.New("no JSON object in response")

// MalformedResponseError means the completion contained no JSON object at
// all. It unwraps to a JSONParseError so callers can treat both alike.
type MalformedResponseError struct {
	Response string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + errNoJSONObject.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return &JSONParseError{Response: e.Response, Err: errNoJSONObject}
}

func (e *MalformedResponseError) MessageID() i18n.MessageID { return i18n.MsgMalformed }
func (e *MalformedResponseError) MessageArgs() []any        { return nil }

// JSONParseError means the extracted JSON could not be decoded or did not
// describe a valid question.
type JSONParseError struct {
	Response string
	Err      error
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("parse question JSON: %v", e.Err)
}

func (e *JSONParseError) Unwrap() error { return e.Err }

func (e *JSONParseError) MessageID() i18n.MessageID { return i18n.MsgJSONParse }
func (e *JSONParseError) MessageArgs() []any        { return nil }

// ValidationUnavailableError records a validation pass that could not be
// used. The generator logs it and keeps the original answers; it is never
// returned to callers.
type ValidationUnavailableError struct {
	Err error
}

func (e *ValidationUnavailableError) Error() string {
	return fmt.Sprintf("answer validation unavailable: %v", e.Err)
}

func (e *ValidationUnavailableError) Unwrap() error { return e.Err }

// TopicEmptyError means a blank topic was supplied.
type TopicEmptyError struct{}

func (e *TopicEmptyError) Error() string { return "topic is empty" }

func (e *TopicEmptyError) MessageID() i18n.MessageID { return i18n.MsgTopicEmpty }
func (e *TopicEmptyError) MessageArgs() []any        { return nil }

// GenerationError wraps a completion failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) MessageID() i18n.MessageID { return i18n.MsgGenerationError }
func (e *GenerationError) MessageArgs() []any        { return []any{e.Err.Error()} }

// IsParseFailure reports whether err stems from an unusable model response.
func IsParseFailure(err error) bool {
	var pe *JSONParseError
	return errors.As(err, &pe)
}
