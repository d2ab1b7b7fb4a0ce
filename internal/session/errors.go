package session

import "github.com/abhisek/bs2tutor/internal/i18n"

type generationFailedError struct{}

func (generationFailedError) Error() string             { return "no question could be generated" }
func (generationFailedError) MessageID() i18n.MessageID { return i18n.MsgGenerationFailed }
func (generationFailedError) MessageArgs() []any        { return nil }

// ErrGenerationFailed is returned by BuildQueue when every attempt failed.
var ErrGenerationFailed error = generationFailedError{}
