package retrieval

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type OperationErrorCode string

const (
	OperationErrorValidation      OperationErrorCode = "validation_failed"
	OperationErrorEncodeFailed    OperationErrorCode = "encode_failed"
	OperationErrorDecodeFailed    OperationErrorCode = "decode_failed"
	OperationErrorTransportFailed OperationErrorCode = "transport_failed"
	OperationErrorTimeout         OperationErrorCode = "timeout"
	OperationErrorQueryFailed     OperationErrorCode = "query_failed"
	OperationErrorEmbedFailed     OperationErrorCode = "embed_failed"
)

// OperationError describes a failed call against the vector store.
type OperationError struct {
	Code       OperationErrorCode
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *OperationError) Error() string {
	if e == nil {
		return "retrieval operation failed"
	}
	detail := e.Message
	if detail == "" && e.Cause != nil {
		detail = e.Cause.Error()
	}
	if detail == "" {
		return fmt.Sprintf("retrieval operation failed (op=%s code=%s status=%d)", e.Operation, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("retrieval operation failed (op=%s code=%s status=%d): %s", e.Operation, e.Code, e.StatusCode, detail)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func opErr(op string, code OperationErrorCode, msg string, cause error) error {
	return &OperationError{
		Code:      code,
		Operation: op,
		Message:   msg,
		Cause:     cause,
	}
}

func classifyHTTPCallError(op, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return opErr(op, OperationErrorTimeout, message, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return opErr(op, OperationErrorTimeout, message, err)
	}
	return opErr(op, OperationErrorTransportFailed, message, err)
}
