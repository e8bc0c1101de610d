package models

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a missing row. Handlers translate it to 404.
var ErrNotFound = errors.New("registro no encontrado")

// ValidationError reports a missing or invalid required field.
// Handlers translate it to 400 before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failed call to SIGCD or Atencion on a
// read-through path. Handlers translate it to 502. Best-effort
// notifications never surface it; they only log.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
