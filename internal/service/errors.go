package service

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned for an unsupported export format.
var ErrInvalidFormat = errors.New("unsupported export format")

// ValidationError is a caller-facing parameter error. The pipeline or
// export is not attempted when one is raised.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError marks a metrics upsert failure for a single survey.
// Other surveys in the same batch run are unaffected.
type PersistenceError struct {
	SurveyID string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist metrics for survey %s: %v", e.SurveyID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
