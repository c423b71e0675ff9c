package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Fatal pipeline errors. Each one short-circuits the remaining stages
// and surfaces a distinct message in the artifact for diagnosability.
var (
	ErrUnreadableDocument = errors.New("document empty or unreadable")
	ErrOCRUnavailable     = errors.New("scanned document detected but OCR is unavailable")
	ErrNoTestsExtracted   = errors.New("no tests extracted")
	ErrNoValidTests       = errors.New("no valid tests after validation")
)

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrStore        = errors.New("reference store error")
)

// NewAppError constructs an AppError with a stable code.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Remediation returns the user-facing hint attached to a fatal pipeline
// error, or a generic hint for anything unrecognized.
func Remediation(err error) string {
	switch {
	case errors.Is(err, ErrUnreadableDocument):
		return "Ensure the PDF is readable and contains medical results."
	case errors.Is(err, ErrOCRUnavailable):
		return "Install tesseract (and poppler-utils) to process scanned documents."
	case errors.Is(err, ErrNoTestsExtracted):
		return "The document does not appear to contain test results or measurements."
	case errors.Is(err, ErrNoValidTests):
		return "Extracted entries were rejected as non-medical; check the document content."
	default:
		return "Ensure the PDF is readable and contains medical results."
	}
}
