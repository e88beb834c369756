// Package auditreport holds the error taxonomy shared by the report packages.
//
// The document model, its derivations and the renderer live in sub-packages:
// document, chart, invoice, pagination, session and render.
package auditreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for report editing and rendering failures.
var (
	ErrIndexOutOfRange = errors.New("auditreport: index out of range")
	ErrNotFound        = errors.New("auditreport: entity not found")
	ErrUnknownList     = errors.New("auditreport: unknown list")
	ErrUnknownField    = errors.New("auditreport: unknown field")
	ErrFixedList       = errors.New("auditreport: list has a fixed size")
	ErrInvalidValue    = errors.New("auditreport: invalid value")
	ErrDuplicateID     = errors.New("auditreport: duplicate identifier")
	ErrInvalidImage    = errors.New("auditreport: invalid image")
)

// Error represents a failure of a specific report operation.
// It wraps an underlying error and includes the operation name for context.
type Error struct {
	Op  string // operation name, e.g. "Update", "RemoveAt"
	Err error  // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auditreport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("auditreport.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the operation name.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// Errorf wraps one of the sentinel errors with extra detail.
func Errorf(op string, sentinel error, format string, args ...any) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))}
}

// Code returns the taxonomy name for err, suitable for API responses.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIndexOutOfRange):
		return "IndexOutOfRange"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrUnknownList):
		return "UnknownList"
	case errors.Is(err, ErrUnknownField):
		return "UnknownField"
	case errors.Is(err, ErrFixedList):
		return "FixedList"
	case errors.Is(err, ErrInvalidValue):
		return "InvalidNumericInput"
	case errors.Is(err, ErrDuplicateID):
		return "DuplicateID"
	case errors.Is(err, ErrInvalidImage):
		return "InvalidImage"
	default:
		return "Internal"
	}
}
