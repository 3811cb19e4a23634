// Package errors defines the coded errors shared by the arcstrata
// packages, the CLI and the layout service.
//
// Every error that crosses a package boundary carries a [Code]. The HTTP
// service turns codes into response statuses with [HTTPStatus] and the
// CLI turns them into process exit codes with [ExitCode]; both show
// [UserMessage] to people and keep the full chain for logs.
//
// Codes group by prefix: INVALID_* for input that cannot be read or
// built, NOT_FOUND and FILE_NOT_FOUND for missing resources,
// DANGLING_EDGE for edges with no resolvable endpoint, and
// INTERNAL_ERROR for everything unexpected.
//
//	doc, err := graph.ReadDocument(r, "conllu")
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // report the bad line
//	}
//
//	return errors.Wrap(errors.ErrCodeInvalidInput, err, "sentence %s", id)
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeDuplicateID   Code = "DUPLICATE_ID"

	// Layout errors
	ErrCodeDanglingEdge Code = "DANGLING_EDGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is an error with a code. Its string form is "CODE: message" or
// "CODE: message: cause".
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an *Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text with the codes of the *Error values in
// its chain removed. Context added around an *Error with fmt.Errorf("...: %w")
// is kept.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	if outer, inner := err.Error(), e.Error(); outer != inner && strings.HasSuffix(outer, inner) {
		msg = strings.TrimSuffix(outer, inner) + msg
	}
	return msg
}

// HTTPStatus maps an error code to the HTTP status the layout service
// responds with. Unknown and empty codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeDuplicateID:
		return http.StatusBadRequest
	case ErrCodeDanglingEdge:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Process exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitNotFound    = 3
	ExitInterrupted = 130
)

// ExitCode maps err to the exit status of the arcstrata binary. A
// cancelled context wins over any code in the chain, since Ctrl-C
// surfaces as wrapped context errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeDuplicateID:
		return ExitInvalid
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return ExitNotFound
	default:
		return ExitFailure
	}
}
