// Package errors gives buttonhalo failures a machine-readable [Code].
//
// The CLI prints [UserMessage] and the HTTP server answers with the code and
// message as JSON, choosing the status from [Code.Client]. Codes survive
// wrapping with fmt.Errorf("...: %w", err), and the standard library's
// errors.Is and errors.As still see the cause of a [Wrap].
//
//	err := errors.New(errors.ErrCodeInvalidScenario, "selection.width %d is negative", w)
//	if errors.Is(err, errors.ErrCodeInvalidScenario) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	// Caused by the caller's input.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidScenario Code = "INVALID_SCENARIO"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeEmptyControlSet Code = "EMPTY_CONTROL_SET"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Caused by the system.
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Client reports whether c blames the request rather than the system.
func (c Code) Client() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidScenario, ErrCodeInvalidFormat,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeEmptyControlSet,
		ErrCodeFileNotFound:
		return true
	}
	return false
}

// Error carries a code, a message for users, and an optional cause.
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

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
