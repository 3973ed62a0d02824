// Package errors provides structured errors carrying a stable error code.
//
// Every failure that reaches the CLI is either a StructuredError or wraps one,
// so callers can branch on the code with errors.As without string matching:
//
//	var se *errors.StructuredError
//	if stderrors.As(err, &se) && se.Code == errors.ErrCodeParse {
//	    // malformed YAML or composer.json
//	}
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode identifies a class of installer failure.
type ErrorCode string

const (
	// ErrCodeFilesystem is returned when a directory or file cannot be created, read or removed.
	ErrCodeFilesystem ErrorCode = "FILESYSTEM"
	// ErrCodeParse is returned for malformed YAML documents or package descriptors.
	ErrCodeParse ErrorCode = "PARSE"
	// ErrCodeInvalidOption is returned for option or flag values that cannot be interpreted.
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"
	// ErrCodeCollector is returned when parameter collection fails.
	ErrCodeCollector ErrorCode = "COLLECTOR"
	// ErrCodeInternal is returned for unexpected conditions.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a code, a human readable message,
// an optional cause and optional key/value context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Wrap creates a StructuredError around cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext is like Wrap and attaches context, e.g. the path involved.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("] ")
	b.WriteString(e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Context[k])
		}
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
