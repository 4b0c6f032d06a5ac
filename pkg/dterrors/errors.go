// Package dterrors provides structured error handling for the datatable
// engine, with error categorization, key-value context, and stack traces
// captured at the point of creation.
//
// Errors fall into a small taxonomy that callers can dispatch on:
//
//   - ErrorTypeResource: allocation or size-validation failures during
//     materialization and concatenation; fatal for the current operation.
//   - ErrorTypeShape: contract violations such as row-index length
//     mismatches, out-of-range alignment entries, or unpromotable types.
//   - ErrorTypeDegenerate: numeric inputs with missing or non-finite
//     statistics, in contexts where no defined fallback exists.
//   - ErrorTypeCast: a column could not be converted to a requested
//     storage type.
//
// Basic usage:
//
//	if nbins < 0 {
//	    return dterrors.New(dterrors.ErrorTypeShape, "negative bin count").
//	        WithDetail("nbins", nbins)
//	}
package dterrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType categorizes an engine error for handling strategies.
type ErrorType string

const (
	// ErrorTypeResource represents allocation or capacity failures.
	ErrorTypeResource ErrorType = "resource"
	// ErrorTypeShape represents shape or contract violations.
	ErrorTypeShape ErrorType = "shape"
	// ErrorTypeDegenerate represents degenerate numeric input.
	ErrorTypeDegenerate ErrorType = "degenerate"
	// ErrorTypeCast represents storage type conversion failures.
	ErrorTypeCast ErrorType = "cast"
	// ErrorTypeConfig represents configuration errors.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeInternal represents internal invariant violations.
	ErrorTypeInternal ErrorType = "internal"
)

// Error is a structured error with a category, optional cause, key-value
// details, and the call stack captured where it was created.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame is a single frame of the call stack at error creation.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key-value detail to the error. Chainable.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an error of the given type, capturing the call stack.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates an error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with a category and message, preserving the
// original as the cause. If the error is already a structured Error its
// stack is kept. Returns nil for a nil input.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existing.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType reports whether err is a structured Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
