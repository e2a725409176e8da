// Package qerrors defines the stable error codes shared by the IR core
// and its tooling.
package qerrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidPauliExp indicates mismatched Pauli string lengths, an
	// empty commuting set, or non-commuting tensors in a commuting set
	InvalidPauliExp ErrorCode = "INVALID_PAULI_EXP"
	// InvalidArchitecture indicates an operation that requires a
	// non-empty or connected device graph, or an unsatisfiable request
	InvalidArchitecture ErrorCode = "INVALID_ARCHITECTURE"
	// UnknownOperator indicates the factory was asked to decode an
	// unregistered operator type tag
	UnknownOperator ErrorCode = "UNKNOWN_OPERATOR"
	// MalformedJson indicates a missing field, wrong JSON shape, or an
	// unparseable UUID
	MalformedJson ErrorCode = "MALFORMED_JSON"
	// StoreFailure indicates a catalog database or archive failure
	StoreFailure ErrorCode = "STORE_FAILURE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error carries a stable code, a human message and an optional cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an underlying cause.
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the error code carried by err, or InternalError if
// err carries none.
func CodeOf(err error) ErrorCode {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
