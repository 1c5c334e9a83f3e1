// Package util provides logging helpers and the error taxonomy shared by
// the parser, the normalizer and the reconciliation engine.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrFormat           = errors.New("invalid format")
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
	ErrTransport        = errors.New("transport failure")
)

// FormatError reports a caller-supplied token that does not follow the
// interface grammar.
type FormatError struct {
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Token)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// NewFormatError creates a format error
func NewFormatError(reason, token string) *FormatError {
	return &FormatError{Token: token, Reason: reason}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}

// LookupError is the soft failure raised when a desired entity names an
// interface the device does not have. It is reported as a warning.
type LookupError struct {
	Interface string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("interface %s does not exist on target", e.Interface)
}

func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// NewLookupError creates a lookup error
func NewLookupError(iface string) *LookupError {
	return &LookupError{Interface: iface}
}

// TransportError wraps a session failure with the command that triggered it.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrTransport on any transport error.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a transport error
func NewTransportError(command string, err error) *TransportError {
	return &TransportError{Command: command, Err: err}
}
