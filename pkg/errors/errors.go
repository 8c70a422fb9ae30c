// Package errors provides the error types used across the Encore pipeline.
// The taxonomy follows the pipeline's failure contract: unparseable input
// degrades and is never fatal, a missing input file is fatal, external
// lookup failures are non-fatal "no result" outcomes, and a malformed cache
// is treated as an empty one.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pipeline.
var (
	// ErrNotFound indicates that a required file or resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrNoResult indicates that an external lookup completed without
	// producing a usable value. Callers treat it as "confirmed: nothing".
	ErrNoResult = errors.New("no result")
)

// ValidationError represents a validation failure on configuration or
// caller-supplied values.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IOError represents an error during file I/O. A missing input file wraps
// ErrNotFound and aborts the run before any processing.
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapIO wraps an error as an IOError, passing nil through.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// ParseError represents an error when parsing a data format. Row-level
// parse failures never surface as errors at all; this type covers document
// parsing (config files, the lookup cache).
type ParseError struct {
	Format  string // "json", "yaml", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapParse wraps an error as a ParseError, passing nil through.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// LookupError represents a failed external date-confirmation attempt.
// It is never fatal: the resolver downgrades to the next confidence tier.
type LookupError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("lookup failed for %s (status %d): %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("lookup failed for %s: %s", e.URL, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *LookupError) Is(target error) bool {
	return target == ErrNoResult
}

// NewLookupError creates a new LookupError.
func NewLookupError(url string, statusCode int, message string, err error) *LookupError {
	return &LookupError{URL: url, StatusCode: statusCode, Message: message, Err: err}
}

// ProcessError represents a failure of an external extraction tool.
type ProcessError struct {
	Operation string
	Command   string
	Output    string
	Err       error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking.

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoResult checks if an error is a no-result lookup outcome.
func IsNoResult(err error) bool {
	return errors.Is(err, ErrNoResult)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
