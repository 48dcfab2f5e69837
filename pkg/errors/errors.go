// Package errors provides custom error types for the vstmap system.
// These errors let callers tell a fatal run failure from a recoverable
// per-source problem without matching on message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors for errors.Is checks.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFormat indicates that a source does not have the expected tabular layout
	ErrInvalidFormat = errors.New("invalid format")

	// ErrIncompatibleFamilies indicates two versions from different numbering families were compared
	ErrIncompatibleFamilies = errors.New("incompatible version families")

	// ErrConfiguration indicates the run cannot start with the given configuration
	ErrConfiguration = errors.New("configuration error")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError is raised before any merge work starts, e.g. too few input
// files or a required external path that does not exist.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// SourceFormatError reports a source that could not be used as an inventory:
// required columns are missing, the file is empty, or it could not be read.
type SourceFormatError struct {
	Source  string   // Source name (file stem)
	Path    string   // File path, if known
	Missing []string // Required columns absent from the header
	Message string
	Err     error
}

// Error implements the error interface
func (e *SourceFormatError) Error() string {
	where := e.Source
	if e.Path != "" {
		where = e.Path
	}

	var msg string
	switch {
	case len(e.Missing) > 0:
		msg = fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	case e.Message != "":
		msg = e.Message
	case e.Err != nil:
		msg = e.Err.Error()
	default:
		msg = "unrecognized format"
	}

	if where == "" {
		return fmt.Sprintf("invalid format: %s", msg)
	}
	return fmt.Sprintf("invalid format in %s: %s", where, msg)
}

// Unwrap implements errors.Unwrap
func (e *SourceFormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewSourceFormatError creates a new SourceFormatError
func NewSourceFormatError(source, path, message string, err error) *SourceFormatError {
	return &SourceFormatError{
		Source:  source,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// VersionFamilyMismatchError is returned when a numeric version and a dotted
// version are compared against each other.
type VersionFamilyMismatchError struct {
	A       string
	B       string
	FamilyA string
	FamilyB string
}

// Error implements the error interface
func (e *VersionFamilyMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %q (%s) with %q (%s)", e.A, e.FamilyA, e.B, e.FamilyB)
}

// Is implements errors.Is support
func (e *VersionFamilyMismatchError) Is(target error) bool {
	return target == ErrIncompatibleFamilies
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "yaml", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSourceFormat checks if an error is a source format error
func IsSourceFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsIncompatibleFamilies checks if an error is a version family mismatch
func IsIncompatibleFamilies(err error) bool {
	return errors.Is(err, ErrIncompatibleFamilies)
}

// IsConfig checks if an error is a configuration error
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// As is an alias for the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is an alias for the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap is an alias for the standard library errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
