// Package errors provides custom error types and utilities for kubesetctx.
//
// This package provides error handling for various operations including:
// - Missing required inputs
// - Kubeconfig and secret parsing
// - External tool lookup and execution
// - Filesystem operations on the exported kubeconfig
// - Validation and configuration errors
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories for kubesetctx operations
var (
	ErrMissingInput    = errors.New("missing required input")
	ErrParse           = errors.New("parse error")
	ErrToolNotFound    = errors.New("tool not found")
	ErrExternalCommand = errors.New("external command failed")
	ErrFilesystem      = errors.New("filesystem error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConfiguration   = errors.New("configuration error")
)

// MissingInputError is returned when a required input is absent.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input required and not supplied: %s", e.Input)
}

func (e *MissingInputError) Is(target error) bool {
	return errors.Is(target, ErrMissingInput)
}

// NewMissingInputError creates a new missing input error
func NewMissingInputError(input string) *MissingInputError {
	return &MissingInputError{Input: input}
}

// IsMissingInput checks if an error is a missing required input
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// ParseError represents a malformed kubeconfig or secret document
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to parse %s", e.Source)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return errors.Is(target, ErrParse)
}

// NewParseError creates a new parse error
func NewParseError(source string, err error) *ParseError {
	return &ParseError{Source: source, Err: err}
}

// IsParse checks if an error is a parse error
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// ToolNotFoundError represents an external tool missing from the execution path
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("unable to locate executable file: %s", e.Tool)
}

func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

func (e *ToolNotFoundError) Is(target error) bool {
	return errors.Is(target, ErrToolNotFound)
}

// NewToolNotFoundError creates a new tool not found error
func NewToolNotFoundError(tool string, err error) *ToolNotFoundError {
	return &ToolNotFoundError{Tool: tool, Err: err}
}

// IsToolNotFound checks if an error is a tool lookup failure
func IsToolNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}

// ExternalCommandError represents a non-zero exit from an external invocation
type ExternalCommandError struct {
	Tool     string
	Args     []string
	ExitCode int
	Message  string
}

func (e *ExternalCommandError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.Message != "" {
		return fmt.Sprintf("command '%s' failed with exit code %d: %s", cmd, e.ExitCode, e.Message)
	}
	return fmt.Sprintf("command '%s' failed with exit code %d", cmd, e.ExitCode)
}

func (e *ExternalCommandError) Is(target error) bool {
	return errors.Is(target, ErrExternalCommand)
}

// NewExternalCommandError creates a new external command error
func NewExternalCommandError(tool string, args []string, exitCode int, message string) *ExternalCommandError {
	return &ExternalCommandError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Message:  message,
	}
}

// IsExternalCommand checks if an error is an external command failure
func IsExternalCommand(err error) bool {
	return errors.Is(err, ErrExternalCommand)
}

// ExitCode returns the exit code carried by an ExternalCommandError anywhere
// in the chain, or false when there is none.
func ExitCode(err error) (int, bool) {
	var cmdErr *ExternalCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode, true
	}
	return 0, false
}

// FilesystemError represents a permission or IO failure on a file
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func (e *FilesystemError) Is(target error) bool {
	return errors.Is(target, ErrFilesystem)
}

// NewFilesystemError creates a new filesystem error
func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// IsFilesystem checks if an error is filesystem-related
func IsFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
