package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps validation and storage failures with the operation being
// performed, the CLI command that triggered it, and the offending field,
// so command handlers can report exactly what was rejected and why.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	Command    string                 // Which CLI command
	Field      string                 // Which input field or path (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("sanitizing export path", "export", "output-path", err)
//	}
func NewOperationalError(operation, command, field string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		Command:   command,
		Field:     field,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, command, field string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:  operation,
		Command:    command,
		Field:      field,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: command={name} field={name}: {cause}"
// If the field is empty, it's omitted. Attributes, when present, are
// appended as sorted key=value pairs.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	var msg string
	if e.Field != "" {
		msg = fmt.Sprintf("[%s] %s: command=%s field=%s: %v",
			timestamp,
			e.Operation,
			e.Command,
			e.Field,
			e.Cause)
	} else {
		msg = fmt.Sprintf("[%s] %s: command=%s: %v",
			timestamp,
			e.Operation,
			e.Command,
			e.Cause)
	}

	if len(e.Attributes) > 0 {
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Attributes[k]))
		}
		msg += " (" + strings.Join(pairs, " ") + ")"
	}

	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
