package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewOperationalError(t *testing.T) {
	cause := fmt.Errorf("invalid object ID")
	err := NewOperationalError("validating object ID", "lookup", "object-id", cause)
	if err == nil {
		t.Fatal("expected an error for a non-nil cause")
	}

	msg := err.Error()
	if !strings.Contains(msg, "validating object ID") {
		t.Errorf("message missing operation: %s", msg)
	}
	if !strings.Contains(msg, "command=lookup") {
		t.Errorf("message missing command: %s", msg)
	}
	if !strings.Contains(msg, "field=object-id") {
		t.Errorf("message missing field: %s", msg)
	}
	if !strings.Contains(msg, "invalid object ID") {
		t.Errorf("message missing cause: %s", msg)
	}
}

func TestNewOperationalErrorNilCause(t *testing.T) {
	if err := NewOperationalError("op", "cmd", "field", nil); err != nil {
		t.Errorf("nil cause should produce nil, got %v", err)
	}
	if err := NewOperationalErrorWithAttrs("op", "cmd", "field", nil, map[string]interface{}{"k": 1}); err != nil {
		t.Errorf("nil cause should produce nil, got %v", err)
	}
}

func TestOperationalErrorOmitsEmptyField(t *testing.T) {
	err := NewOperationalError("saving user record", "import", "", fmt.Errorf("disk full"))
	if strings.Contains(err.Error(), "field=") {
		t.Errorf("empty field should be omitted: %s", err.Error())
	}
}

func TestOperationalErrorWithAttrs(t *testing.T) {
	cause := fmt.Errorf("constraint violation")
	err := NewOperationalErrorWithAttrs("saving user record", "import", "", cause,
		map[string]interface{}{"line": 7, "id": "507f1f77bcf86cd799439011"})

	msg := err.Error()
	// Attributes are rendered sorted by key.
	if !strings.Contains(msg, "(id=507f1f77bcf86cd799439011 line=7)") {
		t.Errorf("attributes not rendered in sorted order: %s", msg)
	}
}

func TestOperationalErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := NewOperationalError("op", "cmd", "field", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want original cause", unwrapped)
	}
}
