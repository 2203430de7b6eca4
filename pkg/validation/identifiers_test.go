package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"valid lowercase hex", "507f1f77bcf86cd799439011", true},
		{"valid uppercase hex", "507F1F77BCF86CD799439011", true},
		{"valid mixed case", "507f1F77bcF86cd799439011", true},
		{"valid all same char", "aaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"valid all digits", "123456789012345678901234", true},
		{"too short 23 chars", "507f1f77bcf86cd79943901", false},
		{"too long 25 chars", "507f1f77bcf86cd7994390111", false},
		{"non-hex character", "507f1f77bcf86cd79943901g", false},
		{"whitespace inside", "507f1f77bcf8 cd799439011", false},
		{"empty string", "", false},
		{"nil input", nil, false},
		{"integer input", 507, false},
		{"map input", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidObjectID(tt.input); got != tt.want {
				t.Errorf("IsValidObjectID(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"missing at", "userexample.com", false},
		{"two ats", "user@host@example.com", false},
		{"missing domain dot", "user@example", false},
		{"whitespace in local part", "us er@example.com", false},
		{"empty string", "", false},
		{"only at", "@", false},
		{"nil input", nil, false},
		{"integer input", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.input); got != tt.want {
				t.Errorf("IsValidEmail(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"iso date", "2024-06-15", true},
		{"rfc3339", "2024-06-15T10:30:00Z", true},
		{"datetime", "2024-06-15 10:30:00", true},
		{"us slash format", "06/15/2024", true},
		{"leap day valid", "2024-02-29", true},
		{"leap day invalid year", "2023-02-29", false},
		{"month thirteen", "2024-13-01", false},
		{"day thirty-two", "2024-01-32", false},
		{"day zero", "2024-01-00", false},
		{"garbage", "not-a-date", false},
		{"empty string", "", false},
		{"nil input", nil, false},
		{"number input", 20240615, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDate(tt.input); got != tt.want {
				t.Errorf("IsValidDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		def   int
		want  int
	}{
		{"valid string", "42", 10, 42},
		{"zero is valid", "0", 10, 0},
		{"trimmed whitespace", " 7 ", 10, 7},
		{"negative falls back", "-1", 10, 10},
		{"garbage falls back", "abc", 10, 10},
		{"empty falls back", "", 10, 10},
		{"nil falls back", nil, 10, 10},
		{"int passes through", 99, 10, 99},
		{"integral float", float64(5), 10, 5},
		{"fractional float falls back", 5.5, 10, 10},
		{"float string falls back", "5.5", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePositiveInt(tt.input, tt.def); got != tt.want {
				t.Errorf("ParsePositiveInt(%v, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestValidateDelay(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr error
	}{
		{"valid delay", "5000", 5000, nil},
		{"zero delay", "0", 0, nil},
		{"exactly at ceiling", "600000", 600000, nil},
		{"above ceiling", "700000", 0, ErrOutOfRange},
		{"negative", "-1", 0, ErrInvalidArgument},
		{"not a number", "abc", 0, ErrInvalidArgument},
		{"empty string", "", 0, ErrInvalidArgument},
		{"nil input", nil, 0, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDelay(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateDelay(%v) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateDelay(%v) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateDelay(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateDelayMessages(t *testing.T) {
	_, err := ValidateDelay("700000")
	if err == nil || !strings.Contains(err.Error(), "600000") {
		t.Errorf("ceiling error should cite the maximum, got: %v", err)
	}

	_, err = ValidateDelay("-5")
	if err == nil || !strings.Contains(err.Error(), "positive number") {
		t.Errorf("negative error should cite 'positive number', got: %v", err)
	}
}

func TestValidateDelayMax(t *testing.T) {
	got, err := ValidateDelayMax("1500", 2000)
	if err != nil || got != 1500 {
		t.Fatalf("ValidateDelayMax(1500, 2000) = %d, %v", got, err)
	}
	if _, err := ValidateDelayMax("2001", 2000); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ValidateDelayMax(2001, 2000) error = %v, want ErrOutOfRange", err)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain word", "api-token", true},
		{"underscore and digits", "key_01", true},
		{"empty", "", false},
		{"space", "api token", false},
		{"slash", "api/token", false},
		{"dot", "api.token", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidIdentifier(tt.input); got != tt.want {
				t.Errorf("IsValidIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
