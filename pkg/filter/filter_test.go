package filter

import (
	"testing"

	"github.com/opskit/adminctl/pkg/domain/user"
)

func TestCompileAndMatch(t *testing.T) {
	record := user.User{
		ID:        "507f1f77bcf86cd799439011",
		Email:     "ops@example.com",
		Name:      "Ops Admin",
		Role:      "admin",
		CreatedAt: "2024-06-15",
	}.Record()

	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"role equality", `role == "admin"`, true},
		{"role mismatch", `role == "viewer"`, false},
		{"email suffix", `email endsWith "@example.com"`, true},
		{"conjunction", `role == "admin" && name contains "Ops"`, true},
		{"disjunction", `role == "viewer" || role == "admin"`, true},
		{"negation", `!(role == "viewer")`, true},
		{"undefined field is nil", `missing == nil`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.source, err)
			}
			got, err := f.Matches(record)
			if err != nil {
				t.Fatalf("Matches error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestCompileRejectsBadExpressions(t *testing.T) {
	for _, source := range []string{"", "role ==", `1 + 2`} {
		if _, err := Compile(source); err == nil {
			t.Errorf("Compile(%q) expected error", source)
		}
	}
}

func TestFilterString(t *testing.T) {
	f, err := Compile(`role == "admin"`)
	if err != nil {
		t.Fatal(err)
	}
	if f.String() != `role == "admin"` {
		t.Errorf("String() = %q", f.String())
	}
}
