package validation

import (
	"reflect"
	"testing"
)

func TestHasRequiredHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		required []string
		want     bool
	}{
		{"exact match", []string{"email", "name"}, []string{"email", "name"}, true},
		{"case insensitive", []string{"EMAIL", "NAME"}, []string{"email", "name"}, true},
		{"whitespace trimmed", []string{" email ", "name"}, []string{"email", "name"}, true},
		{"order independent", []string{"name", "email"}, []string{"email", "name"}, true},
		{"extra headers tolerated", []string{"id", "email", "name", "role"}, []string{"email", "name"}, true},
		{"duplicates tolerated", []string{"email", "email", "name"}, []string{"email", "name"}, true},
		{"missing one", []string{"Email", "Role"}, []string{"email", "name"}, false},
		{"missing all", []string{"id"}, []string{"email", "name"}, false},
		{"empty headers", nil, []string{"email"}, false},
		{"no requirements", []string{"anything"}, nil, true},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRequiredHeaders(tt.headers, tt.required); got != tt.want {
				t.Errorf("HasRequiredHeaders(%v, %v) = %v, want %v", tt.headers, tt.required, got, tt.want)
			}
		})
	}
}

func TestMissingHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		required []string
		want     []string
	}{
		{"nothing missing", []string{"email", "name"}, []string{"email", "name"}, nil},
		{"one missing keeps spelling", []string{"Email", "Role"}, []string{"email", "name"}, []string{"name"}},
		{"all missing in required order", nil, []string{"email", "name"}, []string{"email", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingHeaders(tt.headers, tt.required)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingHeaders(%v, %v) = %v, want %v", tt.headers, tt.required, got, tt.want)
			}
		})
	}
}
