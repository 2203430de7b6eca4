package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for parsing validators that have no safe fallback.
// Callers distinguish them with errors.Is.
var (
	// ErrInvalidArgument indicates input that cannot be parsed into the
	// expected form at all (wrong type, not a number, negative).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates input that parsed cleanly but exceeds a
	// configured ceiling.
	ErrOutOfRange = errors.New("out of range")
)

// DefaultMaxDelayMs is the ceiling for ValidateDelay: ten minutes.
const DefaultMaxDelayMs = 600000

// Format patterns are intentionally permissive, not RFC-complete. They are
// documented contracts: exactly 24 hex characters for object IDs, and a
// single-@, non-whitespace shape with a dotted domain for emails.
var (
	objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// dateLayouts are the calendar formats accepted by IsValidDate. time.Parse
// is strict for numeric fields, so month 13 or day 32 never round into the
// next period the way lenient host parsers do.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// asString returns the string form of v only when v actually is a string.
// nil, numbers, maps, and slices are never coerced; this closes the class
// of bugs where a nil input silently stringifies to "null" or "<nil>".
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// IsValidObjectID reports whether v is a string of exactly 24 hexadecimal
// characters, case-insensitive. Any other length, any non-hex character,
// or any non-string input is rejected. Pure predicate, no normalization.
func IsValidObjectID(v any) bool {
	s, ok := asString(v)
	if !ok {
		return false
	}
	return objectIDPattern.MatchString(s)
}

// IsValidEmail reports whether v is a string with a single @, no
// whitespace, and at least one dot in the domain part. Rejects empty
// strings, missing @, and non-string input.
func IsValidEmail(v any) bool {
	s, ok := asString(v)
	if !ok {
		return false
	}
	return emailPattern.MatchString(s)
}

// IsValidDate reports whether v is a string parseable as a calendar date
// in one of the accepted layouts. Parsing is strict: out-of-range months
// and days are rejected rather than auto-corrected.
func IsValidDate(v any) bool {
	s, ok := asString(v)
	if !ok || s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// asInt parses v as a base-10 integer. Strings are trimmed and parsed;
// integer types pass through; floats are accepted only when integral.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// ParsePositiveInt parses v as a base-10 integer, returning def when
// parsing fails or the result is negative. Zero is valid. Invalid input
// never errors; the caller always has a safe fallback here.
func ParsePositiveInt(v any, def int) int {
	n, ok := asInt(v)
	if !ok || n < 0 {
		return def
	}
	return n
}

// ValidateDelay parses v as a delay in milliseconds with the default
// ceiling of DefaultMaxDelayMs. See ValidateDelayMax.
func ValidateDelay(v any) (int, error) {
	return ValidateDelayMax(v, DefaultMaxDelayMs)
}

// ValidateDelayMax parses v as a delay in milliseconds, failing with
// ErrInvalidArgument when v is not a non-negative base-10 integer and
// with ErrOutOfRange when it exceeds maxMs. Unlike ParsePositiveInt this
// surfaces failures as errors: a delay flag has no sane fallback and the
// CLI must abort rather than guess.
func ValidateDelayMax(v any, maxMs int) (int, error) {
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: delay must be a positive number", ErrInvalidArgument)
	}
	if n > maxMs {
		return 0, fmt.Errorf("%w: delay exceeds maximum of %dms", ErrOutOfRange, maxMs)
	}
	return n, nil
}

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore). Used to validate credential keys
// and other user-provided names before they appear in keyring entries or
// file paths.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// IsValidIdentifier reports whether s is non-empty and contains only
// identifier characters.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !IsValidIdentifierChar(ch) {
			return false
		}
	}
	return true
}
