package validation

import "strings"

// normalizeHeader folds a header name for comparison: surrounding
// whitespace trimmed, case lowered.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// HasRequiredHeaders reports whether every required header appears in
// headers. Both sides are normalized (trim, case-fold) before comparison;
// the check is order-independent and tolerant of duplicates in headers.
func HasRequiredHeaders(headers, required []string) bool {
	return len(MissingHeaders(headers, required)) == 0
}

// MissingHeaders returns the required headers absent from headers, in
// required order and original spelling, so import errors can name the
// offending columns. Returns nil when nothing is missing.
func MissingHeaders(headers, required []string) []string {
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		seen[normalizeHeader(h)] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := seen[normalizeHeader(r)]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}
