package validation

import (
	"strings"

	"github.com/tidwall/gjson"
)

// HasAllFields reports whether every dotted field path in fieldPaths
// resolves to a present, non-nil value inside response.
//
// response must be a decoded JSON object (map[string]any); anything else,
// including nil, fails immediately. Resolution walks segment-by-segment
// and short-circuits to "absent" the first time the current value is not
// a mapping or the segment key is missing — no panic, no partial
// traversal.
//
// Presence is about existence, not truthiness: a key holding false, 0, or
// "" is present. Only a missing key or an explicit null counts as absent.
// API responses carrying legitimate falsy data must not be rejected.
func HasAllFields(response any, fieldPaths []string) bool {
	root, ok := response.(map[string]any)
	if !ok {
		return false
	}
	for _, fp := range fieldPaths {
		if !fieldPresent(root, fp) {
			return false
		}
	}
	return true
}

// fieldPresent resolves one dotted path against root. Empty segments
// (from "", "a..b", or a trailing dot) resolve to absent.
func fieldPresent(root map[string]any, fieldPath string) bool {
	current := any(root)
	for _, seg := range strings.Split(fieldPath, ".") {
		if seg == "" {
			return false
		}
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		v, ok := m[seg]
		if !ok || v == nil {
			return false
		}
		current = v
	}
	return true
}

// HasAllFieldsJSON is HasAllFields over a raw JSON body, resolved with
// gjson so the caller can shape-check a response before committing to a
// full decode. Invalid JSON and non-object roots fail; a path resolving
// to JSON null counts as absent, any other value (false, 0, "") counts
// as present.
func HasAllFieldsJSON(body []byte, fieldPaths []string) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return false
	}
	for _, fp := range fieldPaths {
		if fp == "" {
			return false
		}
		result := root.Get(fp)
		if !result.Exists() || result.Type == gjson.Null {
			return false
		}
	}
	return true
}
