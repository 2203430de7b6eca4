package validation

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// PathSanitizer validates user-provided file paths to prevent directory
// traversal outside an allowed root.
//
// The sanitizer is purely lexical: it never stats, opens, or resolves
// anything on the filesystem. It implements two independent checks:
//
//   - Post-normalization traversal scan (reject remaining ".." segments)
//   - Root containment for absolute paths (segment-wise, via filepath.Rel)
//
// Thread-safe for concurrent use.
type PathSanitizer struct {
	allowedRoot string
	maxPathLen  int
	validations uint64
	rejections  uint64
}

// PathError represents a path sanitization failure with context for
// logging and user-facing messages.
type PathError struct {
	UserPath  string    // Original user input that was rejected
	Reason    string    // Human-readable reason for rejection
	Timestamp time.Time // When the rejection occurred
}

// Error implements the error interface.
//
// Format: "unsafe path: {Reason} (input: {UserPath})"
func (e *PathError) Error() string {
	return fmt.Sprintf("unsafe path: %s (input: %s)", e.Reason, e.UserPath)
}

// driveLetterPattern matches Windows drive-prefixed paths, including
// drive-relative ones like "C:file.csv" that carry no separator after
// the colon. On non-Windows hosts filepath.IsAbs does not flag these,
// but they must still be treated as absolute-like so they cannot slip
// through as "relative".
var driveLetterPattern = regexp.MustCompile(`^[a-zA-Z]:`)

// windowsReservedNames are device names that Windows resolves regardless
// of directory, checked case-insensitively against each path segment's
// base name.
var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// NewPathSanitizer creates a sanitizer confining paths to allowedRoot.
//
// allowedRoot must be an absolute path; it is cleaned but never resolved
// against the filesystem. An empty root is permitted and means no
// absolute path is ever accepted (relative paths still are).
func NewPathSanitizer(allowedRoot string) (*PathSanitizer, error) {
	if allowedRoot != "" && !filepath.IsAbs(allowedRoot) {
		return nil, fmt.Errorf("allowed root must be absolute: %s", allowedRoot)
	}
	root := ""
	if allowedRoot != "" {
		root = path.Clean(strings.ReplaceAll(allowedRoot, "\\", "/"))
	}
	return &PathSanitizer{
		allowedRoot: root,
		maxPathLen:  1024,
	}, nil
}

// Sanitize validates that userPath is safe to use for an export operation.
//
// Returns the normalized path if safe, or a *PathError if the path:
//   - Is empty or exceeds the maximum length
//   - Contains a parent-directory traversal segment after normalization
//   - Is absolute and not contained within the allowed root
//   - Names a Windows reserved device (CON, PRN, ...)
//
// The returned path is guaranteed to contain no ".." segment and, when
// absolute, to lie under the allowed root. Sanitizing an already accepted
// path again returns the identical value.
func (s *PathSanitizer) Sanitize(userPath string) (string, error) {
	atomic.AddUint64(&s.validations, 1)

	if userPath == "" {
		return "", s.reject(userPath, "path cannot be empty")
	}
	if len(userPath) > s.maxPathLen {
		return "", s.reject(userPath, fmt.Sprintf("path length exceeds maximum of %d bytes", s.maxPathLen))
	}

	// Normalize separators before cleaning so backslash traversal is
	// caught on every platform, then collapse "." and redundant slashes.
	// filepath.ToSlash is a no-op for backslashes on Unix hosts, so the
	// replacement is explicit.
	isAbs := driveLetterPattern.MatchString(userPath)
	cleaned := path.Clean(strings.ReplaceAll(userPath, "\\", "/"))
	if strings.HasPrefix(cleaned, "/") {
		isAbs = true
	}

	// Independent traversal scan. Segment compare, not substring: a file
	// named "my..file.txt" is legal, a ".." segment is not.
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return "", s.reject(userPath, "path traversal segment not allowed")
		}
	}

	if err := s.checkReservedNames(userPath, cleaned); err != nil {
		return "", err
	}

	if isAbs {
		if s.allowedRoot == "" {
			return "", s.reject(userPath, "absolute path not allowed")
		}
		rel, err := filepath.Rel(s.allowedRoot, cleaned)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			return "", s.reject(userPath, fmt.Sprintf("path escapes allowed root %s", s.allowedRoot))
		}
		return cleaned, nil
	}

	return cleaned, nil
}

// checkReservedNames rejects paths whose segments name a Windows reserved
// device. Export files may land on shared or mounted Windows filesystems,
// so the check runs on every platform.
func (s *PathSanitizer) checkReservedNames(userPath, cleaned string) error {
	for _, seg := range strings.Split(cleaned, "/") {
		base := strings.ToUpper(seg)
		if idx := strings.Index(base, "."); idx != -1 {
			base = base[:idx]
		}
		if _, reserved := windowsReservedNames[base]; reserved {
			return s.reject(userPath, fmt.Sprintf("reserved name not allowed: %s", seg))
		}
	}
	return nil
}

// reject records the rejection and builds the typed error.
func (s *PathSanitizer) reject(userPath, reason string) *PathError {
	atomic.AddUint64(&s.rejections, 1)
	return &PathError{
		UserPath:  userPath,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Stats returns validation statistics for monitoring.
//
// Returns the total number of Sanitize calls and how many were rejected.
// Thread-safe.
func (s *PathSanitizer) Stats() (validations, rejections uint64) {
	return atomic.LoadUint64(&s.validations), atomic.LoadUint64(&s.rejections)
}

// SanitizePath is a convenience function that sanitizes a path without
// keeping a PathSanitizer instance. For repeated validations, create a
// PathSanitizer to reuse the cleaned root.
func SanitizePath(allowedRoot, userPath string) (string, error) {
	s, err := NewPathSanitizer(allowedRoot)
	if err != nil {
		return "", fmt.Errorf("invalid allowed root: %w", err)
	}
	return s.Sanitize(userPath)
}
