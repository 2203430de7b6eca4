// Package checks composes the generic validators into the named checks
// CLI command handlers call before any privileged operation proceeds.
//
// The package adds no validation logic of its own. Its only job is
// binding configuration — the allowed export root, per-operation header
// lists, per-call-site API field lists, the delay ceiling — to the
// primitives in pkg/validation, and converting predicate failures into
// errors that name the offending field.
package checks

import (
	"fmt"

	"github.com/opskit/adminctl/pkg/config"
	"github.com/opskit/adminctl/pkg/validation"
)

// Checker exposes one named check per CLI use-site.
type Checker struct {
	cfg   *config.Config
	paths *validation.PathSanitizer
}

// New creates a Checker bound to cfg. Fails when the configured export
// root is not usable as a sanitizer root.
func New(cfg *config.Config) (*Checker, error) {
	sanitizer, err := validation.NewPathSanitizer(cfg.ExportRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid export root: %w", err)
	}
	return &Checker{
		cfg:   cfg,
		paths: sanitizer,
	}, nil
}

// ValidateObjectID accepts only 24-character hex object IDs, returning
// the value unchanged. The error names the offending value.
func (c *Checker) ValidateObjectID(v any) (string, error) {
	if !validation.IsValidObjectID(v) {
		return "", fmt.Errorf("%w: object ID must be 24 hexadecimal characters, got %v",
			validation.ErrInvalidArgument, v)
	}
	return v.(string), nil
}

// ValidateEmail accepts addresses matching the documented permissive
// shape, returning the value unchanged.
func (c *Checker) ValidateEmail(v any) (string, error) {
	if !validation.IsValidEmail(v) {
		return "", fmt.Errorf("%w: invalid email address: %v", validation.ErrInvalidArgument, v)
	}
	return v.(string), nil
}

// ValidateDate accepts calendar dates in one of the supported layouts,
// returning the value unchanged.
func (c *Checker) ValidateDate(v any) (string, error) {
	if !validation.IsValidDate(v) {
		return "", fmt.Errorf("%w: invalid date: %v", validation.ErrInvalidArgument, v)
	}
	return v.(string), nil
}

// ValidateDelay parses a delay in milliseconds against the configured
// ceiling.
func (c *Checker) ValidateDelay(v any) (int, error) {
	return validation.ValidateDelayMax(v, c.cfg.MaxDelayMs)
}

// SanitizeExportPath confines an export path to the configured export
// root. Returns the normalized path, or a *validation.PathError naming
// the failed check.
func (c *Checker) SanitizeExportPath(p string) (string, error) {
	return c.paths.Sanitize(p)
}

// ValidateAPIResponse shape-checks a raw response body against the field
// paths configured for callSite. The error names the first missing path
// so the CLI can report exactly what the upstream API failed to supply.
func (c *Checker) ValidateAPIResponse(body []byte, callSite string) error {
	fields := c.cfg.APIFields(callSite)
	if len(fields) == 0 {
		return nil
	}
	if !validation.HasAllFieldsJSON(body, fields) {
		for _, fp := range fields {
			if !validation.HasAllFieldsJSON(body, []string{fp}) {
				return fmt.Errorf("%w: API response for %s is missing required field %s",
					validation.ErrInvalidArgument, callSite, fp)
			}
		}
		return fmt.Errorf("%w: API response for %s is malformed", validation.ErrInvalidArgument, callSite)
	}
	return nil
}

// ValidateCSVHeaders checks a parsed header row against the columns
// configured for operation, naming every missing column in the error.
func (c *Checker) ValidateCSVHeaders(headers []string, operation string) error {
	required := c.cfg.CSVHeaders(operation)
	if missing := validation.MissingHeaders(headers, required); len(missing) > 0 {
		return fmt.Errorf("%w: CSV for %s is missing required columns: %v",
			validation.ErrInvalidArgument, operation, missing)
	}
	return nil
}

// PathStats reports the sanitizer's validation and rejection counters
// for monitoring.
func (c *Checker) PathStats() (validations, rejections uint64) {
	return c.paths.Stats()
}
