// Package validation provides the input-validation and sanitization core
// for adminctl.
//
// Every privileged operation in the CLI (database lookups, CSV import and
// export, API calls) passes its untrusted inputs through this package
// before acting on them. The package is deliberately free of I/O: the path
// sanitizer reasons only about the string form of a path and never touches
// the filesystem, and no validator performs network access. Callers decide
// what to do with an accepted value; this package only decides whether a
// value is safe to use.
//
// # Path Sanitization
//
// PathSanitizer confines user-supplied export paths to an allowed root
// directory using two independent lexical checks:
//
//   - Post-normalization traversal scan: any remaining ".." path segment
//     is rejected, catching escapes that survive cleaning.
//   - Root containment: absolute paths are accepted only when contained in
//     the allowed root, compared segment-by-segment via filepath.Rel
//     rather than a raw string prefix that a sibling directory sharing a
//     prefix could fool.
//
// Normalization alone is insufficient against crafted absolute paths, and
// containment alone is insufficient against relative traversal, so both
// checks always run.
//
// # Error Styles
//
// Predicate validators (IsValidObjectID, HasAllFields, HasRequiredHeaders)
// report false and never error: their callers always have a safe fallback.
// Parsing validators with no sane fallback (ValidateDelay, Sanitize)
// return typed errors (ErrInvalidArgument, ErrOutOfRange, PathError) so
// command handlers can abort with a message naming the offending input.
//
// # Thread Safety
//
// All validators are pure functions over their inputs and are safe for
// concurrent use without coordination.
package validation
