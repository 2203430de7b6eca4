// Package filter compiles record-filter expressions for the list and
// export commands.
//
// Expressions are evaluated against flat user records with expr-lang,
// sandboxed: no arbitrary code execution, variables limited to record
// fields. Example: role == "admin" && email endsWith "@example.com".
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a user record.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks a filter expression. The expression must
// evaluate to a boolean; undefined record fields resolve to nil rather
// than failing the whole run.
func Compile(source string) (*Filter, error) {
	if source == "" {
		return nil, fmt.Errorf("filter expression cannot be empty")
	}

	program, err := expr.Compile(source,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	return &Filter{
		source:  source,
		program: program,
	}, nil
}

// Matches evaluates the filter against one record.
func (f *Filter) Matches(record map[string]any) (bool, error) {
	out, err := expr.Run(f.program, record)
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}

	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean: %v", out)
	}

	return matched, nil
}

// String returns the original expression source.
func (f *Filter) String() string {
	return f.source
}
