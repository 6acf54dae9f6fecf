// Package namefix reverses syntactic transforms in column and term names.
// A column fitted as log(dose) or dose[2] is still, for the caller, the
// variable "dose"; only the name is cleaned, values are never mathematically
// inverted.
package namefix

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Clean attempts to reduce a transformed name to the bare source variable it
// wraps. It reports true only when the name parses as an expression that
// references exactly one distinct variable and is not already a bare
// identifier. Names that do not parse (interaction terms, foreign syntax)
// are left alone.
func Clean(name string) (string, bool) {
	expr, diags := hclsyntax.ParseExpression([]byte(name), "name", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return name, false
	}

	if bare, ok := bareIdentifier(expr); ok {
		return bare, false
	}

	roots := make(map[string]struct{})
	var root string
	for _, traversal := range expr.Variables() {
		root = traversal.RootName()
		roots[root] = struct{}{}
	}
	if len(roots) != 1 {
		return name, false
	}
	return root, true
}

// Vars returns the distinct variable root names referenced by a term
// expression, in first-appearance order. A term that fails to parse
// contributes itself verbatim, so unknown syntax still surfaces as a name.
func Vars(term string) []string {
	expr, diags := hclsyntax.ParseExpression([]byte(term), "term", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []string{term}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		// A constant term like 1 or "a" has no variables to report.
		return nil
	}
	return out
}

// bareIdentifier reports whether expr is a plain single-part variable
// reference, i.e. a name that needs no cleaning.
func bareIdentifier(expr hcl.Expression) (string, bool) {
	scope, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(scope.Traversal) != 1 {
		return "", false
	}
	return scope.Traversal.RootName(), true
}
