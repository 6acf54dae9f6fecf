// Package role defines the fixed set of structural roles a variable or
// parameter can play inside a (possibly multi-part) statistical model.
package role

import "fmt"

// Role identifies which part of a model a variable or parameter belongs to.
type Role string

const (
	Response           Role = "response"
	Conditional        Role = "conditional"
	ZeroInflated       Role = "zero_inflated"
	Random             Role = "random"
	Dispersion         Role = "dispersion"
	Instruments        Role = "instruments"
	Cluster            Role = "cluster"
	SmoothTerms        Role = "smooth_terms"
	InfrequentPurchase Role = "infrequent_purchase"
	Auxiliary          Role = "auxiliary"
)

// All lists every role in canonical declaration order. This order is the
// contract for flattened parameter listings, so it must never be reshuffled.
var All = []Role{
	Response,
	Conditional,
	ZeroInflated,
	Random,
	Dispersion,
	Instruments,
	Cluster,
	SmoothTerms,
	InfrequentPurchase,
	Auxiliary,
}

// Component is the selector callers pass to the public entry points. It is
// either the literal "all" or one Role.
const ComponentAll = "all"

// aliases maps accepted spellings onto canonical roles.
var aliases = map[string]Role{
	"zi": ZeroInflated,
}

// Parse validates a component selector string. It returns the canonical role
// and true, or ("", false) for the literal "all". Unknown selectors return an
// error so that invalid input fails at the call boundary instead of being
// silently absorbed like a data-recovery failure.
func Parse(s string) (Role, bool, error) {
	if s == "" || s == ComponentAll {
		return "", false, nil
	}
	if r, ok := aliases[s]; ok {
		return r, true, nil
	}
	for _, r := range All {
		if string(r) == s {
			return r, true, nil
		}
	}
	return "", false, fmt.Errorf("unknown component selector %q", s)
}

// Known reports whether r is one of the declared roles. Used by registry
// validation to reject manifests referencing misspelled roles.
func Known(r Role) bool {
	for _, k := range All {
		if k == r {
			return true
		}
	}
	return false
}
