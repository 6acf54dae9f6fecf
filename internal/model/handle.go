// Package model defines the opaque fitted-model handle that resolution
// operates on: the recorded fitting call, the recorded fitting environment,
// stored observation frames, and the fitted coefficient names. A handle is
// treated as read-only everywhere; resolution derives from it and never
// mutates it.
package model

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/role"
)

// Call is the recorded fitting call: the fitting function's name, the parsed
// model formula, and the argument expressions exactly as written at fit time.
// Argument expressions are kept unevaluated so they can be re-evaluated later
// in the recorded environment.
type Call struct {
	Function string
	Formula  *formula.Formula
	Args     map[string]hcl.Expression
}

// DataArg returns the recorded `data` argument expression, if the call had one.
func (c *Call) DataArg() (hcl.Expression, bool) {
	if c == nil || c.Args == nil {
		return nil, false
	}
	expr, ok := c.Args["data"]
	return expr, ok
}

// Coefficients holds the fitted parameter names. A model stores them either
// as one flat ordered list (partitioned later by prefix rules) or as
// structural per-role groups, or both.
type Coefficients struct {
	Flat   []string
	Groups map[role.Role][]string
}

// All returns the full ordered coefficient name list: the flat list when the
// model recorded one, otherwise the concatenation of the structural groups in
// canonical role order.
func (c *Coefficients) All() []string {
	if c == nil {
		return nil
	}
	if len(c.Flat) > 0 {
		return c.Flat
	}
	var out []string
	for _, r := range role.All {
		out = append(out, c.Groups[r]...)
	}
	return out
}

// Handle is an opaque reference to one fitted model.
type Handle struct {
	// Class is the model-type identifier that selects the resolution
	// strategy, e.g. "lm" or "zeroinfl".
	Class string
	// Name distinguishes multiple models loaded from one snapshot file.
	Name string

	Call *Call
	// Env is the evaluation environment recorded at fit time. Its parent
	// chain reaches the broadest enclosing scope, which the last-resort
	// recovery tactic scans.
	Env *hcl.EvalContext

	// Frames holds already-materialized observation frames per model part,
	// when the fitting front-end stored them.
	Frames map[role.Role]*frame.Frame

	Coefficients *Coefficients

	// GroupNames optionally overrides the grouping variables the formula
	// implies, for classes that record clusters outside the formula.
	GroupNames []string
}

// StoredFrame returns the materialized frame for a part, if one was stored.
func (h *Handle) StoredFrame(r role.Role) (*frame.Frame, bool) {
	if h.Frames == nil {
		return nil, false
	}
	f, ok := h.Frames[r]
	return f, ok && f != nil
}

// Formula returns the recorded formula, or nil when the call was not recorded.
func (h *Handle) Formula() *formula.Formula {
	if h.Call == nil {
		return nil
	}
	return h.Call.Formula
}
