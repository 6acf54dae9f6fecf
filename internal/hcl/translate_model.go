package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
	"github.com/vk/modelprobe/internal/schema"
)

// translateModel converts a snapshot's model block into a live handle. The
// recorded call's argument expressions stay unevaluated; only the local
// environment and stored frames are materialized now.
func (l *Loader) translateModel(ctx context.Context, mb *schema.Model, globalCtx *hcl.EvalContext) (*model.Handle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Translating model block.", "class", mb.Class, "name", mb.Name)

	env, err := l.buildModelEnv(mb, globalCtx)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", mb.Name, err)
	}

	handle := &model.Handle{
		Class:      mb.Class,
		Name:       mb.Name,
		Env:        env,
		GroupNames: mb.Groups,
	}

	if mb.Formula != "" || mb.Call != nil {
		call := &model.Call{Function: mb.Function}
		if call.Function == "" {
			call.Function = mb.Class
		}
		if mb.Formula != "" {
			f, err := formula.Parse(mb.Formula)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", mb.Name, err)
			}
			call.Formula = f
		}
		if mb.Call != nil {
			args, err := attrsFromBody(mb.Call.Body)
			if err != nil {
				return nil, fmt.Errorf("model %q: call block: %w", mb.Name, err)
			}
			call.Args = args
		}
		handle.Call = call
	}

	if mb.Coefficients != nil {
		coefs := &model.Coefficients{Flat: mb.Coefficients.Flat}
		if len(mb.Coefficients.Groups) > 0 {
			coefs.Groups = make(map[role.Role][]string, len(mb.Coefficients.Groups))
			for _, g := range mb.Coefficients.Groups {
				r, err := roleName(g.Role)
				if err != nil {
					return nil, fmt.Errorf("model %q: coefficients: %w", mb.Name, err)
				}
				if _, dup := coefs.Groups[r]; dup {
					return nil, fmt.Errorf("model %q: duplicate coefficient group %s", mb.Name, r)
				}
				coefs.Groups[r] = g.Names
			}
		}
		handle.Coefficients = coefs
	}

	for _, sf := range mb.Frames {
		r, err := roleName(sf.Part)
		if err != nil {
			return nil, fmt.Errorf("model %q: frame block: %w", mb.Name, err)
		}
		val, diags := sf.Columns.Value(env)
		if diags.HasErrors() {
			return nil, fmt.Errorf("model %q: failed to evaluate frame %s: %w", mb.Name, r, diags)
		}
		fr, err := frame.FromCty(val)
		if err != nil {
			return nil, fmt.Errorf("model %q: frame %s: %w", mb.Name, r, err)
		}
		if handle.Frames == nil {
			handle.Frames = make(map[role.Role]*frame.Frame)
		}
		handle.Frames[r] = fr
	}

	return handle, nil
}

// buildModelEnv layers the model's environment block over the global table
// scope. A model with no environment block still gets a child context, so
// the recorded environment always has the global scope as its parent chain.
func (l *Loader) buildModelEnv(mb *schema.Model, globalCtx *hcl.EvalContext) (*hcl.EvalContext, error) {
	locals := make(map[string]cty.Value)
	if mb.Environment != nil {
		attrs, err := attrsFromBody(mb.Environment.Body)
		if err != nil {
			return nil, fmt.Errorf("environment block: %w", err)
		}
		for name, expr := range attrs {
			val, diags := expr.Value(globalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate environment variable %q: %w", name, diags)
			}
			locals[name] = val
		}
	}
	env := globalCtx.NewChild()
	env.Variables = locals
	return env, nil
}
