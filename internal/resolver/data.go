package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/namefix"
	"github.com/vk/modelprobe/internal/role"
	"github.com/vk/modelprobe/internal/vars"
)

// FitData reconstructs, best-effort, the data the model was fitted on,
// restricted to the variables relevant for the requested effects and
// component. The class descriptor's tactics are attempted in order; the
// first success wins and every tactic failure is absorbed. When nothing
// succeeds the result is nil with no error; verbose controls whether that
// outcome is surfaced as a warning.
func (r *Resolver) FitData(ctx context.Context, h *model.Handle, effects, component string, verbose bool) (*frame.Frame, error) {
	logger := ctxlog.FromContext(ctx).With("class", h.Class, "model", h.Name)

	eff, err := vars.ParseEffects(effects)
	if err != nil {
		return nil, err
	}
	comp, isRole, err := role.Parse(component)
	if err != nil {
		return nil, err
	}
	d, err := r.descriptor(h)
	if err != nil {
		return nil, err
	}

	required := vars.Extract(h).Names(eff, comp, !isRole)
	logger.Debug("Resolving fitting data.", "effects", eff, "component", component, "required", required)

	var resolved *frame.Frame
	for _, tactic := range d.Data.Tactics {
		var err error
		switch tactic {
		case config.TacticStored:
			resolved, err = r.storedFrames(ctx, h, d, eff, comp, isRole)
		case config.TacticCall:
			resolved, err = r.callRecovery(ctx, h, required)
		case config.TacticEnvironment:
			resolved, err = r.environmentScan(ctx, h, required)
		default:
			err = fmt.Errorf("unknown tactic %q", tactic)
		}
		if err != nil {
			// Structural anomalies never propagate; they trigger the next tactic.
			logger.Debug("Data tactic failed, falling through.", "tactic", tactic, "error", err)
			resolved = nil
			continue
		}
		if resolved != nil {
			logger.Debug("Data tactic succeeded.", "tactic", tactic, "rows", resolved.NumRows(), "cols", resolved.NumCols())
			break
		}
	}

	if resolved != nil {
		if d.Data.DropMissing {
			resolved = resolved.DropMissing()
		}
		resolved = resolved.CleanNames(namefix.Clean)
	}

	if resolved == nil || resolved.NumRows() == 0 || resolved.NumCols() == 0 {
		warn(logger, verbose, "Unable to recover the data used to fit the model.")
		return nil, nil
	}
	return resolved, nil
}

func warn(logger *slog.Logger, verbose bool, msg string, args ...any) {
	if verbose {
		logger.Warn(msg, args...)
	} else {
		logger.Debug(msg, args...)
	}
}

// storedFrames is the direct-extraction tactic: merge the already
// materialized frames of every relevant model part. Later parts override
// earlier ones on column collisions.
func (r *Resolver) storedFrames(ctx context.Context, h *model.Handle, d *config.ClassDescriptor, eff vars.Effects, comp role.Role, isRole bool) (*frame.Frame, error) {
	parts := relevantParts(d, eff, comp, isRole)

	var merged *frame.Frame
	for _, part := range parts {
		f, err := r.storedFrame(ctx, h, d, part)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", part, err)
		}
		if f == nil {
			continue
		}
		if merged == nil {
			merged = f.Clone()
			continue
		}
		merged, err = merged.Merge(f)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", part, err)
		}
	}
	return merged, nil
}

// storedFrame fetches one part's materialized frame, preferring a class
// frame hook over the handle's plain storage.
func (r *Resolver) storedFrame(ctx context.Context, h *model.Handle, d *config.ClassDescriptor, part role.Role) (*frame.Frame, error) {
	if d.Hooks != nil && d.Hooks.Frame != "" {
		fn, ok := r.registry.FrameRegistry[d.Hooks.Frame]
		if !ok {
			return nil, fmt.Errorf("frame hook %q not registered", d.Hooks.Frame)
		}
		return fn(ctx, h, part)
	}
	f, _ := h.StoredFrame(part)
	return f, nil
}

// relevantParts decides which model parts a stored-frame merge covers.
func relevantParts(d *config.ClassDescriptor, eff vars.Effects, comp role.Role, isRole bool) []role.Role {
	if eff == vars.EffectsRandom {
		return []role.Role{role.Random, role.Cluster}
	}
	if isRole {
		return []role.Role{comp}
	}
	parts := d.Parts
	if len(parts) == 0 {
		parts = []role.Role{role.Conditional}
	}
	if eff == vars.EffectsFixed {
		var out []role.Role
		for _, p := range parts {
			if p == role.Random || p == role.Cluster {
				continue
			}
			out = append(out, p)
		}
		return out
	}
	return parts
}

// callRecovery is the call-environment tactic: re-evaluate the recorded
// call's data argument in the recorded fitting environment and project the
// result down to the required variables.
func (r *Resolver) callRecovery(ctx context.Context, h *model.Handle, required []string) (*frame.Frame, error) {
	dataExpr, ok := h.Call.DataArg()
	if !ok {
		return nil, fmt.Errorf("model call has no recorded data argument")
	}
	if h.Env == nil {
		return nil, fmt.Errorf("model has no recorded environment")
	}

	val, diags := dataExpr.Value(h.Env)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to re-evaluate data argument: %w", diags)
	}
	f, err := frame.FromCty(val)
	if err != nil {
		return nil, err
	}
	if len(required) == 0 {
		return f, nil
	}
	// Partial recoverability: project keeps whatever subset intersects.
	projected := f.Project(required)
	if projected.NumCols() == 0 {
		return nil, fmt.Errorf("recovered table has none of the required columns")
	}
	return projected, nil
}

// environmentScan is the last-resort tactic: walk the recorded environment's
// scope chain outward and pick the first table-shaped value whose columns
// cover every required variable. The recovery is a guess, so its use is
// logged distinctly from the confident tactics.
func (r *Resolver) environmentScan(ctx context.Context, h *model.Handle, required []string) (*frame.Frame, error) {
	logger := ctxlog.FromContext(ctx)
	if h.Env == nil {
		return nil, fmt.Errorf("model has no recorded environment")
	}
	if len(required) == 0 {
		return nil, fmt.Errorf("no required variables to match a table against")
	}

	for scope := h.Env; scope != nil; scope = scope.Parent() {
		names := make([]string, 0, len(scope.Variables))
		for name := range scope.Variables {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			val := scope.Variables[name]
			if !frame.IsTabular(val) {
				continue
			}
			f, err := frame.FromCty(val)
			if err != nil {
				continue
			}
			if !covers(f, required) {
				continue
			}
			logger.Warn("Recovered fitting data by scanning the enclosing scope; provenance is a guess, not a recorded fact.",
				"model", h.Name, "table", name)
			return f.Project(required), nil
		}
	}
	return nil, fmt.Errorf("no table in scope covers the required variables")
}

// covers reports whether f's column set is a superset of required.
func covers(f *frame.Frame, required []string) bool {
	for _, name := range required {
		if _, ok := f.Column(name); !ok {
			return false
		}
	}
	return true
}
