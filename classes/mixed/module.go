// Package mixed supports mixed-effects models. Its one piece of Go logic is
// a frame hook: mixed fitters store the grouping assignment under the
// internal column name ".group", and callers expect it back under the
// grouping variable's source expression text.
package mixed

import (
	"context"

	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/registry"
	"github.com/vk/modelprobe/internal/role"
)

// GroupColumn is the internal name mixed fitters store the grouping
// assignment under.
const GroupColumn = ".group"

// Module implements the registry.Module interface for this package.
type Module struct{}

// FrameMixed is the 'frame' hook for the class. For the random part it
// renames the internal grouping column to the recorded formula's group
// expression text; other parts pass through unchanged.
func FrameMixed(ctx context.Context, h *model.Handle, part role.Role) (*frame.Frame, error) {
	stored, ok := h.StoredFrame(part)
	if !ok {
		return nil, nil
	}
	if part != role.Random {
		return stored, nil
	}

	groupName := sourceGroupName(h)
	if groupName == "" || groupName == GroupColumn {
		return stored, nil
	}

	out := frame.New()
	for _, c := range stored.Columns() {
		name := c.Name
		if name == GroupColumn {
			name = groupName
		}
		if err := out.Add(name, c.Values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sourceGroupName recovers the grouping variable's source expression text
// from the recorded formula, falling back to an explicit GroupNames entry.
func sourceGroupName(h *model.Handle) string {
	if f := h.Formula(); f != nil && len(f.RandomTerms) > 0 {
		return f.RandomTerms[0].GroupTerm
	}
	if len(h.GroupNames) > 0 {
		return h.GroupNames[0]
	}
	return ""
}

// Register registers the frame hook with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFrame("FrameMixed", FrameMixed)
}
