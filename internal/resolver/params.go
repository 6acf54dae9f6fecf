package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
)

// Grouping maps roles to ordered parameter-name sequences. Only roles with
// at least one name are present.
type Grouping struct {
	groups map[role.Role][]string
}

// Group returns the names assigned to a role; a role absent from the model
// yields an empty slice, never an error.
func (g *Grouping) Group(r role.Role) []string {
	return g.groups[r]
}

// Roles returns the non-empty roles in canonical declaration order.
func (g *Grouping) Roles() []role.Role {
	var out []role.Role
	for _, r := range role.All {
		if len(g.groups[r]) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Flatten collapses the grouping into one ordered sequence: canonical role
// order, original order within each role, duplicates removed.
func (g *Grouping) Flatten() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range role.All {
		for _, name := range g.groups[r] {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// ParameterNames classifies the model's coefficient names by structural role.
// component is "all" or one role name; requesting a role the model does not
// have returns an empty grouping. An unknown selector or model class fails
// fast at this boundary.
func (r *Resolver) ParameterNames(ctx context.Context, h *model.Handle, component string) (*Grouping, error) {
	comp, isRole, err := role.Parse(component)
	if err != nil {
		return nil, err
	}
	d, err := r.descriptor(h)
	if err != nil {
		return nil, err
	}

	groups, err := r.partition(ctx, h, d)
	if err != nil {
		return nil, err
	}

	if isRole {
		filtered := map[role.Role][]string{}
		if names, ok := groups[comp]; ok {
			filtered[comp] = names
		}
		groups = filtered
	}
	return &Grouping{groups: groups}, nil
}

// FlatParameterNames is ParameterNames with the grouping collapsed into one
// ordered, duplicate-free sequence.
func (r *Resolver) FlatParameterNames(ctx context.Context, h *model.Handle, component string) ([]string, error) {
	g, err := r.ParameterNames(ctx, h, component)
	if err != nil {
		return nil, err
	}
	return g.Flatten(), nil
}

// partition assigns every coefficient name to exactly one role. Precedence:
// a registered Go hook, then structural groups stored on the handle, then
// prefix rules over the flat list with the default role catching the
// remainder by elimination.
func (r *Resolver) partition(ctx context.Context, h *model.Handle, d *config.ClassDescriptor) (map[role.Role][]string, error) {
	logger := ctxlog.FromContext(ctx)

	if d.Hooks != nil && d.Hooks.Partition != "" {
		fn, ok := r.registry.PartitionRegistry[d.Hooks.Partition]
		if !ok {
			// Validation guarantees this; reaching it means the registry was
			// mutated after startup.
			return nil, fmt.Errorf("partition hook %q not registered", d.Hooks.Partition)
		}
		logger.Debug("Partitioning via class hook.", "class", d.Class, "hook", d.Hooks.Partition)
		return fn(ctx, h, d)
	}

	if h.Coefficients == nil {
		return map[role.Role][]string{}, nil
	}

	if d.Partition.Structural && len(h.Coefficients.Groups) > 0 {
		logger.Debug("Partitioning via structural coefficient groups.", "class", d.Class)
		groups := make(map[role.Role][]string, len(h.Coefficients.Groups))
		for r, names := range h.Coefficients.Groups {
			groups[r] = names
		}
		return groups, nil
	}

	groups := make(map[role.Role][]string)
names:
	for _, name := range h.Coefficients.All() {
		for _, rule := range d.Partition.Rules {
			if strings.HasPrefix(name, rule.Prefix) {
				groups[rule.Role] = append(groups[rule.Role], name)
				continue names
			}
		}
		groups[d.Partition.DefaultRole] = append(groups[d.Partition.DefaultRole], name)
	}
	return groups, nil
}
