package hcl

import (
	"fmt"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/role"
	"github.com/vk/modelprobe/internal/schema"
)

// translateClass converts the HCL-specific class manifest schema into the
// agnostic descriptor. Role and tactic names are validated here so a
// misspelled manifest fails at load time, not mid-resolution.
func (l *Loader) translateClass(cd *schema.ClassDefinition) (*config.ClassDescriptor, error) {
	descriptor := &config.ClassDescriptor{
		Class:       cd.Class,
		Description: cd.Description,
	}

	for _, p := range cd.Parts {
		r, err := roleName(p)
		if err != nil {
			return nil, fmt.Errorf("class %q: parts: %w", cd.Class, err)
		}
		descriptor.Parts = append(descriptor.Parts, r)
	}

	partition := &config.PartitionSpec{DefaultRole: role.Conditional}
	if cd.Partition != nil {
		partition.Structural = cd.Partition.Structural
		if cd.Partition.DefaultRole != "" {
			r, err := roleName(cd.Partition.DefaultRole)
			if err != nil {
				return nil, fmt.Errorf("class %q: default_role: %w", cd.Class, err)
			}
			partition.DefaultRole = r
		}
		for _, rule := range cd.Partition.Rules {
			r, err := roleName(rule.Role)
			if err != nil {
				return nil, fmt.Errorf("class %q: partition rule: %w", cd.Class, err)
			}
			if rule.Prefix == "" {
				return nil, fmt.Errorf("class %q: partition rule for %s has an empty prefix", cd.Class, r)
			}
			partition.Rules = append(partition.Rules, &config.PrefixRule{Role: r, Prefix: rule.Prefix})
		}
	}
	descriptor.Partition = partition

	data := &config.DataSpec{Tactics: config.DefaultTactics}
	if cd.Data != nil {
		data.DropMissing = cd.Data.DropMissing
		if len(cd.Data.Tactics) > 0 {
			data.Tactics = nil
			for _, t := range cd.Data.Tactics {
				tactic := config.Tactic(t)
				if !config.KnownTactic(tactic) {
					return nil, fmt.Errorf("class %q: unknown data tactic %q", cd.Class, t)
				}
				data.Tactics = append(data.Tactics, tactic)
			}
		}
	}
	descriptor.Data = data

	if cd.Hooks != nil {
		descriptor.Hooks = &config.Hooks{
			Partition: cd.Hooks.Partition,
			Frame:     cd.Hooks.Frame,
		}
	}

	return descriptor, nil
}

// roleName parses a manifest role string, rejecting the "all" selector which
// is only meaningful as a caller-side component filter.
func roleName(s string) (role.Role, error) {
	r, ok, err := role.Parse(s)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("role name must not be %q", s)
	}
	return r, nil
}
